package archive

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
)

// LogHandler is a slog.Handler that writes records to the search_logs
// table and forwards them to Next.
type LogHandler struct {
	DB        DBTX
	SessionID uuid.UUID
	Next      slog.Handler

	attrs []slog.Attr
	group string
}

func NewLogHandler(db DBTX, sessionID uuid.UUID, next slog.Handler) *LogHandler {
	return &LogHandler{
		DB:        db,
		SessionID: sessionID,
		Next:      next,
	}
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.Next != nil {
		return h.Next.Enabled(ctx, level)
	}
	return level >= slog.LevelInfo
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make(map[string]any)
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[h.key(a.Key)] = a.Value.Any()
		return true
	})

	metaJSON, err := json.Marshal(attrs)
	if err != nil {
		metaJSON = []byte("{}")
	}

	query := `
		INSERT INTO search_logs (session_id, timestamp, level, message, metadata)
		VALUES ($1, $2, $3, $4, $5)
	`

	// Background context so records persist even if the request is gone.
	_, dbErr := h.DB.Exec(context.Background(), query, h.SessionID, r.Time, r.Level.String(), r.Message, metaJSON)

	if h.Next != nil {
		if err := h.Next.Handle(ctx, r); err != nil {
			return err
		}
	}
	return dbErr
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), prefixed(h, attrs)...)
	if h.Next != nil {
		next.Next = h.Next.WithAttrs(attrs)
	}
	return &next
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = h.key(name)
	if h.Next != nil {
		next.Next = h.Next.WithGroup(name)
	}
	return &next
}

func (h *LogHandler) key(k string) string {
	if h.group == "" {
		return k
	}
	return h.group + "." + k
}

func prefixed(h *LogHandler, attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.key(a.Key), Value: a.Value}
	}
	return out
}
