package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mikeboe/guia-procesos/pkg/archive"
	"github.com/mikeboe/guia-procesos/pkg/export"
	"github.com/mikeboe/guia-procesos/pkg/presentation"
	"github.com/mikeboe/guia-procesos/pkg/search"
)

var (
	ErrNothingToExport   = errors.New("no result to export")
	ErrArchiveDisabled   = errors.New("search archive is not configured")
	ErrExportUnavailable = errors.New("export is unavailable")
)

// DefaultSessionTTL is how long an idle session keeps its state.
const DefaultSessionTTL = 12 * time.Hour

type session struct {
	ctrl     *search.Controller
	lastSeen time.Time
}

// Service is shared by the HTTP and MCP handlers. Every browser or MCP
// session gets its own controller, so state and history are never shared.
type Service struct {
	Text       search.TextGenerator
	Image      search.ImageGenerator
	Exporter   *export.Exporter
	Archive    *archive.Store
	Logger     *slog.Logger
	SessionTTL time.Duration

	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func NewService(text search.TextGenerator, image search.ImageGenerator, exporter *export.Exporter, store *archive.Store) *Service {
	return &Service{
		Text:       text,
		Image:      image,
		Exporter:   exporter,
		Archive:    store,
		Logger:     slog.Default(),
		SessionTTL: DefaultSessionTTL,
		sessions:   make(map[string]*session),
		now:        time.Now,
	}
}

// Session returns the controller for id, creating it on first use.
func (s *Service) Session(id string) *search.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if sess, ok := s.sessions[id]; ok {
		sess.lastSeen = now
		return sess.ctrl
	}

	s.pruneLocked(now)

	ctrl := search.NewController(s.Text, s.Image)
	ctrl.Logger = s.Logger.With("session_id", id)
	if s.Archive != nil {
		ctrl.OnStateUpdate = s.archiveState
	}
	s.sessions[id] = &session{ctrl: ctrl, lastSeen: now}
	s.Logger.Info("Session started", "session_id", id, "active", len(s.sessions))
	return ctrl
}

// SessionCount reports the number of live sessions.
func (s *Service) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// pruneLocked drops idle sessions. A session with a search in flight is kept.
func (s *Service) pruneLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) < s.SessionTTL || sess.ctrl.Snapshot().Loading() {
			continue
		}
		delete(s.sessions, id)
	}
}

func (s *Service) archiveState(st search.State) {
	id, err := s.Archive.Save(context.Background(), st)
	if err != nil {
		s.Logger.Error("Failed to archive search", "query", st.Query, "error", err)
		return
	}
	s.Logger.Info("Search archived", "id", id, "status", st.Status)
}

// ExportCurrent renders the result displayed by ctrl as a document.
func (s *Service) ExportCurrent(ctrl *search.Controller) (filename string, data []byte, err error) {
	view, ok := presentation.BuildResult(ctrl.Snapshot())
	if !ok {
		return "", nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	written, err := s.Exporter.Export(&buf, view)
	if err != nil {
		return "", nil, err
	}
	if !written {
		return "", nil, ErrExportUnavailable
	}
	return export.Filename(view.Query), buf.Bytes(), nil
}

func (s *Service) RecentSearches(ctx context.Context, limit int) ([]archive.Search, error) {
	if s.Archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.Archive.List(ctx, limit)
}

func (s *Service) GetSearch(ctx context.Context, id uuid.UUID) (*archive.Search, error) {
	if s.Archive == nil {
		return nil, ErrArchiveDisabled
	}
	return s.Archive.Get(ctx, id)
}
