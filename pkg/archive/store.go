package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mikeboe/guia-procesos/pkg/search"
)

// DBTX is the subset of *pgxpool.Pool used by the archive.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Search is one archived, settled search.
type Search struct {
	ID         uuid.UUID         `json:"id"`
	Query      string            `json:"query"`
	Status     string            `json:"status"`
	Text       string            `json:"text"`
	Sources    []search.Citation `json:"sources"`
	HasImage   bool              `json:"has_image"`
	ImageError string            `json:"image_error,omitempty"`
	Error      string            `json:"error,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Store persists settled searches.
type Store struct {
	DB DBTX
}

func NewStore(db DBTX) *Store {
	return &Store{DB: db}
}

func fromState(st search.State) Search {
	s := Search{
		Query:      st.Query,
		Status:     string(st.Status),
		Sources:    []search.Citation{},
		HasImage:   st.ImageURL != "",
		ImageError: st.ImageError,
		Error:      st.Error,
	}
	if st.Result != nil {
		s.Text = st.Result.Text
		if st.Result.Sources != nil {
			s.Sources = st.Result.Sources
		}
	}
	return s
}

// Save archives st. Image payloads are not stored, only whether one was produced.
func (s *Store) Save(ctx context.Context, st search.State) (uuid.UUID, error) {
	rec := fromState(st)
	sourcesJSON, err := json.Marshal(rec.Sources)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal sources: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO searches (id, query, status, text, sources, has_image, image_error, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.DB.Exec(ctx, query, id, rec.Query, rec.Status, rec.Text, sourcesJSON, rec.HasImage, rec.ImageError, rec.Error)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to archive search: %w", err)
	}
	return id, nil
}

const selectSearch = `
	SELECT id, query, status, text, sources, has_image, image_error, error, created_at
	FROM searches
`

func scanSearch(row pgx.Row) (Search, error) {
	var (
		rec     Search
		sources []byte
	)
	if err := row.Scan(&rec.ID, &rec.Query, &rec.Status, &rec.Text, &sources, &rec.HasImage, &rec.ImageError, &rec.Error, &rec.CreatedAt); err != nil {
		return Search{}, err
	}
	if err := json.Unmarshal(sources, &rec.Sources); err != nil {
		return Search{}, fmt.Errorf("failed to unmarshal sources: %w", err)
	}
	return rec, nil
}

// List returns the most recent archived searches.
func (s *Store) List(ctx context.Context, limit int) ([]Search, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.Query(ctx, selectSearch+" ORDER BY created_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var out []Search
	for rows.Next() {
		rec, err := scanSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Get returns one archived search.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Search, error) {
	rec, err := scanSearch(s.DB.QueryRow(ctx, selectSearch+" WHERE id = $1", id))
	if err != nil {
		return nil, fmt.Errorf("failed to get search: %w", err)
	}
	return &rec, nil
}
