package database

import (
	"context"
	"fmt"
)

func (db *PostgresDB) InitSchema(ctx context.Context) error {
	// 1. Searches
	searchesQuery := `
		CREATE TABLE IF NOT EXISTS searches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			query TEXT NOT NULL,
			status TEXT NOT NULL,
			text TEXT,
			sources JSONB,
			has_image BOOLEAN NOT NULL DEFAULT FALSE,
			image_error TEXT,
			error TEXT,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`
	if _, err := db.Pool.Exec(ctx, searchesQuery); err != nil {
		return fmt.Errorf("failed to create searches table: %w", err)
	}

	// 2. Logs, grouped by process session
	logsQuery := `
		CREATE TABLE IF NOT EXISTS search_logs (
			id SERIAL PRIMARY KEY,
			session_id UUID NOT NULL,
			timestamp TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			level TEXT NOT NULL,
			message TEXT NOT NULL,
			metadata JSONB
		);
	`
	if _, err := db.Pool.Exec(ctx, logsQuery); err != nil {
		return fmt.Errorf("failed to create search_logs table: %w", err)
	}

	if _, err := db.Pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at DESC)"); err != nil {
		return fmt.Errorf("failed to create index on searches: %w", err)
	}
	if _, err := db.Pool.Exec(ctx, "CREATE INDEX IF NOT EXISTS idx_search_logs_session_id ON search_logs(session_id)"); err != nil {
		return fmt.Errorf("failed to create index on search_logs: %w", err)
	}

	return nil
}
