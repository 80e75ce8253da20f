package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS templates (
		id TEXT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		snapshot JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		deleted_at TIMESTAMP WITH TIME ZONE
	)`,

	`CREATE TABLE IF NOT EXISTS publishes (
		id BIGSERIAL PRIMARY KEY,
		template_id TEXT NOT NULL REFERENCES templates(id),
		status VARCHAR(20) NOT NULL DEFAULT 'queued',
		object_keys JSONB,
		error TEXT,
		created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		finished_at TIMESTAMP WITH TIME ZONE
	)`,

	`CREATE INDEX IF NOT EXISTS publishes_template_idx ON publishes (template_id, created_at DESC)`,
}

// Migrate applies the schema statements in order. Statements are written to
// be re-runnable.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}
