package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Profile columns other than id stay nullable: rows written by older clients may lack
// fields, and the repository skips those instead of failing the candidate scan.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL,
		email         TEXT NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_idx ON users (LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id               TEXT PRIMARY KEY,
		name             TEXT,
		email            TEXT,
		skills_known     TEXT[],
		skills_wanted    TEXT[],
		vibe             TEXT,
		mood             TEXT,
		note             TEXT,
		profile_photos   TEXT[],
		hero_blur_hash   TEXT,
		intro_media_url  TEXT,
		intro_media_kind TEXT,
		saved_profiles   TEXT[],
		created_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		viewer_id    TEXT NOT NULL,
		candidate_id TEXT NOT NULL,
		score        INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
		explanation  TEXT,
		created_at   TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (viewer_id, candidate_id)
	)`,
	`CREATE INDEX IF NOT EXISTS matches_viewer_created_idx ON matches (viewer_id, created_at DESC)`,
}

// EnsurePostgresSchema creates the tables used by the postgres repositories.
func EnsurePostgresSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range postgresSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
