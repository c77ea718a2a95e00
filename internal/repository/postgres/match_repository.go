package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) Store(ctx context.Context, match *domain.MatchRecord) error {
	query := `
		INSERT INTO matches (viewer_id, candidate_id, score, explanation, created_at)
		VALUES (:viewer_id, :candidate_id, :score, :explanation, :created_at)
		ON CONFLICT (viewer_id, candidate_id) DO UPDATE SET
			score = EXCLUDED.score,
			explanation = EXCLUDED.explanation,
			created_at = EXCLUDED.created_at
	`
	if _, err := r.db.NamedExecContext(ctx, query, match); err != nil {
		return fmt.Errorf("failed to store match: %w", err)
	}
	return nil
}

func (r *matchRepository) Get(ctx context.Context, viewerID, candidateID string) (*domain.MatchRecord, error) {
	var match domain.MatchRecord
	query := `
		SELECT viewer_id, candidate_id, score, explanation, created_at
		FROM matches WHERE viewer_id = $1 AND candidate_id = $2
	`
	err := r.db.GetContext(ctx, &match, query, viewerID, candidateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &match, nil
}

func (r *matchRepository) ListByViewer(ctx context.Context, viewerID string) ([]*domain.MatchRecord, error) {
	var matches []*domain.MatchRecord
	query := `
		SELECT viewer_id, candidate_id, score, explanation, created_at
		FROM matches
		WHERE viewer_id = $1
		ORDER BY created_at DESC, candidate_id
	`
	if err := r.db.SelectContext(ctx, &matches, query, viewerID); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}
