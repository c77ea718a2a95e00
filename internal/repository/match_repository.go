package repository

import (
	"context"

	"github.com/swappi-app/swappi-backend/internal/domain"
)

type MatchRepository interface {
	// Store writes the record for (ViewerID, CandidateID), replacing any earlier one.
	Store(ctx context.Context, match *domain.MatchRecord) error
	Get(ctx context.Context, viewerID, candidateID string) (*domain.MatchRecord, error)
	// ListByViewer returns the viewer's records, newest first.
	ListByViewer(ctx context.Context, viewerID string) ([]*domain.MatchRecord, error)
}
