package repository

import (
	"context"

	"github.com/swappi-app/swappi-backend/internal/domain"
)

// ProfileRepository is the document store for profiles, keyed by the owner's user id.
type ProfileRepository interface {
	// Upsert overwrites the whole document for profile.ID.
	Upsert(ctx context.Context, profile *domain.Profile) error
	// GetByID returns domain.ErrProfileNotFound when absent and wraps domain.ErrDecode
	// when the stored document is missing required fields.
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	// List scans every profile in fetch order. Documents that fail to decode are
	// skipped and logged, never returned as an error.
	List(ctx context.Context) ([]*domain.Profile, error)
	// AddSaved adds candidateID to the viewer's savedProfiles set. Adding twice is a no-op.
	AddSaved(ctx context.Context, viewerID, candidateID string) error
	// RemoveSaved removes candidateID from the viewer's savedProfiles set.
	RemoveSaved(ctx context.Context, viewerID, candidateID string) error
}
