package feed

import (
	"context"
	"fmt"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository"
	"github.com/swappi-app/swappi-backend/internal/usecase/match"
)

type FeedUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewFeedUseCase(profileRepo repository.ProfileRepository) *FeedUseCase {
	return &FeedUseCase{profileRepo: profileRepo}
}

// FetchCandidates returns every decodable profile except excludingID, in store order.
// An empty excludingID excludes nothing.
func (uc *FeedUseCase) FetchCandidates(ctx context.Context, excludingID string) ([]*domain.Profile, error) {
	all, err := uc.profileRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}
	if excludingID == "" {
		return all, nil
	}
	candidates := make([]*domain.Profile, 0, len(all))
	for _, p := range all {
		if p.ID != excludingID {
			candidates = append(candidates, p)
		}
	}
	return candidates, nil
}

// Explore ranks all other profiles by how well they serve the viewer.
func (uc *FeedUseCase) Explore(ctx context.Context, viewerID string) ([]domain.ScoredCandidate, error) {
	if viewerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	candidates, err := uc.FetchCandidates(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return match.Rank(viewer, candidates), nil
}
