package match

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/metrics"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

// Explainer produces a short human-readable reason for a match.
type Explainer interface {
	ExplainMatch(ctx context.Context, viewer, candidate *domain.Profile, score int) (string, error)
}

type MatchUseCase struct {
	matchRepo   repository.MatchRepository
	profileRepo repository.ProfileRepository
	explainer   Explainer
	log         *zap.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewMatchUseCase builds the recorder. explainer may be nil.
func NewMatchUseCase(
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	explainer Explainer,
	log *zap.Logger,
	m *metrics.Metrics,
) *MatchUseCase {
	return &MatchUseCase{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		explainer:   explainer,
		log:         log,
		metrics:     m,
		now:         time.Now,
	}
}

// RecordMatch scores candidate from the viewer's side and stores the record,
// replacing any earlier one for the same pair.
func (uc *MatchUseCase) RecordMatch(ctx context.Context, viewerID, candidateID string) (*domain.MatchRecord, error) {
	if viewerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if viewerID == candidateID {
		return nil, domain.ErrCannotMatchSelf
	}

	viewer, err := uc.profileRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	candidate, err := uc.profileRepo.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	record := &domain.MatchRecord{
		ViewerID:    viewerID,
		CandidateID: candidateID,
		Score:       Score(viewer, candidate),
		Timestamp:   uc.now().UTC().Truncate(time.Millisecond),
	}

	if uc.explainer != nil {
		explanation, err := uc.explainer.ExplainMatch(ctx, viewer, candidate, record.Score)
		if err != nil {
			uc.log.Warn("match explanation failed",
				zap.String("viewer_id", viewerID),
				zap.String("candidate_id", candidateID),
				zap.Error(err),
			)
		} else if explanation != "" {
			record.Explanation = &explanation
		}
	}

	if err := uc.matchRepo.Store(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record match: %w", err)
	}
	uc.metrics.MatchesRecorded.Inc()

	uc.log.Info("match recorded",
		zap.String("viewer_id", viewerID),
		zap.String("candidate_id", candidateID),
		zap.Int("score", record.Score),
	)
	return record, nil
}

// ListMatches returns the viewer's match records, newest first.
func (uc *MatchUseCase) ListMatches(ctx context.Context, viewerID string) ([]*domain.MatchRecord, error) {
	if viewerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	matches, err := uc.matchRepo.ListByViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []*domain.MatchRecord{}
	}
	return matches, nil
}

// GetMatch returns the viewer's record for candidateID, or domain.ErrMatchNotFound.
func (uc *MatchUseCase) GetMatch(ctx context.Context, viewerID, candidateID string) (*domain.MatchRecord, error) {
	if viewerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if candidateID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.matchRepo.Get(ctx, viewerID, candidateID)
}
