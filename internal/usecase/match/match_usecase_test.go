package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/metrics"
	"github.com/swappi-app/swappi-backend/internal/repository"
	"github.com/swappi-app/swappi-backend/internal/repository/memory"
)

type stubExplainer struct {
	text string
	err  error
}

func (s stubExplainer) ExplainMatch(context.Context, *domain.Profile, *domain.Profile, int) (string, error) {
	return s.text, s.err
}

func seed(t *testing.T) repository.ProfileRepository {
	t.Helper()
	ctx := context.Background()
	repo := memory.NewProfileRepository()

	viewer := domain.NewSeedProfile("viewer", "Viewer", "v@example.com")
	viewer.SkillsWanted = []string{"Guitar", "Cooking"}
	viewer.Mood, viewer.Vibe = "Happy", "Chill"
	require.NoError(t, repo.Upsert(ctx, viewer))

	candidate := domain.NewSeedProfile("cand", "Candidate", "c@example.com")
	candidate.SkillsKnown = []string{"Guitar", "Dancing"}
	candidate.Mood, candidate.Vibe = "Happy", "Energetic"
	require.NoError(t, repo.Upsert(ctx, candidate))
	return repo
}

func newUseCase(t *testing.T, explainer Explainer) (*MatchUseCase, repository.MatchRepository) {
	matches := memory.NewMatchRepository()
	uc := NewMatchUseCase(matches, seed(t), explainer, zap.NewNop(), metrics.NewNop())
	return uc, matches
}

func TestRecordMatchStoresScore(t *testing.T) {
	uc, matches := newUseCase(t, nil)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	record, err := uc.RecordMatch(context.Background(), "viewer", "cand")
	require.NoError(t, err)
	assert.Equal(t, 30, record.Score)
	assert.Nil(t, record.Explanation)
	assert.Equal(t, fixed, record.Timestamp)

	stored, err := matches.Get(context.Background(), "viewer", "cand")
	require.NoError(t, err)
	assert.Equal(t, *record, *stored)

	_, err = matches.Get(context.Background(), "cand", "viewer")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)
}

func TestRecordMatchOverwritesPair(t *testing.T) {
	uc, _ := newUseCase(t, nil)
	ctx := context.Background()

	first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return first }
	_, err := uc.RecordMatch(ctx, "viewer", "cand")
	require.NoError(t, err)

	uc.now = func() time.Time { return first.Add(time.Hour) }
	_, err = uc.RecordMatch(ctx, "viewer", "cand")
	require.NoError(t, err)

	list, err := uc.ListMatches(ctx, "viewer")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.Add(time.Hour), list[0].Timestamp)
}

func TestRecordMatchWithExplanation(t *testing.T) {
	uc, _ := newUseCase(t, stubExplainer{text: "You both love guitar."})

	record, err := uc.RecordMatch(context.Background(), "viewer", "cand")
	require.NoError(t, err)
	require.NotNil(t, record.Explanation)
	assert.Equal(t, "You both love guitar.", *record.Explanation)
}

func TestRecordMatchIgnoresExplainerFailure(t *testing.T) {
	uc, _ := newUseCase(t, stubExplainer{err: errors.New("quota exceeded")})

	record, err := uc.RecordMatch(context.Background(), "viewer", "cand")
	require.NoError(t, err)
	assert.Nil(t, record.Explanation)
}

func TestRecordMatchErrors(t *testing.T) {
	uc, _ := newUseCase(t, nil)
	ctx := context.Background()

	_, err := uc.RecordMatch(ctx, "", "cand")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.RecordMatch(ctx, "viewer", "viewer")
	assert.ErrorIs(t, err, domain.ErrCannotMatchSelf)

	_, err = uc.RecordMatch(ctx, "viewer", "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestListMatchesEmpty(t *testing.T) {
	uc, _ := newUseCase(t, nil)

	list, err := uc.ListMatches(context.Background(), "viewer")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetMatch(t *testing.T) {
	uc, _ := newUseCase(t, nil)
	ctx := context.Background()

	_, err := uc.GetMatch(ctx, "viewer", "cand")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	recorded, err := uc.RecordMatch(ctx, "viewer", "cand")
	require.NoError(t, err)

	got, err := uc.GetMatch(ctx, "viewer", "cand")
	require.NoError(t, err)
	assert.Equal(t, recorded.Score, got.Score)

	// records are directional
	_, err = uc.GetMatch(ctx, "cand", "viewer")
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	_, err = uc.GetMatch(ctx, "", "cand")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = uc.GetMatch(ctx, "viewer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
