package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository/memory"
)

func profile(id, mood, vibe string, known, wanted []string) *domain.Profile {
	p := domain.NewSeedProfile(id, id, id+"@example.com")
	p.Mood, p.Vibe = mood, vibe
	p.SkillsKnown, p.SkillsWanted = known, wanted
	return p
}

func TestExploreRanksOthersByScore(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProfileRepository()
	require.NoError(t, repo.Upsert(ctx, profile("viewer", "Happy", "Chill", nil, []string{"Guitar", "Cooking"})))
	require.NoError(t, repo.Upsert(ctx, profile("low", "Sad", "Loud", []string{"Chess"}, nil)))
	require.NoError(t, repo.Upsert(ctx, profile("high", "Happy", "chill", []string{"Guitar", "Cooking"}, nil)))
	require.NoError(t, repo.Upsert(ctx, profile("mid", "Sad", "Loud", []string{"Guitar"}, nil)))
	require.NoError(t, repo.Upsert(ctx, profile("tie", "Sad", "Loud", []string{"Chess"}, nil)))

	ranked, err := NewFeedUseCase(repo).Explore(ctx, "viewer")
	require.NoError(t, err)

	var ids []string
	var scores []int
	for _, c := range ranked {
		ids = append(ids, c.Profile.ID)
		scores = append(scores, c.Score)
	}
	assert.Equal(t, []string{"high", "mid", "low", "tie"}, ids)
	assert.Equal(t, []int{60, 20, 0, 0}, scores)
}

func TestFetchCandidatesExcludesViewer(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProfileRepository()
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Upsert(ctx, domain.NewSeedProfile(id, id, id)))
	}
	uc := NewFeedUseCase(repo)

	got, err := uc.FetchCandidates(ctx, "b")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	got, err = uc.FetchCandidates(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestExploreErrors(t *testing.T) {
	uc := NewFeedUseCase(memory.NewProfileRepository())

	_, err := uc.Explore(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.Explore(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
