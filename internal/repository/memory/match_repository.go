package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

type matchKey struct {
	viewer    string
	candidate string
}

type matchRepository struct {
	mu      sync.RWMutex
	matches map[matchKey]domain.MatchRecord
}

func NewMatchRepository() repository.MatchRepository {
	return &matchRepository{matches: make(map[matchKey]domain.MatchRecord)}
}

func (r *matchRepository) Store(_ context.Context, match *domain.MatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.matches[matchKey{match.ViewerID, match.CandidateID}] = *match
	return nil
}

func (r *matchRepository) Get(_ context.Context, viewerID, candidateID string) (*domain.MatchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.matches[matchKey{viewerID, candidateID}]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return &m, nil
}

func (r *matchRepository) ListByViewer(_ context.Context, viewerID string) ([]*domain.MatchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.MatchRecord
	for k, m := range r.matches {
		if k.viewer == viewerID {
			m := m
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].CandidateID < out[j].CandidateID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
