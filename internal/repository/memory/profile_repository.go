// Package memory provides in-process repositories for local development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

type profileRepository struct {
	mu    sync.RWMutex
	docs  map[string]*domain.Profile
	order []string
	now   func() time.Time
}

func NewProfileRepository() repository.ProfileRepository {
	return &profileRepository{
		docs: make(map[string]*domain.Profile),
		now:  time.Now,
	}
}

func (r *profileRepository) Upsert(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.docs[profile.ID]; !exists {
		r.order = append(r.order, profile.ID)
	}
	stored := profile.Clone()
	stored.UpdatedAt = r.now().UTC()
	profile.UpdatedAt = stored.UpdatedAt
	r.docs[profile.ID] = stored
	return nil
}

func (r *profileRepository) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.docs[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (r *profileRepository) List(_ context.Context) ([]*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*domain.Profile, 0, len(r.order))
	for _, id := range r.order {
		profiles = append(profiles, r.docs[id].Clone())
	}
	return profiles, nil
}

func (r *profileRepository) AddSaved(_ context.Context, viewerID, candidateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.docs[viewerID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	if !p.HasSaved(candidateID) {
		p.SavedProfiles = append(p.SavedProfiles, candidateID)
	}
	return nil
}

func (r *profileRepository) RemoveSaved(_ context.Context, viewerID, candidateID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.docs[viewerID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	kept := p.SavedProfiles[:0]
	for _, id := range p.SavedProfiles {
		if id != candidateID {
			kept = append(kept, id)
		}
	}
	p.SavedProfiles = kept
	return nil
}
