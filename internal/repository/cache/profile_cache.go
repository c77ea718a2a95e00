// Package cache wraps repositories with redis-backed read-through caching.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

const (
	namespace     = "swappi"
	candidatesKey = namespace + ":profiles:all"
)

// profileCache serves List from redis and drops the cached scan on every write.
// Redis failures are logged and the call falls through to the wrapped repository.
type profileCache struct {
	next   repository.ProfileRepository
	client redis.UniversalClient
	ttl    time.Duration
	log    *zap.Logger
}

func NewProfileCache(next repository.ProfileRepository, client redis.UniversalClient, ttl time.Duration, log *zap.Logger) repository.ProfileRepository {
	return &profileCache{next: next, client: client, ttl: ttl, log: log}
}

func (c *profileCache) List(ctx context.Context) ([]*domain.Profile, error) {
	cached, err := c.client.Get(ctx, candidatesKey).Bytes()
	switch {
	case err == nil:
		var profiles []*domain.Profile
		if err := json.Unmarshal(cached, &profiles); err == nil {
			return profiles, nil
		}
		c.log.Warn("dropping corrupt candidate cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn("candidate cache read failed", zap.Error(err))
	}

	profiles, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(profiles)
	if err != nil {
		return profiles, nil
	}
	if err := c.client.Set(ctx, candidatesKey, payload, c.ttl).Err(); err != nil {
		c.log.Warn("candidate cache write failed", zap.Error(err))
	}
	return profiles, nil
}

func (c *profileCache) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return c.next.GetByID(ctx, id)
}

func (c *profileCache) Upsert(ctx context.Context, profile *domain.Profile) error {
	if err := c.next.Upsert(ctx, profile); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *profileCache) AddSaved(ctx context.Context, viewerID, candidateID string) error {
	if err := c.next.AddSaved(ctx, viewerID, candidateID); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *profileCache) RemoveSaved(ctx context.Context, viewerID, candidateID string) error {
	if err := c.next.RemoveSaved(ctx, viewerID, candidateID); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *profileCache) invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, candidatesKey).Err(); err != nil {
		c.log.Warn("candidate cache invalidation failed", zap.Error(err))
	}
}
