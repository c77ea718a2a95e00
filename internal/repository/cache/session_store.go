package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/swappi-app/swappi-backend/internal/repository"
)

type sessionStore struct {
	client redis.UniversalClient
}

// NewSessionStore keeps revoked token ids in redis with the token's remaining lifetime as TTL.
func NewSessionStore(client redis.UniversalClient) repository.SessionRepository {
	return &sessionStore{client: client}
}

func revokedKey(tokenID string) string {
	return namespace + ":revoked:" + tokenID
}

func (s *sessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(tokenID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *sessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
