package repository

import (
	"context"
	"time"

	"github.com/swappi-app/swappi-backend/internal/domain"
)

type UserRepository interface {
	// Create returns domain.ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// Delete removes the account. Deleting a missing account is not an error.
	Delete(ctx context.Context, id string) error
}

// SessionRepository tracks revoked token ids until the tokens would have expired anyway.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
