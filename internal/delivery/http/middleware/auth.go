package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/usecase/auth"
)

const (
	ContextUserID    = "user_id"
	ContextUserName  = "user_name"
	ContextUserEmail = "user_email"
	ContextClaims    = "claims"
)

// TokenValidator resolves a bearer token into its claims.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth rejects requests without a valid bearer token and stores the caller's
// identity in the gin context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthenticated.Error()})
			return
		}

		claims, err := m.validator.ValidateToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, domain.ErrInvalidToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserName, claims.Name)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}
