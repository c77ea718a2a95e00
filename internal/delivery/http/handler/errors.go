package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swappi-app/swappi-backend/internal/delivery/http/middleware"
	"github.com/swappi-app/swappi-backend/internal/domain"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// respondError maps domain errors to HTTP statuses. Server-side failures are attached
// to the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrValidation.Error(), Details: verr.Problems})
		return
	}

	status := statusFor(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		_ = c.Error(err)
		message = "internal server error"
	case http.StatusBadGateway:
		_ = c.Error(err)
		message = domain.ErrUpload.Error()
	}
	c.JSON(status, ErrorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrCannotMatchSelf):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEncoding):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUpload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// currentUserID returns the authenticated caller set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: domain.ErrUnauthenticated.Error()})
		return "", false
	}
	return userID, true
}
