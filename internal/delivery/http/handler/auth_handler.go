package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swappi-app/swappi-backend/internal/delivery/http/middleware"
	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/usecase/auth"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req auth.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	resp, err := h.authUseCase.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	resp, err := h.authUseCase.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	value, _ := c.Get(middleware.ContextClaims)
	claims, ok := value.(*auth.Claims)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": domain.SessionLoggedOut})
}

// Session handles GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	session, err := h.authUseCase.Session(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}
