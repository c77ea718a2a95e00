package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swappi-app/swappi-backend/internal/usecase/match"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

type candidateURI struct {
	CandidateID string `uri:"candidate_id" binding:"required,notblank"`
}

// RecordMatch handles POST /matches/:candidate_id
func (h *MatchHandler) RecordMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var uri candidateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "invalid candidate id")
		return
	}

	record, err := h.matchUseCase.RecordMatch(c.Request.Context(), userID, uri.CandidateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetMatch handles GET /matches/:candidate_id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var uri candidateURI
	if err := c.ShouldBindUri(&uri); err != nil {
		badRequest(c, "invalid candidate id")
		return
	}

	record, err := h.matchUseCase.GetMatch(c.Request.Context(), userID, uri.CandidateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListMatches handles GET /matches
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchUseCase.ListMatches(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
