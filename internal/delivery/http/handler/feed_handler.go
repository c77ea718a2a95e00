package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swappi-app/swappi-backend/internal/usecase/feed"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{feedUseCase: feedUseCase}
}

// Explore handles GET /explore
func (h *FeedHandler) Explore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ranked, err := h.feedUseCase.Explore(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	for _, candidate := range ranked {
		candidate.Profile.SavedProfiles = nil
	}
	c.JSON(http.StatusOK, gin.H{"candidates": ranked})
}
