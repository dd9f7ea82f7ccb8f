package handler

import (
	"net/http"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/feed"
	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase *feed.FeedUseCase
}

func NewFeedHandler(feedUseCase *feed.FeedUseCase) *FeedHandler {
	return &FeedHandler{feedUseCase: feedUseCase}
}

// GetCandidates handles GET /feed
func (h *FeedHandler) GetCandidates(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	candidates, err := h.feedUseCase.GetCandidates(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
