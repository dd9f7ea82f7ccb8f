package handler

import (
	"net/http"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// ListMatches handles GET /matches
func (h *MatchHandler) ListMatches(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	views, err := h.matchUseCase.ListMatches(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": views})
}
