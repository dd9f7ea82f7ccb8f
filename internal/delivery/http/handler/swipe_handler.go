package handler

import (
	"net/http"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/swipe"
	"github.com/gin-gonic/gin"
)

type SwipeHandler struct {
	swipeUseCase *swipe.SwipeUseCase
}

func NewSwipeHandler(swipeUseCase *swipe.SwipeUseCase) *SwipeHandler {
	return &SwipeHandler{swipeUseCase: swipeUseCase}
}

// RecordSwipe handles POST /swipes
func (h *SwipeHandler) RecordSwipe(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req swipe.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	response, err := h.swipeUseCase.RecordSwipe(c.Request.Context(), profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if response.IsMatch {
		status = http.StatusCreated
	}
	c.JSON(status, response)
}
