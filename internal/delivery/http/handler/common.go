package handler

import (
	"errors"
	"net/http"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("lifestyle", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case domain.LifestyleRelaxed, domain.LifestyleModerate, domain.LifestyleStrict:
				return true
			}
			return false
		})
	}
}

func currentProfileID(c *gin.Context) (int, bool) {
	value, exists := c.Get("profile_id")
	if !exists {
		return 0, false
	}
	id, ok := value.(int)
	return id, ok
}

// respondError maps domain errors to HTTP statuses. Everything unexpected
// collapses into a single retryable failure category for the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCannotSwipeSelf),
		errors.Is(err, domain.ErrInvalidDecision):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrDecisionFinal):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrStoreTimeout):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "temporarily unavailable, try again"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "something went wrong, try again"})
	}
}
