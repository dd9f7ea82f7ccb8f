package handler

import (
	"net/http"
	"strconv"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase}
}

// CreateProfile handles POST /profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	created, err := h.profileUseCase.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetMyProfile handles GET /profile/me
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	found, err := h.profileUseCase.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}

// UpdateMyProfile handles PUT /profile/me
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	profileID, ok := currentProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), profileID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// SetMyActive handles POST /profile/me/activate and /profile/me/deactivate.
// Deactivation removes the profile from feeds without touching its matches.
func (h *ProfileHandler) SetMyActive(isActive bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID, ok := currentProfileID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
			return
		}

		if err := h.profileUseCase.SetActive(c.Request.Context(), profileID, isActive); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"is_active": isActive})
	}
}

// GetProfileByID handles GET /profile/:profile_id
func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid profile id"})
		return
	}

	found, err := h.profileUseCase.GetProfile(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}
