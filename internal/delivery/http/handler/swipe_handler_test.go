package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/Villegascvrr/homi-connect-30-sub001/internal/domain"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/repository/memory"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/usecase/swipe"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupSwipeRouter(t *testing.T) (*gin.Engine, *memory.ProfileRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prefs := memory.NewPreferenceRepository()
	matches := memory.NewMatchRepository()
	profiles := memory.NewProfileRepository()
	uc := swipe.NewSwipeUseCase(prefs, matches, profiles, nil, zap.NewNop(), true)
	h := NewSwipeHandler(uc)

	router := gin.New()
	router.POST("/swipes", func(c *gin.Context) {
		// Stands in for the auth middleware.
		if raw := c.GetHeader("X-Test-Profile"); raw != "" {
			id, err := strconv.Atoi(raw)
			require.NoError(t, err)
			c.Set("profile_id", id)
		}
		h.RecordSwipe(c)
	})
	return router, profiles
}

func doSwipe(t *testing.T, router *gin.Engine, profileID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/swipes", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if profileID != "" {
		req.Header.Set("X-Test-Profile", profileID)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func seedProfiles(t *testing.T, profiles *memory.ProfileRepository, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		require.NoError(t, profiles.Create(context.Background(), &domain.Profile{FirstName: "Test", IsActive: true}))
	}
}

func TestRecordSwipeHandler_Unauthorized(t *testing.T) {
	router, _ := setupSwipeRouter(t)

	recorder := doSwipe(t, router, "", gin.H{"target_id": 2, "decision": "like"})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRecordSwipeHandler_InvalidDecision(t *testing.T) {
	router, profiles := setupSwipeRouter(t)
	seedProfiles(t, profiles, 2)

	recorder := doSwipe(t, router, "1", gin.H{"target_id": 2, "decision": "superlike"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRecordSwipeHandler_SelfSwipe(t *testing.T) {
	router, profiles := setupSwipeRouter(t)
	seedProfiles(t, profiles, 2)

	recorder := doSwipe(t, router, "1", gin.H{"target_id": 1, "decision": "like"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRecordSwipeHandler_LikeThenMutualMatch(t *testing.T) {
	router, profiles := setupSwipeRouter(t)
	seedProfiles(t, profiles, 2)

	recorder := doSwipe(t, router, "1", gin.H{"target_id": 2, "decision": "like"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var first swipe.SwipeResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &first))
	assert.False(t, first.IsMatch)

	recorder = doSwipe(t, router, "2", gin.H{"target_id": 1, "decision": "like"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var second swipe.SwipeResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &second))
	assert.True(t, second.IsMatch)
	require.NotNil(t, second.Match)
	assert.Equal(t, 1, second.Match.ProfileAID)
	assert.Equal(t, 2, second.Match.ProfileBID)
}
