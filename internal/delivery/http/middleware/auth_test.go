package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewAuthMiddleware(testSecret).RequireAuth())
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"profile_id": c.GetInt("profile_id")})
	})
	return router
}

func doAuthRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	router := setupAuthRouter()
	recorder := doAuthRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	router := setupAuthRouter()
	token := signToken(t, "another-secret-another-secret-xx", jwt.MapClaims{"profile_id": 7})
	recorder := doAuthRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAuth_MissingProfileClaim(t *testing.T) {
	router := setupAuthRouter()
	token := signToken(t, testSecret, jwt.MapClaims{"sub": "7"})
	recorder := doAuthRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	router := setupAuthRouter()
	token := signToken(t, testSecret, jwt.MapClaims{"profile_id": 7})
	recorder := doAuthRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"profile_id": 7}`, recorder.Body.String())
}
