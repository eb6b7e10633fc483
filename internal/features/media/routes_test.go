package media

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/crimewatch/crimewatch-api/internal/config"
	"github.com/crimewatch/crimewatch-api/internal/pkg/jwt"
)

func newMediaRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "media-route-test-secret"}

	router := gin.New()
	api := router.Group("/api/v1")
	RegisterRoutes(api, cfg)
	return router, cfg
}

func TestUploadEvidence_RequiresToken(t *testing.T) {
	router, _ := newMediaRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/evidence", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadEvidence_RejectsBadToken(t *testing.T) {
	router, _ := newMediaRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/evidence", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadEvidence_TokenAloneIsEnough(t *testing.T) {
	router, cfg := newMediaRouter(t)

	// A bare token gets past the guard without any account lookup. With
	// no Cloudinary credentials the handler then reports the feature as
	// disabled rather than failing auth.
	token, err := jwt.GenerateToken(primitive.NewObjectID().Hex(), "officer@example.com", "OFFICER", jwt.DefaultConfig(cfg.JWTSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media/evidence", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "MEDIA_DISABLED", body["code"])
}
