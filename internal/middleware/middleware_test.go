package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArowuTest/skillprize-backend/internal/config"
	"github.com/ArowuTest/skillprize-backend/internal/models"
	"github.com/ArowuTest/skillprize-backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{AllowedHosts: []string{"https://skillprize.example"}},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600},
	}
}

func performRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, cfg *config.Config, role string) (string, string) {
	t.Helper()
	user := &models.User{ID: primitive.NewObjectID(), Email: "user@example.com", Role: role}
	token, err := utils.GenerateJWT(user, cfg.JWT)
	require.NoError(t, err)
	return token, user.ID.Hex()
}

func protectedRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware())
	auth := r.Group("/", JWTAuthMiddleware(cfg))
	auth.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c), "role": c.GetString(ContextUserRole)})
	})
	auth.GET("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg)

	w := performRequest(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodGet, "/me", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")

	expiredCfg := testConfig()
	expiredCfg.JWT.ExpiresIn = -60
	expired, _ := tokenFor(t, expiredCfg, models.RoleUser)
	w = performRequest(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + expired})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")

	token, userID := tokenFor(t, cfg, models.RoleUser)
	w = performRequest(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID)
}

func TestAdminOnly(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg)

	userToken, _ := tokenFor(t, cfg, models.RoleUser)
	w := performRequest(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + userToken})
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, _ := tokenFor(t, cfg, models.RoleAdmin)
	w = performRequest(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + adminToken})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(testConfig()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(r, http.MethodOptions, "/ping", map[string]string{"Origin": "https://skillprize.example"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://skillprize.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = performRequest(r, http.MethodGet, "/ping", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddleware_AnyOriginWithoutCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Server.AllowedHosts = nil
	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := performRequest(r, http.MethodGet, "/ping", map[string]string{"Origin": "https://anywhere.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := performRequest(r, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	w = performRequest(r, http.MethodGet, "/ping", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
