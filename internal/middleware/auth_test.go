package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entrydesk/internal/config"
	"entrydesk/internal/domain"
	"entrydesk/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{Secret: "test-secret", Issuer: "entrydesk"}
}

func mintToken(t *testing.T, cfg *config.JWTConfig, clientID string, role domain.UserRole, expiry time.Duration) string {
	t.Helper()
	claims := &middleware.ServiceClaims{
		ClientID: clientID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	cfg := testJWTConfig()
	tokenStr := mintToken(t, cfg, "portal-backend", domain.RoleAdmin, time.Hour)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(cfg))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"client_id": middleware.GetClientID(c),
			"role":      middleware.GetRole(c),
		})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "portal-backend", resp["client_id"])
	assert.Equal(t, "admin", resp["role"])
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(testJWTConfig()))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	tokenStr := mintToken(t, cfg, "portal-backend", domain.RoleViewer, -time.Minute)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(cfg))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	other := &config.JWTConfig{Secret: "other-secret", Issuer: cfg.Issuer}
	tokenStr := mintToken(t, other, "portal-backend", domain.RoleAdmin, time.Hour)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(cfg))
	r.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	cfg := testJWTConfig()
	tokenStr := mintToken(t, cfg, "reporting-ui", domain.RoleViewer, time.Hour)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(cfg))
	r.POST("/admin", middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/admin", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRole_Allowed(t *testing.T) {
	cfg := testJWTConfig()
	tokenStr := mintToken(t, cfg, "portal-backend", domain.RoleAdmin, time.Hour)

	r := gin.New()
	r.Use(middleware.AuthMiddleware(cfg))
	r.POST("/admin", middleware.RequireRole(domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/admin", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tokenStr)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
