package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coinvest/config"
	"coinvest/internal/auth"
	"coinvest/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtCfg() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "access",
		RefreshSecret: "refresh",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "test",
	}
}

func protectedRouter(cfg *config.JWTConfig, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthRequired(cfg)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		p := GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"kind": p.Kind, "id": p.ID})
	})
	r.GET("/protected", handlers...)
	return r
}

func doGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	cfg := jwtCfg()
	r := protectedRouter(cfg)

	token, err := auth.GenerateAccessToken(cfg, 5, "u@x.io", domain.PrincipalUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+token).Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Token "+token).Code)
}

func TestAuthRequiredExpiredToken(t *testing.T) {
	cfg := jwtCfg()
	cfg.AccessExpiry = -time.Minute
	token, err := auth.GenerateAccessToken(cfg, 5, "u@x.io", domain.PrincipalUser)
	require.NoError(t, err)

	r := protectedRouter(cfg)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "Bearer "+token).Code)
}

func TestUserOnlyRejectsAdminToken(t *testing.T) {
	cfg := jwtCfg()
	r := protectedRouter(cfg, UserOnly())

	userToken, err := auth.GenerateAccessToken(cfg, 5, "u@x.io", domain.PrincipalUser)
	require.NoError(t, err)
	adminToken, err := auth.GenerateAccessToken(cfg, 1, "a@x.io", domain.PrincipalAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+adminToken).Code)
}

func TestAdminRequired(t *testing.T) {
	cfg := jwtCfg()
	r := protectedRouter(cfg, AdminRequired())

	userToken, err := auth.GenerateAccessToken(cfg, 5, "u@x.io", domain.PrincipalUser)
	require.NoError(t, err)
	adminToken, err := auth.GenerateAccessToken(cfg, 1, "a@x.io", domain.PrincipalAdmin)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "Bearer "+adminToken).Code)
}

func TestGetUserIDZeroForAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("principal", Principal{Kind: domain.PrincipalAdmin, ID: 3})
	assert.Equal(t, uint(0), GetUserID(c))

	c.Set("principal", Principal{Kind: domain.PrincipalUser, ID: 3})
	assert.Equal(t, uint(3), GetUserID(c))
}
