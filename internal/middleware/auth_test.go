package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kosrental/internal/domain"
	jwtsvc "kosrental/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(jwt *jwtsvc.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/", Auth(jwt))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id"), "role": c.GetString("role")})
	})

	admin := r.Group("/admin", Auth(jwt), AdminOnly())
	admin.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return r
}

func TestAuth_MissingHeader(t *testing.T) {
	jwt := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	r := testRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	jwt := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	r := testRouter(jwt)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	jwt := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	r := testRouter(jwt)

	token, err := jwt.GenerateToken(7, domain.RoleTenant)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestAuth_WrongSecret(t *testing.T) {
	jwt := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	other := jwtsvc.New("another_secret_key_32_chars_long!", time.Hour)
	r := testRouter(jwt)

	token, err := other.GenerateToken(7, domain.RoleTenant)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly_TenantForbidden(t *testing.T) {
	jwt := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	r := testRouter(jwt)

	token, err := jwt.GenerateToken(7, domain.RoleTenant)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnly_AdminAllowed(t *testing.T) {
	jwt := jwtsvc.New("test_secret_key_32_characters_min", time.Hour)
	r := testRouter(jwt)

	token, err := jwt.GenerateToken(1, domain.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
