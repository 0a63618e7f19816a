package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nobirs/FoodTracker/internal/user"
	"github.com/Nobirs/FoodTracker/internal/utils"
)

func newGuardedRouter(t *testing.T, users *fakeUserService, codec *utils.TokenCodec) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	guarded := router.Group("/")
	guarded.Use(Middleware(users, codec, zap.NewNop()))
	guarded.GET("/whoami", func(c *gin.Context) {
		current, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"name": current.Name})
	})
	return router
}

func guardCodec(t *testing.T, accessTTL time.Duration) *utils.TokenCodec {
	t.Helper()
	codec, err := utils.NewTokenCodec(&utils.TokenConfig{
		Secret:        "guard-test-secret",
		Algorithm:     "HS256",
		AccessExpiry:  accessTTL,
		RefreshExpiry: time.Hour,
	})
	require.NoError(t, err)
	return codec
}

func TestMiddleware_ValidToken(t *testing.T) {
	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	codec := guardCodec(t, 30*time.Minute)
	router := newGuardedRouter(t, &fakeUserService{byName: map[string]*user.User{"alice": alice}}, codec)

	token, err := codec.IssueAccess("alice", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestMiddleware_MissingHeader(t *testing.T) {
	codec := guardCodec(t, 30*time.Minute)
	router := newGuardedRouter(t, &fakeUserService{byName: map[string]*user.User{}}, codec)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	codec := guardCodec(t, 30*time.Minute)
	router := newGuardedRouter(t, &fakeUserService{byName: map[string]*user.User{}}, codec)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_ExpiredToken(t *testing.T) {
	alice := testUser(t, 1, "alice", "alice@example.com", "password1")
	codec := guardCodec(t, -time.Second)
	router := newGuardedRouter(t, &fakeUserService{byName: map[string]*user.User{"alice": alice}}, codec)

	token, err := codec.IssueAccess("alice", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_SubjectGone(t *testing.T) {
	codec := guardCodec(t, 30*time.Minute)
	// token verifies fine, but the account no longer exists
	router := newGuardedRouter(t, &fakeUserService{byName: map[string]*user.User{}}, codec)

	token, err := codec.IssueAccess("alice", "alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
