package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/session"
)

func guardTestSetup(t *testing.T) (*gin.Engine, *session.Manager, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName: "storefront_session",
			TTL:        time.Hour,
		},
	}
	sessions := session.NewManager(session.NewMemoryStore(cfg.Session.TTL))

	router := gin.New()
	router.GET("/guarded", SessionRequired(sessions, cfg), func(c *gin.Context) {
		token, _ := GetTokenFromContext(c)
		name, _ := GetDisplayNameFromContext(c)
		c.JSON(http.StatusOK, gin.H{"token": token, "display_name": name})
	})
	router.GET("/open", SessionOptional(sessions, cfg), func(c *gin.Context) {
		_, signedIn := GetTokenFromContext(c)
		c.JSON(http.StatusOK, gin.H{"signed_in": signedIn})
	})

	return router, sessions, cfg
}

func TestSessionRequired_NoCookie(t *testing.T) {
	router, _, _ := guardTestSetup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Please sign in", body["error"])
	assert.Equal(t, SignInPath, body["sign_in"])
}

func TestSessionRequired_UnknownSession(t *testing.T) {
	router, _, cfg := guardTestSetup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: "stale-id"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRequired_ValidSession(t *testing.T) {
	router, sessions, cfg := guardTestSetup(t)

	id, err := sessions.Create(context.Background(), session.Session{Token: "jwt-abc", DisplayName: "Sara"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: id})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "jwt-abc", body["token"])
	assert.Equal(t, "Sara", body["display_name"])
}

func TestSessionRequired_SignedOutSessionIsRejected(t *testing.T) {
	router, sessions, cfg := guardTestSetup(t)

	id, err := sessions.Create(context.Background(), session.Session{Token: "jwt-abc"})
	require.NoError(t, err)
	require.NoError(t, sessions.Clear(context.Background(), id))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: cfg.Session.CookieName, Value: id})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionOptional_NeverBlocks(t *testing.T) {
	router, _, _ := guardTestSetup(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body["signed_in"])
}
