// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/session"
)

// SignInPath is where unauthenticated callers are pointed
const SignInPath = "/api/v1/auth/signin"

// SessionRequired is the route guard: it resolves the session cookie against
// the session store and injects the credential into the request context. A
// request without a valid session gets a sign-in prompt instead of the view.
func SessionRequired(sessions *session.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || sessionID == "" {
			RespondSignIn(c)
			c.Abort()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Session store unavailable",
			})
			c.Abort()
			return
		}
		if sess == nil {
			RespondSignIn(c)
			c.Abort()
			return
		}

		// Store session information in context
		c.Set("session_id", sessionID)
		c.Set("token", sess.Token)
		c.Set("display_name", sess.DisplayName)

		c.Next()
	}
}

// SessionOptional injects session information when a valid session exists
// and never blocks the request
func SessionOptional(sessions *session.Manager, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), sessionID)
		if err != nil || sess == nil {
			c.Next()
			return
		}

		c.Set("session_id", sessionID)
		c.Set("token", sess.Token)
		c.Set("display_name", sess.DisplayName)

		c.Next()
	}
}

// RespondSignIn writes the missing-session error body. Views degrade to this
// prompt; nothing is fatal to the process.
func RespondSignIn(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":   "Please sign in",
		"sign_in": SignInPath,
	})
}

// GetTokenFromContext extracts the upstream credential from gin context
func GetTokenFromContext(c *gin.Context) (string, bool) {
	token, exists := c.Get("token")
	if !exists {
		return "", false
	}
	return token.(string), true
}

// GetSessionIDFromContext extracts the session ID from gin context
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionID, exists := c.Get("session_id")
	if !exists {
		return "", false
	}
	return sessionID.(string), true
}

// GetDisplayNameFromContext extracts the display name from gin context
func GetDisplayNameFromContext(c *gin.Context) (string, bool) {
	name, exists := c.Get("display_name")
	if !exists {
		return "", false
	}
	return name.(string), true
}
