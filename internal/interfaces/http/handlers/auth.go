// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/session"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// AuthHandler handles authentication endpoints. Credentials are verified
// upstream; the handler only manages the local session around them.
type AuthHandler struct {
	upstream *upstream.Client
	sessions *session.Manager
	config   *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *upstream.Client, sessions *session.Manager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		upstream: client,
		sessions: sessions,
		config:   cfg,
	}
}

// SignIn handles POST /auth/signin
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.upstream.SignIn(c.Request.Context(), upstream.SignInRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if apiErr, ok := upstream.AsAPIError(err); ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": apiErr.UserMessage(),
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Sign in failed. Please try again.",
		})
		return
	}

	displayName := result.User.Name
	if displayName == "" {
		displayName = "User"
	}

	sessionID, err := h.sessions.Create(c.Request.Context(), session.Session{
		Token:       result.Token,
		DisplayName: displayName,
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to create session",
		})
		return
	}

	h.setSessionCookie(c, sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"data": gin.H{
			"display_name": displayName,
		},
	})
}

// SignUp handles POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required"`
		RePassword string `json:"re_password" binding:"required"`
		Phone      string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	// Match check happens before any upstream call
	if req.Password != req.RePassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Passwords do not match",
		})
		return
	}

	err := h.upstream.SignUp(c.Request.Context(), upstream.SignUpRequest{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		RePassword: req.RePassword,
		Phone:      req.Phone,
	})
	if err != nil {
		respondUpstreamError(c, err, "Registration failed. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully. Please sign in.",
	})
}

// SignOut handles POST /auth/signout
func (h *AuthHandler) SignOut(c *gin.Context) {
	sessionID, exists := middleware.GetSessionIDFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	if err := h.sessions.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Failed to sign out",
		})
		return
	}

	h.clearSessionCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed out successfully",
	})
}

// ForgotPassword handles POST /auth/forgot-password, step one of the reset
// wizard: mail a reset code
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.upstream.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondUpstreamError(c, err, "Failed to send reset code.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reset code sent to your email",
	})
}

// VerifyResetCode handles POST /auth/verify-reset-code, step two
func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req struct {
		ResetCode string `json:"reset_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.upstream.VerifyResetCode(c.Request.Context(), req.ResetCode); err != nil {
		respondUpstreamError(c, err, "Invalid reset code.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Code verified. Enter your new password.",
	})
}

// ResetPassword handles PUT /auth/reset-password, step three. The upstream
// issues a fresh token, but the shopper still signs in explicitly.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if _, err := h.upstream.ResetPassword(c.Request.Context(), req.Email, req.NewPassword); err != nil {
		respondUpstreamError(c, err, "Failed to reset password.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successful. Please sign in.",
	})
}

// ChangePassword handles PUT /users/change-password. On success the upstream
// returns a replacement token, which takes the old one's place in the
// session; the shopper stays signed in.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		Password        string `json:"password" binding:"required"`
		RePassword      string `json:"re_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.Password != req.RePassword {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "New passwords do not match",
		})
		return
	}

	newToken, err := h.upstream.ChangePassword(c.Request.Context(), token, upstream.ChangePasswordRequest{
		CurrentPassword: req.CurrentPassword,
		Password:        req.Password,
		RePassword:      req.RePassword,
	})
	if err != nil {
		respondUpstreamError(c, err, "Failed to change password. Please check your current password.")
		return
	}

	sessionID, _ := middleware.GetSessionIDFromContext(c)
	displayName, _ := middleware.GetDisplayNameFromContext(c)

	if err := h.sessions.Update(c.Request.Context(), sessionID, session.Session{
		Token:       newToken,
		DisplayName: displayName,
	}); err != nil {
		// The upstream already rotated the token; without the session update
		// the old credential would keep being sent, so force a fresh sign-in.
		_ = h.sessions.Clear(c.Request.Context(), sessionID)
		h.clearSessionCookie(c)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Password changed. Please sign in again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password changed successfully",
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(
		h.config.Session.CookieName,
		sessionID,
		int(h.config.Session.TTL.Seconds()),
		"/",
		"",
		h.config.Session.Secure,
		true,
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetCookie(
		h.config.Session.CookieName,
		"",
		-1,
		"/",
		"",
		h.config.Session.Secure,
		true,
	)
}
