// internal/interfaces/http/handlers/common.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// respondUpstreamError maps an upstream failure onto the gateway's error
// taxonomy: auth failures become sign-in prompts, upstream-reported messages
// surface verbatim, transport failures get the generic fallback. Errors are
// scoped to the view; nothing here is fatal.
func respondUpstreamError(c *gin.Context, err error, fallback string) {
	if apiErr, ok := upstream.AsAPIError(err); ok {
		if apiErr.IsAuthFailure() {
			middleware.RespondSignIn(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error": apiErr.UserMessage(),
		})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{
		"error": fallback,
	})
}
