// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/identity"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// OrderHandler handles order history endpoints
type OrderHandler struct {
	upstream *upstream.Client
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(client *upstream.Client) *OrderHandler {
	return &OrderHandler{
		upstream: client,
	}
}

// GetOrders handles GET /orders. The upstream keys this listing by user ID
// rather than by token, so the ID is decoded from the stored credential; if
// that fails the caller gets an explicit sign-in response instead of an
// empty list that looks like "no orders".
func (h *OrderHandler) GetOrders(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	claims, err := identity.FromToken(token)
	if err != nil {
		if errors.Is(err, identity.ErrClaimsUnavailable) {
			middleware.RespondSignIn(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load orders",
		})
		return
	}

	orders, err := h.upstream.UserOrders(c.Request.Context(), claims.UserID)
	if err != nil {
		respondUpstreamError(c, err, "Failed to load orders")
		return
	}
	if orders == nil {
		orders = []upstream.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}
