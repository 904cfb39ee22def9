// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// CartHandler handles cart endpoints. Every mutation responds with the
// upstream's full post-mutation cart; the gateway never computes the next
// cart state itself.
type CartHandler struct {
	upstream *upstream.Client
}

// NewCartHandler creates a new cart handler
func NewCartHandler(client *upstream.Client) *CartHandler {
	return &CartHandler{
		upstream: client,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	cart, err := h.upstream.Cart(c.Request.Context(), token)
	if err != nil {
		respondUpstreamError(c, err, "Failed to load cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cart,
	})
}

// AddToCart handles POST /cart
func (h *CartHandler) AddToCart(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	var req struct {
		ProductID string `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cart, err := h.upstream.AddToCart(c.Request.Context(), token, req.ProductID)
	if err != nil {
		respondUpstreamError(c, err, "Failed to add to cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cart,
	})
}

// RemoveCartItem handles DELETE /cart/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	cart, err := h.upstream.RemoveCartItem(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err, "Failed to remove from cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cart,
	})
}
