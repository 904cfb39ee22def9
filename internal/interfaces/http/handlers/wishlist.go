// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// WishlistHandler handles wishlist endpoints. After a mutation the full
// collection is re-fetched so the response always carries the upstream's
// authoritative snapshot, products included.
type WishlistHandler struct {
	upstream *upstream.Client
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(client *upstream.Client) *WishlistHandler {
	return &WishlistHandler{
		upstream: client,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	products, err := h.upstream.Wishlist(c.Request.Context(), token)
	if err != nil {
		respondUpstreamError(c, err, "Failed to load wishlist")
		return
	}
	if products == nil {
		products = []upstream.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    products,
	})
}

// AddToWishlist handles POST /wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
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

	if _, err := h.upstream.AddToWishlist(c.Request.Context(), token, req.ProductID); err != nil {
		respondUpstreamError(c, err, "Failed to add to wishlist")
		return
	}

	products, err := h.upstream.Wishlist(c.Request.Context(), token)
	if err != nil {
		respondUpstreamError(c, err, "Failed to load wishlist")
		return
	}
	if products == nil {
		products = []upstream.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to wishlist successfully",
		"data":    products,
	})
}

// RemoveFromWishlist handles DELETE /wishlist/:id. Removing an item the
// upstream no longer has is still a success; the response is simply the
// current collection.
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	if _, err := h.upstream.RemoveFromWishlist(c.Request.Context(), token, c.Param("id")); err != nil {
		respondUpstreamError(c, err, "Failed to remove from wishlist")
		return
	}

	products, err := h.upstream.Wishlist(c.Request.Context(), token)
	if err != nil {
		respondUpstreamError(c, err, "Failed to load wishlist")
		return
	}
	if products == nil {
		products = []upstream.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist successfully",
		"data":    products,
	})
}
