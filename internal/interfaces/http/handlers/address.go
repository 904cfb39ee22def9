// internal/interfaces/http/handlers/address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// AddressHandler handles saved-address endpoints
type AddressHandler struct {
	upstream *upstream.Client
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(client *upstream.Client) *AddressHandler {
	return &AddressHandler{
		upstream: client,
	}
}

// GetAddresses handles GET /addresses
func (h *AddressHandler) GetAddresses(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	addresses, err := h.upstream.Addresses(c.Request.Context(), token)
	if err != nil {
		respondUpstreamError(c, err, "Failed to load addresses")
		return
	}
	if addresses == nil {
		addresses = []upstream.Address{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    addresses,
	})
}

// AddAddress handles POST /addresses. All four fields are required before
// any upstream call.
func (h *AddressHandler) AddAddress(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		Details string `json:"details" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
		City    string `json:"city" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please fill all fields",
		})
		return
	}

	addresses, err := h.upstream.AddAddress(c.Request.Context(), token, upstream.AddAddressRequest{
		Name:    req.Name,
		Details: req.Details,
		Phone:   req.Phone,
		City:    req.City,
	})
	if err != nil {
		respondUpstreamError(c, err, "Failed to add address")
		return
	}
	if addresses == nil {
		addresses = []upstream.Address{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address added successfully",
		"data":    addresses,
	})
}

// RemoveAddress handles DELETE /addresses/:id
func (h *AddressHandler) RemoveAddress(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	addresses, err := h.upstream.RemoveAddress(c.Request.Context(), token, c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err, "Failed to delete address")
		return
	}
	if addresses == nil {
		addresses = []upstream.Address{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Address deleted successfully",
		"data":    addresses,
	})
}
