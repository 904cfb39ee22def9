// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-gateway/internal/checkout"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// CheckoutHandler handles the checkout flow
type CheckoutHandler struct {
	upstream *upstream.Client
	config   *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(client *upstream.Client, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		upstream: client,
		config:   cfg,
	}
}

// GetCheckout handles GET /checkout. It loads the cart and reports the state
// the shopper lands in: the address form with the cart summary, or the empty
// cart view when there is nothing to order.
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	seq := checkout.NewSequencer(h.upstream, token, h.config.Upstream.CallbackOrigin)
	if err := seq.Begin(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusOK, gin.H{
				"message": "Cart is empty",
				"data": gin.H{
					"state": seq.State(),
				},
			})
		case errors.Is(err, checkout.ErrNotSignedIn):
			middleware.RespondSignIn(c)
		default:
			respondUpstreamError(c, err, "Failed to load cart")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout ready",
		"data": gin.H{
			"state": seq.State(),
			"cart":  seq.Cart(),
		},
	})
}

// SubmitCheckout handles POST /checkout. One request per submission: the cart
// is re-fetched, the address validated, and exactly one order or payment
// session request issued for the chosen method.
func (h *CheckoutHandler) SubmitCheckout(c *gin.Context) {
	token, exists := middleware.GetTokenFromContext(c)
	if !exists {
		middleware.RespondSignIn(c)
		return
	}

	var req struct {
		ShippingAddress upstream.ShippingAddress `json:"shipping_address"`
		PaymentMethod   string                   `json:"payment_method" binding:"required,oneof=cash card"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please choose a payment method",
		})
		return
	}

	seq := checkout.NewSequencer(h.upstream, token, h.config.Upstream.CallbackOrigin)
	if err := seq.Begin(c.Request.Context()); err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, checkout.ErrNotSignedIn):
			middleware.RespondSignIn(c)
		default:
			respondUpstreamError(c, err, "Failed to load cart")
		}
		return
	}

	outcome, err := seq.Submit(c.Request.Context(), req.ShippingAddress, checkout.PaymentMethod(req.PaymentMethod))
	if err != nil {
		var validationErr *checkout.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Please fill all shipping details",
			})
		case errors.Is(err, checkout.ErrSubmitInFlight):
			c.JSON(http.StatusConflict, gin.H{
				"error": "A submission is already in progress",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": seq.LastError(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout submitted successfully",
		"data":    outcome,
	})
}
