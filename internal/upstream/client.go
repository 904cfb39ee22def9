// internal/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/your-org/storefront-gateway/internal/config"
)

// Client is a typed HTTP client for the external storefront API. All
// business logic lives upstream; the client only shapes requests and decodes
// the upstream's response envelopes.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new upstream API client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Upstream.RequestTimeout,
		},
	}
}

// do issues one request. The credential travels in the upstream's custom
// "token" header, not a Bearer scheme. Non-2xx responses become APIError
// with the upstream's message field when present.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("token", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(data, "request failed"),
		}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// serverMessage extracts the upstream's message field, falling back to a
// generic string when the body carries none
func serverMessage(data []byte, fallback string) string {
	var probe struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Message != "" {
		return probe.Message
	}
	return fallback
}

func orFallback(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

// statusEnvelope is the upstream's common {status, message} wrapper
type statusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e statusEnvelope) ok() bool {
	return e.Status == "success"
}

// Auth operations

// SignIn exchanges credentials for a token and the user's identity
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (*SignInResult, error) {
	var env struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", "", req, &env); err != nil {
		return nil, err
	}
	if env.Message != "success" || env.Token == "" {
		return nil, &APIError{Message: orFallback(env.Message, "sign in failed")}
	}
	return &SignInResult{Token: env.Token, User: env.User}, nil
}

// SignUp registers a new account
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	var env struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", req, &env); err != nil {
		return err
	}
	if env.Message != "success" {
		return &APIError{Message: orFallback(env.Message, "registration failed")}
	}
	return nil
}

// ForgotPassword requests a reset code for the given email
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	var env struct {
		StatusMsg string `json:"statusMsg"`
		Message   string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/forgotPasswords", "", body, &env); err != nil {
		return err
	}
	if env.StatusMsg != "success" {
		return &APIError{Message: orFallback(env.Message, "failed to send reset code")}
	}
	return nil
}

// VerifyResetCode verifies a previously mailed reset code
func (c *Client) VerifyResetCode(ctx context.Context, code string) error {
	body := map[string]string{"resetCode": code}
	var env struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/verifyResetCode", "", body, &env); err != nil {
		return err
	}
	// The upstream capitalizes this one envelope differently
	if env.Status != "Success" {
		return &APIError{Message: orFallback(env.Message, "invalid reset code")}
	}
	return nil
}

// ResetPassword sets a new password after code verification and returns the
// fresh token the upstream issues
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) (string, error) {
	body := map[string]string{"email": email, "newPassword": newPassword}
	var env struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPut, "/auth/resetPassword", "", body, &env); err != nil {
		return "", err
	}
	if env.Token == "" {
		return "", &APIError{Message: orFallback(env.Message, "failed to reset password")}
	}
	return env.Token, nil
}

// ChangePassword changes the signed-in user's password and returns the
// replacement token
func (c *Client) ChangePassword(ctx context.Context, token string, req ChangePasswordRequest) (string, error) {
	var env struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/changeMyPassword", token, req, &env); err != nil {
		return "", err
	}
	if env.Message != "success" || env.Token == "" {
		return "", &APIError{Message: orFallback(env.Message, "failed to change password")}
	}
	return env.Token, nil
}

// Catalog operations (public, read-only)

// Products lists products, optionally filtered by category ID
func (c *Client) Products(ctx context.Context, categoryID string) ([]Product, error) {
	path := "/products"
	if categoryID != "" {
		path += "?category=" + url.QueryEscape(categoryID)
	}
	var env struct {
		Data []Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Product fetches one product by ID
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var env struct {
		Data *Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &APIError{Message: "product not found"}
	}
	return env.Data, nil
}

// Brands lists all brands
func (c *Client) Brands(ctx context.Context) ([]Ref, error) {
	var env struct {
		Data []Ref `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/brands", "", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Categories lists all categories
func (c *Client) Categories(ctx context.Context) ([]Ref, error) {
	var env struct {
		Data []Ref `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories", "", nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Category fetches one category by ID
func (c *Client) Category(ctx context.Context, id string) (*Ref, error) {
	var env struct {
		Data *Ref `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), "", nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, &APIError{Message: "category not found"}
	}
	return env.Data, nil
}

// Cart operations (user-scoped)

type cartEnvelope struct {
	statusEnvelope
	Data *Cart `json:"data"`
}

// Cart fetches the user's active cart
func (c *Client) Cart(ctx context.Context, token string) (*Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &env); err != nil {
		return nil, err
	}
	if !env.ok() || env.Data == nil {
		return nil, &APIError{Message: orFallback(env.Message, "failed to load cart")}
	}
	return env.Data, nil
}

// AddToCart adds a product and returns the upstream's post-mutation cart.
// Callers replace their state with it wholesale; nothing is merged locally.
func (c *Client) AddToCart(ctx context.Context, token, productID string) (*Cart, error) {
	body := map[string]string{"productId": productID}
	var env cartEnvelope
	if err := c.do(ctx, http.MethodPost, "/cart", token, body, &env); err != nil {
		return nil, err
	}
	if !env.ok() || env.Data == nil {
		return nil, &APIError{Message: orFallback(env.Message, "failed to add to cart")}
	}
	return env.Data, nil
}

// RemoveCartItem removes a cart line and returns the post-mutation cart
func (c *Client) RemoveCartItem(ctx context.Context, token, itemID string) (*Cart, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodDelete, "/cart/"+url.PathEscape(itemID), token, nil, &env); err != nil {
		return nil, err
	}
	if !env.ok() || env.Data == nil {
		return nil, &APIError{Message: orFallback(env.Message, "failed to remove from cart")}
	}
	return env.Data, nil
}

// Wishlist operations (user-scoped)

// Wishlist fetches the user's wishlist products
func (c *Client) Wishlist(ctx context.Context, token string) ([]Product, error) {
	var env struct {
		statusEnvelope
		Data []Product `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/wishlist", token, nil, &env); err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, &APIError{Message: orFallback(env.Message, "failed to load wishlist")}
	}
	return env.Data, nil
}

// AddToWishlist adds a product and returns the post-mutation set of product
// references
func (c *Client) AddToWishlist(ctx context.Context, token, productID string) ([]string, error) {
	body := map[string]string{"productId": productID}
	var env struct {
		statusEnvelope
		Data []string `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/wishlist", token, body, &env); err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, &APIError{Message: orFallback(env.Message, "failed to add to wishlist")}
	}
	return env.Data, nil
}

// RemoveFromWishlist removes a product reference. Removing an absent item is
// a no-op upstream and still reports success.
func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) ([]string, error) {
	var env struct {
		statusEnvelope
		Data []string `json:"data"`
	}
	if err := c.do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), token, nil, &env); err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, &APIError{Message: orFallback(env.Message, "failed to remove from wishlist")}
	}
	return env.Data, nil
}

// Address operations (user-scoped)

type addressEnvelope struct {
	statusEnvelope
	Data []Address `json:"data"`
}

// Addresses lists the user's saved addresses
func (c *Client) Addresses(ctx context.Context, token string) ([]Address, error) {
	var env addressEnvelope
	if err := c.do(ctx, http.MethodGet, "/addresses", token, nil, &env); err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, &APIError{Message: orFallback(env.Message, "failed to load addresses")}
	}
	return env.Data, nil
}

// AddAddress saves a new address and returns the full post-mutation list
func (c *Client) AddAddress(ctx context.Context, token string, req AddAddressRequest) ([]Address, error) {
	var env addressEnvelope
	if err := c.do(ctx, http.MethodPost, "/addresses", token, req, &env); err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, &APIError{Message: orFallback(env.Message, "failed to add address")}
	}
	return env.Data, nil
}

// RemoveAddress deletes an address and returns the full post-mutation list
func (c *Client) RemoveAddress(ctx context.Context, token, addressID string) ([]Address, error) {
	var env addressEnvelope
	if err := c.do(ctx, http.MethodDelete, "/addresses/"+url.PathEscape(addressID), token, nil, &env); err != nil {
		return nil, err
	}
	if !env.ok() {
		return nil, &APIError{Message: orFallback(env.Message, "failed to delete address")}
	}
	return env.Data, nil
}

// Order operations

// PlaceCashOrder creates a cash-on-delivery order against the cart,
// embedding the shipping address
func (c *Client) PlaceCashOrder(ctx context.Context, token, cartID string, address ShippingAddress) error {
	body := map[string]ShippingAddress{"shippingAddress": address}
	var env statusEnvelope
	if err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(cartID), token, body, &env); err != nil {
		return err
	}
	if !env.ok() {
		return &APIError{Message: orFallback(env.Message, "failed to create order")}
	}
	return nil
}

// CreateCheckoutSession requests a hosted payment page for the cart. The
// callback origin tells the payment page where to send the shopper back.
func (c *Client) CreateCheckoutSession(ctx context.Context, token, cartID string, address ShippingAddress, callbackOrigin string) (*CheckoutSession, error) {
	body := map[string]ShippingAddress{"shippingAddress": address}
	path := "/orders/checkout-session/" + url.PathEscape(cartID) + "?url=" + url.QueryEscape(callbackOrigin)
	var env struct {
		statusEnvelope
		Session *CheckoutSession `json:"session"`
	}
	if err := c.do(ctx, http.MethodPost, path, token, body, &env); err != nil {
		return nil, err
	}
	if !env.ok() || env.Session == nil || env.Session.URL == "" {
		return nil, &APIError{Message: orFallback(env.Message, "failed to create checkout session")}
	}
	return env.Session, nil
}

// UserOrders lists a user's orders, newest first as returned upstream. This
// endpoint is the one user-scoped read the upstream exposes without a token.
func (c *Client) UserOrders(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders/user/"+url.PathEscape(userID), "", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
