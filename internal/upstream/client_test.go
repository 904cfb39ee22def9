package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-gateway/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:        srv.URL,
			RequestTimeout: 5 * time.Second,
		},
	}
	return NewClient(cfg)
}

func TestSignIn_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/signin", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"success","token":"jwt-abc","user":{"name":"Sara","email":"sara@example.com"}}`))
	})

	result, err := client.SignIn(context.Background(), SignInRequest{Email: "sara@example.com", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", result.Token)
	assert.Equal(t, "Sara", result.User.Name)
}

func TestSignIn_BadCredentialsMessageIsVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Incorrect email or password","statusMsg":"fail"}`))
	})

	_, err := client.SignIn(context.Background(), SignInRequest{Email: "x@example.com", Password: "wrong"})

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, apiErr.IsAuthFailure())
	// The upstream's own wording is surfaced, never rewritten
	assert.Equal(t, "Incorrect email or password", apiErr.Message)
}

func TestTokenHeader(t *testing.T) {
	var gotToken, gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("token")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success","data":{"_id":"cart-1","products":[],"totalCartPrice":0}}`))
	})

	_, err := client.Cart(context.Background(), "jwt-abc")

	require.NoError(t, err)
	// The upstream uses a bare "token" header, not a Bearer scheme
	assert.Equal(t, "jwt-abc", gotToken)
	assert.Empty(t, gotAuth)
}

func TestVerifyResetCode_CapitalizedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"Success"}`))
	})
	require.NoError(t, client.VerifyResetCode(context.Background(), "123456"))

	lower := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success"}`))
	})
	// This envelope is the capitalized one; lowercase means rejection
	assert.Error(t, lower.VerifyResetCode(context.Background(), "123456"))
}

func TestForgotPassword_StatusMsgEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/forgotPasswords", r.URL.Path)
		w.Write([]byte(`{"statusMsg":"success","message":"Reset code sent to your email"}`))
	})
	require.NoError(t, client.ForgotPassword(context.Background(), "sara@example.com"))
}

func TestResetPassword_ReturnsFreshToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.Write([]byte(`{"token":"jwt-new"}`))
	})

	token, err := client.ResetPassword(context.Background(), "sara@example.com", "newpass")

	require.NoError(t, err)
	assert.Equal(t, "jwt-new", token)
}

func TestProducts_CategoryFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cat-9", r.URL.Query().Get("category"))
		w.Write([]byte(`{"data":[{"_id":"p1","title":"Shirt","price":100}]}`))
	})

	products, err := client.Products(context.Background(), "cat-9")

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Shirt", products[0].Title)
}

func TestRemoveFromWishlist_AbsentItemIsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success","data":["p1","p2"]}`))
	})

	refs, err := client.RemoveFromWishlist(context.Background(), "jwt", "never-was-there")

	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, refs)
}

func TestCreateCheckoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/checkout-session/cart-1", r.URL.Path)
		assert.Equal(t, "https://shop.example", r.URL.Query().Get("url"))
		w.Write([]byte(`{"status":"success","session":{"url":"https://pay.example/s/1"}}`))
	})

	session, err := client.CreateCheckoutSession(context.Background(), "jwt", "cart-1",
		ShippingAddress{Details: "a", Phone: "b", City: "c"}, "https://shop.example")

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/s/1", session.URL)
}

func TestUserOrders_BareArray(t *testing.T) {
	var gotToken string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("token")
		assert.Equal(t, "/orders/user/user-1", r.URL.Path)
		w.Write([]byte(`[{"id":42,"totalOrderPrice":200,"paymentMethodType":"cash","isPaid":false,"isDelivered":false}]`))
	})

	orders, err := client.UserOrders(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(42), orders[0].ID)
	// Keyed by user ID, not by credential
	assert.Empty(t, gotToken)
}

func TestCart_NotFoundBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"No cart exist for this user","statusMsg":"fail"}`))
	})

	_, err := client.Cart(context.Background(), "jwt")

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "No cart exist for this user", apiErr.Message)
	assert.False(t, apiErr.IsAuthFailure())
}
