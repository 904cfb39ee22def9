package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-gateway/internal/catalog"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/routes"
	"github.com/your-org/storefront-gateway/internal/session"
	"github.com/your-org/storefront-gateway/internal/upstream"
)

// fixture wires the full route table against a fake upstream server
type fixture struct {
	router   *gin.Engine
	sessions *session.Manager
	cfg      *config.Config
}

func newFixture(t *testing.T, mux *http.ServeMux) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Upstream: config.UpstreamConfig{
			BaseURL:        srv.URL,
			RequestTimeout: 5 * time.Second,
			CallbackOrigin: "https://shop.example",
		},
		Session: config.SessionConfig{
			CookieName: "storefront_session",
			TTL:        time.Hour,
		},
	}

	sessions := session.NewManager(session.NewMemoryStore(cfg.Session.TTL))
	client := upstream.NewClient(cfg)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	router := gin.New()
	api := router.Group("/api/v1")
	routes.SetupAuthRoutes(api, client, sessions, cfg)
	routes.SetupCatalogRoutes(api, client, catalog.NewService(client, log))
	routes.SetupCartRoutes(api, client, sessions, cfg)
	routes.SetupWishlistRoutes(api, client, sessions, cfg)
	routes.SetupOrderRoutes(api, client, sessions, cfg)
	routes.SetupAddressRoutes(api, client, sessions, cfg)

	return &fixture{router: router, sessions: sessions, cfg: cfg}
}

func (f *fixture) signedIn(t *testing.T, token string) *http.Cookie {
	t.Helper()
	id, err := f.sessions.Create(context.Background(), session.Session{Token: token, DisplayName: "Sara"})
	require.NoError(t, err)
	return &http.Cookie{Name: f.cfg.Session.CookieName, Value: id}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func userToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   userID,
		"name": "Sara",
		"role": "user",
	})
	signed, err := token.SignedString([]byte("upstream-key"))
	require.NoError(t, err)
	return signed
}

func TestSignIn_SetsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message":"success","token":"jwt-abc","user":{"name":"Sara"}}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodPost, "/api/v1/auth/signin", gin.H{
		"email":    "sara@example.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Sara", data["display_name"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, f.cfg.Session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// The cookie resolves to the stored token
	sess, err := f.sessions.Get(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "jwt-abc", sess.Token)
}

func TestSignIn_UpstreamMessageVerbatim(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signin", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Incorrect email or password","statusMsg":"fail"}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodPost, "/api/v1/auth/signin", gin.H{
		"email":    "sara@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Incorrect email or password", decodeBody(t, w)["error"])
}

func TestSignUp_PasswordMismatchNeverCallsUpstream(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/signup", func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.Write([]byte(`{"message":"success"}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodPost, "/api/v1/auth/signup", gin.H{
		"name":        "Sara",
		"email":       "sara@example.com",
		"password":    "one",
		"re_password": "two",
		"phone":       "01000000000",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Passwords do not match", decodeBody(t, w)["error"])
	assert.False(t, called)
}

func TestSignOut_InvalidatesSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"_id":"cart-1","products":[],"totalCartPrice":0}}`))
	})
	f := newFixture(t, mux)
	cookie := f.signedIn(t, "jwt-abc")

	w := f.do(t, http.MethodPost, "/api/v1/auth/signout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The same cookie no longer opens guarded views
	w = f.do(t, http.MethodGet, "/api/v1/cart", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestChangePassword_RotatesSessionToken(t *testing.T) {
	var lastCartToken string
	mux := http.NewServeMux()
	mux.HandleFunc("/users/changeMyPassword", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"message":"success","token":"jwt-rotated"}`))
	})
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		lastCartToken = r.Header.Get("token")
		w.Write([]byte(`{"status":"success","data":{"_id":"cart-1","products":[],"totalCartPrice":0}}`))
	})
	f := newFixture(t, mux)
	cookie := f.signedIn(t, "jwt-old")

	w := f.do(t, http.MethodPut, "/api/v1/auth/change-password", gin.H{
		"current_password": "old",
		"password":         "new",
		"re_password":      "new",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// Same cookie, new credential behind it
	w = f.do(t, http.MethodGet, "/api/v1/cart", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jwt-rotated", lastCartToken)
}

func TestCart_GuardedWithoutSession(t *testing.T) {
	f := newFixture(t, http.NewServeMux())

	w := f.do(t, http.MethodGet, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Please sign in", decodeBody(t, w)["error"])
}

func TestAddToCart_ReturnsPostMutationCart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["productId"])
		w.Write([]byte(`{"status":"success","data":{"_id":"cart-1","products":[{"_id":"line-1","count":1,"price":100}],"totalCartPrice":100}}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": "p1"}, f.signedIn(t, "jwt-abc"))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "cart-1", data["_id"])
	assert.Equal(t, float64(100), data["totalCartPrice"])
}

func TestWishlist_RemoveRefetchesFullCollection(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wishlist/p9", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.Write([]byte(`{"status":"success","data":["p1"]}`))
	})
	mux.HandleFunc("/wishlist", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success","data":[{"_id":"p1","title":"Shirt","price":100}]}`))
	})
	f := newFixture(t, mux)

	// p9 was never in the wishlist; the operation still succeeds
	w := f.do(t, http.MethodDelete, "/api/v1/wishlist/p9", nil, f.signedIn(t, "jwt-abc"))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Shirt", data[0].(map[string]interface{})["title"])
}

func TestOrders_KeyedByDecodedUserID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/user/user-7", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id":42,"totalOrderPrice":300,"paymentMethodType":"cash","isPaid":true,"isDelivered":false}]`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodGet, "/api/v1/orders", nil, f.signedIn(t, userToken(t, "user-7")))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, float64(42), data[0].(map[string]interface{})["id"])
}

func TestOrders_TokenWithoutIDClaim(t *testing.T) {
	f := newFixture(t, http.NewServeMux())

	// A session whose token carries no decodable user ID cannot silently
	// render an empty history
	w := f.do(t, http.MethodGet, "/api/v1/orders", nil, f.signedIn(t, "opaque-token"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Please sign in", decodeBody(t, w)["error"])
}

func TestCheckout_EmptyCart(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"_id":"cart-1","products":[],"totalCartPrice":0}}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodGet, "/api/v1/checkout", nil, f.signedIn(t, "jwt-abc"))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Cart is empty", body["message"])
	assert.Equal(t, "EMPTY_CART", body["data"].(map[string]interface{})["state"])

	// Submitting against the empty cart is refused before any order request
	w = f.do(t, http.MethodPost, "/api/v1/checkout", gin.H{
		"shipping_address": gin.H{"details": "a", "phone": "b", "city": "c"},
		"payment_method":   "cash",
	}, f.signedIn(t, "jwt-abc"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckout_CashSubmission(t *testing.T) {
	orderCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"_id":"cart-1","products":[{"_id":"line-1","count":1,"price":100}],"totalCartPrice":100}}`))
	})
	mux.HandleFunc("/orders/cart-1", func(w http.ResponseWriter, r *http.Request) {
		orderCalls++
		var body map[string]upstream.ShippingAddress
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Cairo", body["shippingAddress"].City)
		w.Write([]byte(`{"status":"success"}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodPost, "/api/v1/checkout", gin.H{
		"shipping_address": gin.H{"details": "12 Market Street", "phone": "01000000000", "city": "Cairo"},
		"payment_method":   "cash",
	}, f.signedIn(t, "jwt-abc"))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "cash", data["method"])
	assert.Equal(t, "/orders", data["redirect_to"])
	assert.Equal(t, 1, orderCalls)
}

func TestCheckout_CardSubmission(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"_id":"cart-1","products":[{"_id":"line-1","count":1,"price":100}],"totalCartPrice":100}}`))
	})
	mux.HandleFunc("/orders/checkout-session/cart-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://shop.example", r.URL.Query().Get("url"))
		w.Write([]byte(`{"status":"success","session":{"url":"https://pay.example/s/1"}}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodPost, "/api/v1/checkout", gin.H{
		"shipping_address": gin.H{"details": "12 Market Street", "phone": "01000000000", "city": "Cairo"},
		"payment_method":   "card",
	}, f.signedIn(t, "jwt-abc"))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "card", data["method"])
	assert.Equal(t, "https://pay.example/s/1", data["redirect_to"])
}

func TestCheckout_MissingShippingField(t *testing.T) {
	orderCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"_id":"cart-1","products":[{"_id":"line-1","count":1,"price":100}],"totalCartPrice":100}}`))
	})
	mux.HandleFunc("/orders/cart-1", func(w http.ResponseWriter, _ *http.Request) {
		orderCalls++
		w.Write([]byte(`{"status":"success"}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodPost, "/api/v1/checkout", gin.H{
		"shipping_address": gin.H{"details": "12 Market Street", "phone": "", "city": "Cairo"},
		"payment_method":   "cash",
	}, f.signedIn(t, "jwt-abc"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill all shipping details", decodeBody(t, w)["error"])
	assert.Equal(t, 0, orderCalls)
}

func TestAddAddress_AllFieldsRequired(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/addresses", func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.Write([]byte(`{"status":"success","data":[]}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodPost, "/api/v1/addresses", gin.H{
		"name":    "Home",
		"details": "12 Market Street",
		"phone":   "01000000000",
		// city omitted
	}, f.signedIn(t, "jwt-abc"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please fill all fields", decodeBody(t, w)["error"])
	assert.False(t, called)
}

func TestHome_PublicAndResilient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/categories", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[{"_id":"c1","name":"Electronics"}]}`))
	})
	mux.HandleFunc("/brands", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"brands down"}`))
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"data":[{"_id":"p1","title":"Shirt","price":100}]}`))
	})
	f := newFixture(t, mux)

	// No session cookie: home is public
	w := f.do(t, http.MethodGet, "/api/v1/home", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["categories"], 1)
	assert.Empty(t, data["brands"])
	assert.Len(t, data["products"], 1)
}

func TestGetProduct_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"No product found for this id"}`))
	})
	f := newFixture(t, mux)

	w := f.do(t, http.MethodGet, "/api/v1/products/missing", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No product found for this id", decodeBody(t, w)["error"])
}
