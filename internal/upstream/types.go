// internal/upstream/types.go
package upstream

// The types below mirror the upstream API's JSON shapes field for field. The
// gateway never computes derived state from them; whatever the upstream
// returns is rendered as-is.

// Ref is a named resource reference (category, brand, subcategory)
type Ref struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

// Product represents a catalog product
type Product struct {
	ID                 string  `json:"_id"`
	Title              string  `json:"title"`
	Description        string  `json:"description,omitempty"`
	Price              float64 `json:"price"`
	PriceAfterDiscount float64 `json:"priceAfterDiscount,omitempty"`
	ImageCover         string  `json:"imageCover"`
	RatingsAverage     float64 `json:"ratingsAverage"`
	Quantity           int     `json:"quantity,omitempty"`
	Sold               int     `json:"sold,omitempty"`
	Category           *Ref    `json:"category,omitempty"`
	Brand              *Ref    `json:"brand,omitempty"`
}

// CartItem is one line in the cart. Price is the price captured when the
// item was added, not the product's current price.
type CartItem struct {
	ID      string  `json:"_id"`
	Product Product `json:"product"`
	Price   float64 `json:"price"`
	Count   int     `json:"count"`
}

// Cart is the user's single active cart. TotalCartPrice is computed
// upstream and trusted as-is.
type Cart struct {
	ID             string     `json:"_id"`
	Products       []CartItem `json:"products"`
	TotalCartPrice float64    `json:"totalCartPrice"`
}

// ShippingAddress is the address embedded into an order at checkout
type ShippingAddress struct {
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

// Address is a saved user address
type Address struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

// Order is a placed order. Status fields are updated only upstream; the
// gateway renders them read-only.
type Order struct {
	ID                int64           `json:"id"`
	CartItems         []CartItem      `json:"cartItems"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
	TotalOrderPrice   float64         `json:"totalOrderPrice"`
	PaymentMethodType string          `json:"paymentMethodType"`
	IsPaid            bool            `json:"isPaid"`
	IsDelivered       bool            `json:"isDelivered"`
	CreatedAt         string          `json:"createdAt"`
}

// User is the identity block returned on sign-in
type User struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// SignInResult carries the credential and identity issued at sign-in
type SignInResult struct {
	Token string
	User  User
}

// CheckoutSession is the hosted payment page the shopper is redirected to
// for card payments. Its internals are upstream-owned.
type CheckoutSession struct {
	URL string `json:"url"`
}

// Request bodies

// SignInRequest is the sign-in form
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the registration form
type SignUpRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RePassword string `json:"rePassword"`
	Phone      string `json:"phone"`
}

// ChangePasswordRequest is the authenticated password change form
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
	RePassword      string `json:"rePassword"`
}

// AddAddressRequest is the new-address form
type AddAddressRequest struct {
	Name    string `json:"name"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}
