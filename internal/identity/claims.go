// internal/identity/claims.go
package identity

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrClaimsUnavailable is returned when a user identifier cannot be
// extracted from the stored credential. Callers must surface it explicitly
// rather than proceeding without an identity.
var ErrClaimsUnavailable = errors.New("identity: claims unavailable")

// Claims is the identity the upstream embeds in its tokens
type Claims struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// FromToken decodes the identity claims carried in the upstream's token.
// The signature is NOT verified: the upstream owns the key and validates the
// token on every user-scoped call; the gateway only needs the user ID for
// the one endpoint the upstream keys by user rather than by token.
func FromToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrClaimsUnavailable
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrClaimsUnavailable
	}

	id, _ := claims["id"].(string)
	if id == "" {
		return nil, ErrClaimsUnavailable
	}

	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return &Claims{UserID: id, Name: name, Role: role}, nil
}
