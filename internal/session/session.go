// internal/session/session.go
package session

import "context"

// Session holds the bearer credential and minimal identity captured at
// sign-in. It is the only state the gateway owns; everything else lives
// upstream.
type Session struct {
	Token       string `json:"token"`
	DisplayName string `json:"display_name"`
}

// Store defines how sessions are stored and retrieved. Get returns
// (nil, nil) for an unknown or expired session ID.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Set(ctx context.Context, sessionID string, s Session) error
	Clear(ctx context.Context, sessionID string) error
}
