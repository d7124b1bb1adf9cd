// Package session implements opaque server-side sessions: a random token
// handed to the client maps to a user id until it is destroyed or expires
// from inactivity. The capability is an interface so handlers never care
// whether the mapping lives in memory or in the database.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// TTL is how long a session survives without activity. Reads slide the
// deadline forward.
const TTL = 24 * time.Hour

// Store creates, resolves, and destroys sessions by token.
type Store interface {
	// Create starts a session for a user and returns the opaque token.
	Create(ctx context.Context, userID int64) (string, error)
	// Read resolves a token to a user id, renewing the inactivity
	// deadline. ok is false for unknown or expired tokens.
	Read(ctx context.Context, token string) (userID int64, ok bool, err error)
	// Destroy ends a session. Destroying an unknown token is not an error.
	Destroy(ctx context.Context, token string) error
}

// newToken creates a random session token.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
