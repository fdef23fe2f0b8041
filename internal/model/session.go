package model

import (
	"context"
	"time"
)

// SessionStore is the shared key-value store used as a single-active-session
// registry and as a token revocation blacklist. All operations are atomic
// per-key; expiry is handled entirely by the store's TTL.
type SessionStore interface {
	SaveSession(ctx context.Context, userID int64, token string, ttl time.Duration) error
	GetSession(ctx context.Context, userID int64) (string, error)
	DeleteSession(ctx context.Context, userID int64) error
	BlacklistToken(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
