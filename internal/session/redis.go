package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartsubstation/auth-server/internal/model"
)

// Key conventions shared with the rest of the platform. Both keys store a
// trivial marker value and rely entirely on redis TTLs for expiry, so the
// blacklist never grows beyond the tokens that are still otherwise valid.
const (
	sessionKeyPrefix   = "user:token:"
	blacklistKeyPrefix = "token:blacklist:"
)

const blacklistMarker = "1"

var _ model.SessionStore = (*Store)(nil)

// Store implements model.SessionStore on a redis client.
type Store struct {
	client *redis.Client
}

// NewClient connects to redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// NewStore creates a session store on top of an established redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// SaveSession writes or overwrites the session record for the user. A second
// login overwrites without revoking the previously issued token.
func (s *Store) SaveSession(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, SessionKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession returns the user's current token, or model.ErrNotFound when no
// session record exists.
func (s *Store) GetSession(ctx context.Context, userID int64) (string, error) {
	token, err := s.client.Get(ctx, SessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return token, nil
}

// DeleteSession removes the session record. Deleting an absent record is not
// an error.
func (s *Store) DeleteSession(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, SessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// BlacklistToken marks the exact token string as revoked. The TTL is bounded
// by the session constant, so the entry never outlives the token it blocks.
func (s *Store) BlacklistToken(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, BlacklistKey(token), blacklistMarker, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether the exact token string has been revoked.
func (s *Store) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, BlacklistKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return n > 0, nil
}

// SessionKey builds the session record key for a user.
func SessionKey(userID int64) string {
	return fmt.Sprintf("%s%d", sessionKeyPrefix, userID)
}

// BlacklistKey builds the revocation key for a token. A token's identity for
// revocation purposes is its exact string value, not its claims.
func BlacklistKey(token string) string {
	return blacklistKeyPrefix + token
}
