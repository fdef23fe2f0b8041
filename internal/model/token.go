package model

import "time"

// Claims is the identity data carried inside a signed token. Claims are
// immutable once issued; a new token means a new claims set.
type Claims struct {
	Subject   string
	UserID    int64
	RoleID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec encodes and decodes signed identity claims.
//
// Verify performs full validation (signature and expiry) and is what every
// untrusted input must go through. Decode skips both checks and exists only
// for callers holding a token they do not need to trust, such as logout.
type TokenCodec interface {
	Issue(subject string, userID, roleID int64, ttl time.Duration) (string, error)
	Verify(token string) (Claims, error)
	Decode(token string) (Claims, error)
}
