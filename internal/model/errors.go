package model

import "errors"

// Sentinel errors for token verification. Verify is all-or-nothing: a token
// is either fully valid or fails with exactly one of these.
var (
	ErrMalformedToken   = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature mismatch")
	ErrExpiredToken     = errors.New("token expired")
)

// ErrNotFound is returned by stores when the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// AuthError is a typed authentication failure surfaced to clients as a
// numeric code plus message, never as a raw low-level fault.
type AuthError struct {
	Code    int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Authentication error codes, matching the platform-wide result code table.
var (
	ErrUserNotFound    = &AuthError{Code: 1001, Message: "user not found"}
	ErrBadCredentials  = &AuthError{Code: 1002, Message: "incorrect username or password"}
	ErrAccountDisabled = &AuthError{Code: 1003, Message: "account is disabled"}
	ErrTokenInvalid    = &AuthError{Code: 1004, Message: "token is invalid or revoked"}
	ErrTokenExpired    = &AuthError{Code: 1005, Message: "token has expired"}
)

// AsAuthError unwraps err to an *AuthError if there is one in its chain.
func AsAuthError(err error) (*AuthError, bool) {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}
