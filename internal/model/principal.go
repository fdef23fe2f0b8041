package model

// Principal is the authenticated identity attached to a request context by
// the authentication middleware. Role policy is decided elsewhere; the
// principal only carries the identifiers.
type Principal struct {
	UserID   int64
	RoleID   int64
	Username string
}
