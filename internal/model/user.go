package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateAvatar(ctx context.Context, id int64, avatarKey string) error
}

// CredentialVerifier checks a presented password against a stored hash.
type CredentialVerifier interface {
	Verify(password, hash string) bool
}

// User represents a stored user account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	RealName     string
	RoleID       int64
	Avatar       string
	Enabled      bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile is the public view of an account returned to clients.
type UserProfile struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	RealName  string `json:"realName"`
	RoleID    int64  `json:"roleId"`
	AvatarURL string `json:"avatar"`
}
