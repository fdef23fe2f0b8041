package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartsubstation/auth-server/internal/logger"
	"github.com/smartsubstation/auth-server/internal/model"
)

// Auth orchestrates login, logout and token refresh over the token codec,
// the session store and the user store.
type Auth struct {
	users    model.UserStore
	sessions model.SessionStore
	codec    model.TokenCodec
	verifier model.CredentialVerifier
	logger   *logger.Logger

	// tokenTTL drives the exp claim of issued tokens; sessionTTL drives the
	// TTL of session and blacklist keys. Config validation guarantees
	// sessionTTL >= tokenTTL so a record never expires before its token.
	tokenTTL   time.Duration
	sessionTTL time.Duration
}

func NewAuth(
	users model.UserStore,
	sessions model.SessionStore,
	codec model.TokenCodec,
	verifier model.CredentialVerifier,
	tokenTTL time.Duration,
	sessionTTL time.Duration,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:      users,
		sessions:   sessions,
		codec:      codec,
		verifier:   verifier,
		tokenTTL:   tokenTTL,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login authenticates the user, issues a token and registers it as the
// user's current session. A second login for the same user overwrites the
// session record; the token from the first login stays valid until it
// expires or is logged out (multi-device behavior).
func (a *Auth) Login(ctx context.Context, username, password string) (model.LoginResult, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: login for unknown user", "username", username)
		return model.LoginResult{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.verifier.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: bad credentials", "username", username)
		return model.LoginResult{}, model.ErrBadCredentials
	}

	if !user.Enabled {
		a.logger.Info("Auth service: disabled account rejected", "username", username, "user_id", user.ID)
		return model.LoginResult{}, model.ErrAccountDisabled
	}

	token, err := a.codec.Issue(user.Username, user.ID, user.RoleID, a.tokenTTL)
	if err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	if err := a.sessions.SaveSession(ctx, user.ID, token, a.sessionTTL); err != nil {
		return model.LoginResult{}, fmt.Errorf("failed to save session: %w", err)
	}

	// Bookkeeping side effect, not part of the authentication contract.
	if err := a.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		a.logger.Warn("Auth service: failed to record last login",
			"user_id", user.ID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: login succeeded",
		"user_id", user.ID,
		"username", user.Username)

	return model.LoginResult{
		Token:     token,
		TokenType: model.TokenTypeBearer,
		UserID:    user.ID,
		Username:  user.Username,
		RealName:  user.RealName,
		RoleID:    user.RoleID,
		Avatar:    user.Avatar,
	}, nil
}

// Logout revokes the token and removes the session record. It is idempotent
// and never fails the client: an empty or undecodable token, or a store
// failure, is logged and still reported as success.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	claims, err := a.codec.Decode(token)
	if err != nil {
		a.logger.Warn("Auth service: logout with undecodable token", "error", err.Error())
		return nil
	}

	if err := a.sessions.BlacklistToken(ctx, token, a.sessionTTL); err != nil {
		a.logger.Warn("Auth service: failed to blacklist token on logout",
			"user_id", claims.UserID,
			"error", err.Error())
	}

	if err := a.sessions.DeleteSession(ctx, claims.UserID); err != nil {
		a.logger.Warn("Auth service: failed to delete session on logout",
			"user_id", claims.UserID,
			"error", err.Error())
	}

	a.logger.Info("Auth service: logout",
		"user_id", claims.UserID,
		"username", claims.Subject)

	return nil
}

// Refresh rotates a valid, non-blacklisted token: it issues a new token for
// the same identity, overwrites the session record and blacklists the old
// token so refresh is one-shot and non-replayable.
func (a *Auth) Refresh(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", model.ErrTokenInvalid
	}

	claims, err := a.codec.Verify(token)
	if errors.Is(err, model.ErrExpiredToken) {
		return "", model.ErrTokenExpired
	}
	if err != nil {
		return "", model.ErrTokenInvalid
	}

	blacklisted, err := a.sessions.IsBlacklisted(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to check blacklist: %w", err)
	}
	if blacklisted {
		return "", model.ErrTokenInvalid
	}

	newToken, err := a.codec.Issue(claims.Subject, claims.UserID, claims.RoleID, a.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	if err := a.sessions.SaveSession(ctx, claims.UserID, newToken, a.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	if err := a.sessions.BlacklistToken(ctx, token, a.sessionTTL); err != nil {
		return "", fmt.Errorf("failed to blacklist old token: %w", err)
	}

	a.logger.Info("Auth service: token refreshed",
		"user_id", claims.UserID,
		"username", claims.Subject)

	return newToken, nil
}
