package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/smartsubstation/auth-server/internal/logger"
	"github.com/smartsubstation/auth-server/internal/model"
)

// avatarURLTTL bounds how long a presigned avatar download link stays valid.
const avatarURLTTL = 15 * time.Minute

// Profile serves the authenticated user's public profile and avatar.
type Profile struct {
	users   model.UserStore
	avatars model.Storage
	logger  *logger.Logger
}

func NewProfile(users model.UserStore, avatars model.Storage, logger *logger.Logger) *Profile {
	return &Profile{
		users:   users,
		avatars: avatars,
		logger:  logger,
	}
}

// Get returns the public profile for the user. A stored avatar key is
// resolved to a presigned download URL; if resolution fails the raw key is
// returned so the profile itself stays available.
func (p *Profile) Get(ctx context.Context, userID int64) (model.UserProfile, error) {
	user, err := p.users.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.UserProfile{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	profile := model.UserProfile{
		UserID:    user.ID,
		Username:  user.Username,
		RealName:  user.RealName,
		RoleID:    user.RoleID,
		AvatarURL: user.Avatar,
	}

	if user.Avatar != "" {
		url, err := p.avatars.PresignedGetURL(ctx, user.Avatar, avatarURLTTL)
		if err != nil {
			p.logger.Warn("Profile service: failed to presign avatar",
				"user_id", user.ID,
				"avatar_key", user.Avatar,
				"error", err.Error())
		} else {
			profile.AvatarURL = url
		}
	}

	return profile, nil
}

// SetAvatar uploads a new avatar object and points the user record at it.
func (p *Profile) SetAvatar(ctx context.Context, userID int64, reader io.Reader) (model.UserProfile, error) {
	if _, err := p.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.UserProfile{}, model.ErrUserNotFound
		}
		return model.UserProfile{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	key := path.Join("avatars", fmt.Sprintf("%d", userID), uuid.NewString())

	if err := p.avatars.Upload(ctx, key, reader); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := p.users.UpdateAvatar(ctx, userID, key); err != nil {
		return model.UserProfile{}, fmt.Errorf("failed to update avatar reference: %w", err)
	}

	p.logger.Info("Profile service: avatar updated",
		"user_id", userID,
		"avatar_key", key)

	return p.Get(ctx, userID)
}
