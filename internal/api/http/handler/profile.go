package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartsubstation/auth-server/internal/api/http/authctx"
	"github.com/smartsubstation/auth-server/internal/api/http/response"
	"github.com/smartsubstation/auth-server/internal/logger"
	"github.com/smartsubstation/auth-server/internal/model"
)

// maxAvatarSize bounds avatar uploads to 5 MiB.
const maxAvatarSize = 5 << 20

// ProfileService is the part of the profile service the HTTP layer depends on.
type ProfileService interface {
	Get(ctx context.Context, userID int64) (model.UserProfile, error)
	SetAvatar(ctx context.Context, userID int64, reader io.Reader) (model.UserProfile, error)
}

// Profile exposes the authenticated user's profile endpoints. Routes are
// mounted behind RequireAuth, so a principal is always present.
type Profile struct {
	service ProfileService
	logger  *logger.Logger
}

// NewProfile creates the profile endpoint handler.
func NewProfile(service ProfileService, logger *logger.Logger) *Profile {
	return &Profile{service: service, logger: logger}
}

// Me returns the current user's profile.
func (h *Profile) Me(c *gin.Context) {
	principal, ok := authctx.PrincipalFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized())
		return
	}

	profile, err := h.service.Get(c.Request.Context(), principal.UserID)
	if err != nil {
		if _, ok := model.AsAuthError(err); !ok {
			h.logger.Error("Profile handler: get failed", "user_id", principal.UserID, "error", err.Error())
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(profile))
}

// SetAvatar stores the request body as the current user's avatar.
func (h *Profile) SetAvatar(c *gin.Context) {
	principal, ok := authctx.PrincipalFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized())
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarSize)
	defer body.Close()

	profile, err := h.service.SetAvatar(c.Request.Context(), principal.UserID, body)
	if err != nil {
		if _, ok := model.AsAuthError(err); !ok {
			h.logger.Error("Profile handler: avatar update failed", "user_id", principal.UserID, "error", err.Error())
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(profile))
}
