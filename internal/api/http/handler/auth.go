package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartsubstation/auth-server/internal/api/http/middleware"
	"github.com/smartsubstation/auth-server/internal/api/http/response"
	"github.com/smartsubstation/auth-server/internal/logger"
	"github.com/smartsubstation/auth-server/internal/model"
)

// AuthService is the part of the auth service the HTTP layer depends on.
type AuthService interface {
	Login(ctx context.Context, username, password string) (model.LoginResult, error)
	Logout(ctx context.Context, token string) error
	Refresh(ctx context.Context, token string) (string, error)
}

// Auth exposes login, logout and token refresh endpoints.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates the auth endpoint handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a username and password and returns a bearer token.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{
			Code:    http.StatusBadRequest,
			Message: "username and password are required",
		})
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if _, ok := model.AsAuthError(err); !ok {
			h.logger.Error("Auth handler: login failed", "error", err.Error())
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(result))
}

// Logout revokes the bearer token from the Authorization header. It always
// answers success, including for requests carrying no token at all.
func (h *Auth) Logout(c *gin.Context) {
	token := middleware.ExtractBearerToken(c)

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.logger.Error("Auth handler: logout failed", "error", err.Error())
	}

	c.JSON(http.StatusOK, response.OK(nil))
}

type refreshResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
}

// Refresh exchanges the bearer token from the Authorization header for a
// fresh one. The presented token is revoked in the process.
func (h *Auth) Refresh(c *gin.Context) {
	token := middleware.ExtractBearerToken(c)

	newToken, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		if _, ok := model.AsAuthError(err); !ok {
			h.logger.Error("Auth handler: refresh failed", "error", err.Error())
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OK(refreshResponse{
		Token:     newToken,
		TokenType: model.TokenTypeBearer,
	}))
}
