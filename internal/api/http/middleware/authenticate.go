package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/smartsubstation/auth-server/internal/api/http/authctx"
	"github.com/smartsubstation/auth-server/internal/logger"
	"github.com/smartsubstation/auth-server/internal/model"
)

const bearerPrefix = "Bearer "

// Authenticate resolves the Authorization header into a request principal.
//
// The middleware itself never rejects a request: a missing, malformed,
// expired or revoked token leaves the request anonymous and lets the route
// policy decide. RequireAuth is the enforcing counterpart.
type Authenticate struct {
	codec    model.TokenCodec
	sessions model.SessionStore
	logger   *logger.Logger
}

// NewAuthenticate creates the authentication middleware.
func NewAuthenticate(codec model.TokenCodec, sessions model.SessionStore, logger *logger.Logger) *Authenticate {
	return &Authenticate{codec: codec, sessions: sessions, logger: logger}
}

// Handle returns the gin middleware function.
func (m *Authenticate) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// An upstream middleware may have authenticated already.
		if _, ok := authctx.PrincipalFromContext(ctx); ok {
			c.Next()
			return
		}

		token := ExtractBearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		blacklisted, err := m.sessions.IsBlacklisted(ctx, token)
		if err != nil {
			m.logger.Warn("Authenticate middleware: blacklist check failed", "error", err.Error())
			c.Next()
			return
		}
		if blacklisted {
			c.Next()
			return
		}

		claims, err := m.codec.Verify(token)
		if err != nil {
			m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
			c.Next()
			return
		}

		principal := model.Principal{
			UserID:   claims.UserID,
			RoleID:   claims.RoleID,
			Username: claims.Subject,
		}
		c.Request = c.Request.WithContext(authctx.WithPrincipal(ctx, principal))
		c.Next()
	}
}

// ExtractBearerToken returns the bearer token from the Authorization header,
// or "" when the header is absent or not a bearer scheme.
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(header, bearerPrefix)
}
