package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartsubstation/auth-server/internal/api/http/authctx"
	"github.com/smartsubstation/auth-server/internal/api/http/response"
)

// RequireAuth aborts anonymous requests with 401. Routes behind it can rely
// on a principal being present in the request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authctx.PrincipalFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized())
			return
		}
		c.Next()
	}
}
