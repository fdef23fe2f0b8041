package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartsubstation/auth-server/internal/api/http/response"
	"github.com/smartsubstation/auth-server/internal/model"
)

// writeError renders err as an envelope. Typed auth errors keep their code
// and message and map to 401; anything else becomes an opaque 500.
func writeError(c *gin.Context, err error) {
	if authErr, ok := model.AsAuthError(err); ok {
		c.JSON(http.StatusUnauthorized, response.Err(authErr))
		return
	}
	c.JSON(http.StatusInternalServerError, response.Internal())
}
