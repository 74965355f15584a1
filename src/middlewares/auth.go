package middlewares

import (
	"net/http"
	"shareit/src/config"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware resolves the acting user from the X-Sharer-User-Id
// header. It only parses the id; each operation still verifies the user
// exists before any other check.
func IdentityMiddleware(ctx *gin.Context) {
	header := ctx.GetHeader(config.UserIDHeader)
	if header == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing X-Sharer-User-Id header"})
		return
	}
	id, err := strconv.ParseUint(header, 10, 64)
	if err != nil || id == 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid X-Sharer-User-Id header"})
		return
	}
	ctx.Set("id", uint(id))
}
