// README: Session middleware; validates the session id path parameter.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Session rejects requests whose :sid is empty, oversized, or not URL-safe.
// Session ids are client-generated (UUIDs in practice) and are never trusted
// beyond key construction.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.Param("sid")
		if !validSessionID(sid) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
			return
		}
		c.Next()
	}
}

func validSessionID(sid string) bool {
	if sid == "" || len(sid) > 64 {
		return false
	}
	for _, r := range sid {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
