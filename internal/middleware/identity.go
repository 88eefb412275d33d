package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// OwnerKey identifies the cart/session owner: the authenticated user when a
// token was presented, otherwise the anonymous device token from the
// X-Cart-Token header. Returns false when neither is available.
func OwnerKey(c *gin.Context) (string, bool) {
	if id := c.GetInt64("user_id"); id > 0 {
		return fmt.Sprintf("user:%d", id), true
	}
	if tok := strings.TrimSpace(c.GetHeader("X-Cart-Token")); tok != "" {
		return "anon:" + tok, true
	}
	return "", false
}

// UserID returns the authenticated user id, 0 when anonymous.
func UserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}
