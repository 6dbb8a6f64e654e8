package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// UserIDHeader carries the caller's identity. There is no real
	// authentication in this system; the header mirrors the browser
	// client's locally-stored user id.
	UserIDHeader = "X-User-ID"

	// DefaultUserID is used when no identity header is sent, matching the
	// front-end's fallback user.
	DefaultUserID = "1"

	// ContextUserID is the gin context key the identity is stored under.
	ContextUserID = "user_id"
)

// ClientIdentity resolves the caller's user id from the request and places it
// in the request context for downstream handlers.
func ClientIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			userID = DefaultUserID
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID returns the resolved user id for the request.
func UserID(c *gin.Context) string {
	if id, ok := c.Get(ContextUserID); ok {
		if s, ok := id.(string); ok && s != "" {
			return s
		}
	}
	return DefaultUserID
}
