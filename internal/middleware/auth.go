package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/service-task-manager/internal/constants"
	apierrors "github.com/yukikurage/service-task-manager/internal/errors"
)

// RequireAuth admits requests whose session carries an admin id and exposes
// that id to handlers as a uint64.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, ok := toUserID(sessions.Default(c).Get(constants.ContextKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		c.Set(constants.ContextKeyUserID, adminID)
		c.Next()
	}
}

// GetUserID returns the admin id stored by RequireAuth
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(value)
}

// toUserID accepts the integer kinds a session codec may hand back
func toUserID(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v != 0
	case uint:
		return uint64(v), v != 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
