package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/talentops/attrition-insight/internal/errors"
)

const sessionContextKey = "auth_session"

// RequireAuth validates the bearer token and stores the resolved session
// on the request context.
func RequireAuth(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apperrors.Abort(c, apperrors.NewUnauthorizedError("Missing authorization header"))
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			apperrors.Abort(c, apperrors.NewUnauthorizedError("Authorization header must be a bearer token"))
			return
		}

		session, err := service.ValidateToken(token)
		if err != nil {
			apperrors.Abort(c, apperrors.NewUnauthorizedError("Invalid or expired token"))
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequirePermission rejects sessions whose role does not carry the given
// permission. Must run after RequireAuth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok {
			apperrors.Abort(c, apperrors.NewUnauthorizedError("Authentication required"))
			return
		}

		for _, p := range session.Permissions {
			if p == permission {
				c.Next()
				return
			}
		}

		apperrors.Abort(c, apperrors.NewForbiddenError("Insufficient permissions for this resource"))
	}
}

// SessionFrom returns the authenticated session attached by RequireAuth.
func SessionFrom(c *gin.Context) (*Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*Session)
	return session, ok
}
