package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/creatorlane/creatorlane/internal/auth"
	"github.com/creatorlane/creatorlane/internal/models"
	"github.com/creatorlane/creatorlane/pkg/errors"
	"github.com/creatorlane/creatorlane/pkg/metrics"
	"github.com/creatorlane/creatorlane/pkg/response"
)

const (
	CtxClaimsKey = "authClaims"
	CtxUserIDKey = "userID"
	CtxRoleKey   = "userRole"
)

// Auth enforces JWT authentication using the supplied JWT service.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole gates a route group to one or more roles. It must run after Auth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxRoleKey)
		if !ok {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}
		role, _ := v.(models.Role)
		for _, allowed := range roles {
			if role == allowed {
				metrics.RoleChecks.WithLabelValues(string(allowed), "allowed").Inc()
				c.Next()
				return
			}
		}
		if len(roles) > 0 {
			metrics.RoleChecks.WithLabelValues(string(roles[0]), "denied").Inc()
		}
		response.Error(c, errors.ErrForbidden)
		c.Abort()
	}
}
