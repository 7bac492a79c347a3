package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"dental-clinic-server/internal/config"
	"dental-clinic-server/internal/utils"
)

// AdminAuth creates a middleware guarding the moderation endpoints. The
// credential check strategy depends on cfg.AdminAuthMode: a pre-shared
// operator secret or a signed token issued by the admin login endpoint.
func AdminAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		credential := parts[1]
		switch cfg.AdminAuthMode {
		case config.AdminAuthSignedToken:
			claims, err := utils.ValidateAdminToken(credential, cfg.JWTSecret)
			if err != nil {
				utils.Unauthorized(c, "Invalid or expired token")
				c.Abort()
				return
			}
			c.Set("adminID", claims.AdminID)
			c.Set("adminEmail", claims.Email)
		default:
			if cfg.AdminAPIToken == "" ||
				subtle.ConstantTimeCompare([]byte(credential), []byte(cfg.AdminAPIToken)) != 1 {
				utils.Unauthorized(c, "Invalid admin credential")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// GetAdminIDFromContext returns the authenticated operator's id, if any.
// Only populated in signed-token mode.
func GetAdminIDFromContext(c *gin.Context) (string, bool) {
	adminID, exists := c.Get("adminID")
	if !exists {
		return "", false
	}
	idStr, ok := adminID.(string)
	return idStr, ok
}
