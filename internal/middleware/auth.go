package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"foodnest/internal/config"
	domainUser "foodnest/internal/domain/user"
	"foodnest/pkg/utils"
)

// AuthMiddleware validates the Bearer token and re-resolves the account
// against the store, so tokens of deleted or disabled users stop working
// immediately even though the token itself is still within its lifetime.
func AuthMiddleware(cfg *config.Config, userRepo domainUser.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		account, err := userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		if account.Disabled {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Account is disabled")
			c.Abort()
			return
		}

		// Role and email come from the store, not the token payload.
		c.Set("userID", account.ID)
		c.Set("email", account.Email)
		c.Set("role", account.Role)

		c.Next()
	}
}
