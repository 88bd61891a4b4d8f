package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainUser "foodnest/internal/domain/user"
	"foodnest/pkg/utils"
)

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusForbidden, "Role not found in context")
			c.Abort()
			return
		}

		userRole := role.(string)

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

func SuperadminOnly() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleSuperadmin)
}

// SupervisorOrAbove gates endpoints open to floor management.
func SupervisorOrAbove() gin.HandlerFunc {
	return RoleMiddleware(domainUser.RoleSupervisor, domainUser.RoleSuperadmin)
}
