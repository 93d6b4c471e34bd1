package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
)

// RequireRole is a middleware that checks if the user has the required role.
// It must run after JWTAuth, which puts the role claim into the context.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("userID"); !exists {
			c.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrCodeUnauthorized, "User not authenticated"))
			c.Abort()
			return
		}

		role, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrCodeForbidden, "User role not found in token"))
			c.Abort()
			return
		}

		userRole, ok := role.(string)
		if !ok {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrCodeForbidden, "Invalid role format"))
			c.Abort()
			return
		}

		if userRole != requiredRole {
			c.JSON(http.StatusForbidden, models.NewAPIError(models.ErrCodeForbidden, "Insufficient permissions", map[string]interface{}{
				"required_role": requiredRole,
				"user_role":     userRole,
			}))
			c.Abort()
			return
		}

		c.Next()
	}
}
