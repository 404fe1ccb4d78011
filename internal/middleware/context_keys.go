package middleware

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// tenantIDKey is the key used to store the authenticated tenant's ID in the
// request context.
const tenantIDKey = contextKey("tenantID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin
// context. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			if userID, ok := v.(string); ok {
				return userID, true
			}
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetTenantIDFromContext retrieves the authenticated tenant ID from the Gin
// context. It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(c *gin.Context) (domain.TenantID, bool) {
	tenantIDVal, exists := c.Get(string(tenantIDKey))
	if !exists {
		if v := c.Request.Context().Value(tenantIDKey); v != nil {
			if tenantID, ok := v.(domain.TenantID); ok {
				return tenantID, true
			}
		}
		return 0, false
	}

	tenantID, ok := tenantIDVal.(domain.TenantID)
	if !ok {
		return 0, false
	}
	return tenantID, true
}
