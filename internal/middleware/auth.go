package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Avinash9006/InfinityPower/internal/models"
	"github.com/Avinash9006/InfinityPower/internal/services"
)

// UserResolver looks up the token's subject. Declared here so the
// middleware depends on a lookup, not on the repository package.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthRequired walks a request from bearer token to attached identity:
// missing token 401, invalid or expired token 401, vanished user 404.
// Tenant scope comes from the token claim, falling back to the stored
// record.
func AuthRequired(jwt *services.JWTService, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no token provided",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "user not found",
			})
			return
		}

		tenantID := user.TenantID
		if claims.TenantID != "" {
			if parsed, parseErr := uuid.Parse(claims.TenantID); parseErr == nil {
				tenantID = parsed
			}
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextTenantID, tenantID)
		c.Set(ContextUserRole, user.Role)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextUserName, user.Name)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
