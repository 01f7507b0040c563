package middleware

import (
	"net/http"
	"strings"

	"github.com/dojodesk/dojodesk/internal/auth"
	"github.com/dojodesk/dojodesk/internal/types"
	"github.com/gin-gonic/gin"
)

// AdminRequired gates every admin-scoped route: 401 when the bearer
// token is missing or invalid, 403 when the verified role is not
// admin. The role is trusted from the signed token for its lifetime.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		subjectID, role, err := auth.VerifyToken(parts[1])

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		if role != types.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		ctx.Set(types.ContextAdminKey, subjectID)
		ctx.Next()
	}
}
