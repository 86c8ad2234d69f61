package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fitlink-backend/internal/shared"
	"fitlink-backend/internal/shared/response"
	"fitlink-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token and puts the caller's
// identity into the gin context.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		// Expect "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		c.Set(shared.CtxUserID, userID)
		c.Set(shared.CtxUserType, claims.UserType)
		c.Set(shared.CtxRole, claims.Role)

		c.Next()
	}
}

// GetUserID reads the authenticated user's id from the context.
// Returns uuid.Nil when the request is unauthenticated.
func GetUserID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(shared.CtxUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetUserType reads the authenticated user's type (instructor/studio).
func GetUserType(c *gin.Context) string {
	return c.GetString(shared.CtxUserType)
}

// RequireAuth aborts with 401 when no user id is present.
// Used by handlers that were reached without AuthMiddleware by mistake.
func RequireAuth(c *gin.Context) (uuid.UUID, bool) {
	id := GetUserID(c)
	if id == uuid.Nil {
		response.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		c.Abort()
		return uuid.Nil, false
	}
	return id, true
}
