package middleware

import (
	"net/http"
	"strings"

	"food-ordering-api/models"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// Identity is the resolved caller, threaded explicitly through the request
// context instead of each handler re-parsing the token.
type Identity struct {
	UserID  string
	Role    models.Role
	Country models.Country
}

const identityKey = "identity"

// AuthRequired resolves the bearer token to a user and stores the identity
// in the request context.
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{UserID: user.ID, Role: user.Role, Country: user.Country})
		c.Next()
	}
}

// RoleRequired enforces that caller has one of the allowed roles
func RoleRequired(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
		c.Abort()
	}
}

func rolesString(roles []models.Role) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += ", "
		}
		s += string(r)
	}
	return s
}

// CurrentIdentity extracts the caller identity from context. Only valid
// behind AuthRequired.
func CurrentIdentity(c *gin.Context) Identity {
	val, _ := c.Get(identityKey)
	id, _ := val.(Identity)
	return id
}
