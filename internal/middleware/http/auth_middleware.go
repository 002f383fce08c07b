package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"loadsmart_billing/internal/models"
	"loadsmart_billing/pkg/jwt"
)

// actorKey is the gin context key the authenticated user is stored under.
const actorKey = "actor"

// AuthMiddleware defines the gin middleware used for request authentication.
type AuthMiddleware gin.HandlerFunc

// NewAuthMiddleware creates a middleware that validates the Bearer token and
// resolves it into the acting user for downstream handlers.
func NewAuthMiddleware(jwtManager *jwt.Manager) AuthMiddleware {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "code": http.StatusUnauthorized, "message": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "code": http.StatusUnauthorized, "message": "Bearer token required"})
			return
		}

		payload, err := jwtManager.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "code": http.StatusUnauthorized, "message": "Invalid or expired token"})
			return
		}

		actor, err := actorFromPayload(payload)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "code": http.StatusUnauthorized, "message": "Invalid token payload"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole creates a middleware that rejects requests whose actor does not
// carry one of the allowed roles. It must run after the auth middleware.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "code": http.StatusUnauthorized, "message": "Unauthorized"})
			return
		}
		for _, role := range allowedRoles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"status": "error", "code": http.StatusForbidden, "message": "Access denied"})
	}
}

// ActorFromContext returns the authenticated user set by the auth middleware.
func ActorFromContext(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil, false
	}
	actor, ok := v.(*models.User)
	return actor, ok
}

func actorFromPayload(payload map[string]interface{}) (*models.User, error) {
	rawID, _ := payload["user_id"].(string)
	userID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, err
	}

	actor := &models.User{UserId: userID}
	if name, ok := payload["name"].(string); ok {
		actor.Name = name
	}
	if email, ok := payload["email"].(string); ok {
		actor.Email = email
	}
	if role, ok := payload["role"].(string); ok {
		actor.Role = role
	}
	return actor, nil
}
