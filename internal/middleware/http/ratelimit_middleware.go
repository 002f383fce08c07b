package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loadsmart_billing/internal/limiter"
)

// CreateRateLimitMiddleware is a generator function that creates a rate-limiting middleware for a specific policy.
func CreateRateLimitMiddleware(limiterManager *limiter.Manager, policyName string) gin.HandlerFunc {
	// Get the specific limiter for the policy once.
	policyLimiter := limiterManager.Get(policyName)

	return func(c *gin.Context) {
		// The actor was set by the auth middleware, which always runs first.
		actor, ok := ActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "code": http.StatusUnauthorized, "message": "Unauthorized: actor not found in context"})
			return
		}

		allowed, err := policyLimiter.Allow(c.Request.Context(), actor.UserId.Hex())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "code": http.StatusInternalServerError, "message": "Failed to check rate limit"})
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"status": "error", "code": http.StatusTooManyRequests, "message": "Too Many Requests"})
			return
		}

		c.Next()
	}
}
