package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-API-key token bucket: each key's bucket refills at
// rps tokens per second up to burst. An empty bucket means 429.
//
// The limiter map is shared across requests, so a mutex guards it.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		key, exists := c.Get("api_key")
		if !exists {
			// Auth middleware didn't run for this route; nothing to key on.
			c.Next()
			return
		}

		mu.Lock()
		limiter, ok := limiters[key.(string)]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[key.(string)] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
