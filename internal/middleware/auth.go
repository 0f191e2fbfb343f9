// Package middleware contains the Gin middleware for the HTTP surface:
// API-key auth, CORS, and per-key rate limiting. Each middleware either calls
// c.Next() to proceed or aborts with a JSON error.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiKey pulls the key from the X-API-Key header, falling back to the
// api_key query parameter for callers that can't set headers.
func apiKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	return c.Query("api_key")
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// APIKeyAuth validates API keys against the configured list and stashes the
// accepted key in the request context for the rate limiter.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	valid := keySet(validKeys)

	return func(c *gin.Context) {
		key := apiKey(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing API key",
			})
			return
		}

		if _, ok := valid[key]; !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid API key",
			})
			return
		}

		c.Set("api_key", key)
		c.Next()
	}
}

// AdminKeyAuth is the same check against the admin key list. An unknown key
// here is a 403 rather than 401 — the caller authenticated but isn't an
// admin.
func AdminKeyAuth(adminKeys []string) gin.HandlerFunc {
	valid := keySet(adminKeys)

	return func(c *gin.Context) {
		key := apiKey(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing admin API key",
			})
			return
		}

		if _, ok := valid[key]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "invalid admin API key",
			})
			return
		}

		c.Set("api_key", key)
		c.Next()
	}
}
