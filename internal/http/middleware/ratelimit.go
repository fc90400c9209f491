package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientInfo struct {
	last  time.Time
	count int
}

// SimpleRateLimit is the in-process fixed window used when Redis is not
// configured. Counts are per instance.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	var mu sync.Mutex
	clients := make(map[string]*clientInfo)

	return func(c *gin.Context) {
		ident := rateLimitIdent(c)
		now := time.Now()

		mu.Lock()
		ci, ok := clients[ident]
		if !ok || now.Sub(ci.last) > window {
			// drop stale windows so the map stays bounded by active clients
			for k, v := range clients {
				if now.Sub(v.last) > window {
					delete(clients, k)
				}
			}
			ci = &clientInfo{last: now}
			clients[ident] = ci
		}
		ci.count++
		count := ci.count
		mu.Unlock()

		if count > maxRequests {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}

// rateLimitIdent keys authenticated requests by user and the rest by IP.
func rateLimitIdent(c *gin.Context) string {
	if id, ok := UserID(c); ok {
		return "u:" + formatInt(id)
	}
	return "ip:" + c.ClientIP()
}
