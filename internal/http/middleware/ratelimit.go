package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientInfo struct {
	limiter *rate.Limiter
	last    time.Time
}

// LocalRateLimit is a per-IP token bucket refilling maxRequests tokens per
// window. Idle entries are swept once per window.
func LocalRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	var (
		mu        sync.Mutex
		clients   = make(map[string]*clientInfo)
		lastSweep = time.Now()
	)
	every := rate.Every(window / time.Duration(maxRequests))

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > window {
			for k, ci := range clients {
				if now.Sub(ci.last) > window {
					delete(clients, k)
				}
			}
			lastSweep = now
		}
		ci, ok := clients[ip]
		if !ok {
			ci = &clientInfo{limiter: rate.NewLimiter(every, maxRequests)}
			clients[ip] = ci
		}
		ci.last = now
		allowed := ci.limiter.AllowN(now, 1)
		mu.Unlock()

		if !allowed {
			RLBlocked.WithLabelValues(routeLabel(c)).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": int(window.Seconds()),
			})
			return
		}

		RLRequests.WithLabelValues(routeLabel(c)).Inc()
		c.Next()
	}
}
