package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"dental-clinic-server/internal/utils"
)

// RateLimitMessage is the fixed user-facing rejection text.
const RateLimitMessage = "Too many requests from this IP, please try again later."

type window struct {
	count int
	start time.Time
}

// RateLimiter tracks request counts per client key over a fixed window.
// Check-and-increment happens under a single lock so concurrent requests
// from the same key cannot race past the limit.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*window
	max     int
	period  time.Duration
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing max requests per period per key.
func NewRateLimiter(max int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*window),
		max:     max,
		period:  period,
		now:     time.Now,
	}
	// sweep expired windows so the map doesn't grow unbounded
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for key, w := range rl.clients {
				if rl.now().Sub(w.start) > rl.period {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

// Allow records one request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.clients[key]
	if !ok || now.Sub(w.start) >= rl.period {
		rl.clients[key] = &window{count: 1, start: now}
		return true
	}

	w.count++
	return w.count <= rl.max
}

// Middleware rejects requests over the limit with a 429. Keyed by client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			utils.TooManyRequests(c, RateLimitMessage)
			c.Abort()
			return
		}
		c.Next()
	}
}
