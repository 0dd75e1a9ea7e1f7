package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
	// IdleTTL drops the limiter of a client not seen for this long.
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter keeps one token bucket per client IP.
type rateLimiter struct {
	config  RateLimiterConfig
	mu      sync.Mutex
	clients map[string]*clientLimiter
	swept   time.Time
}

func (r *rateLimiter) allow(client string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.config.IdleTTL > 0 && now.Sub(r.swept) > r.config.IdleTTL {
		for ip, cl := range r.clients {
			if now.Sub(cl.lastSeen) > r.config.IdleTTL {
				delete(r.clients, ip)
			}
		}
		r.swept = now
	}

	cl, ok := r.clients[client]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(r.config.RequestsPerSecond), r.config.Burst)}
		r.clients[client] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// NewRateLimiterMiddleware creates a new rate limiter middleware
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	if config.IdleTTL == 0 {
		config.IdleTTL = 10 * time.Minute
	}
	limiter := &rateLimiter{config: config, clients: make(map[string]*clientLimiter)}

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "1")
			AbortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
