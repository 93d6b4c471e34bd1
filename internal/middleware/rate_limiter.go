package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/franciscosanchezn/pizza-delivery-api/internal/models"
)

// ClientRateLimiter throttles requests per client IP using a token bucket
// per client. Stale client buckets are dropped after an hour of inactivity.
type ClientRateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	clients  map[string]*clientBucket
	lastSwep time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientRateLimiter allows `requests` per `interval` with the same burst
func NewClientRateLimiter(requests int, interval time.Duration) *ClientRateLimiter {
	return &ClientRateLimiter{
		limit:    rate.Every(interval / time.Duration(requests)),
		burst:    requests,
		clients:  make(map[string]*clientBucket),
		lastSwep: time.Now(),
	}
}

// Limit is the gin middleware enforcing the per-client rate
func (rl *ClientRateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, models.NewAPIError(models.ErrCodeBadRequest, "Rate limit exceeded, please retry later"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *ClientRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSwep) > time.Hour {
		for key, bucket := range rl.clients {
			if now.Sub(bucket.lastSeen) > time.Hour {
				delete(rl.clients, key)
			}
		}
		rl.lastSwep = now
	}

	bucket, ok := rl.clients[ip]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.Allow()
}
