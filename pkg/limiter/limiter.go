package limiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu       sync.RWMutex
	visitors map[string]*visitor

	rps   int
	burst int
	ttl   time.Duration
}

// Limit returns a gin middleware that rate-limits requests per client IP.
// Visitors idle longer than ttl are evicted by a background sweep.
func Limit(rps int, burst int, ttl time.Duration) gin.HandlerFunc {
	l := &rateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rps,
		burst:    burst,
		ttl:      ttl,
	}

	go l.cleanupVisitors()

	return func(c *gin.Context) {
		if !l.getVisitor(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}

		c.Next()
	}
}

func (l *rateLimiter) getVisitor(ip string) *rate.Limiter {
	l.mu.RLock()
	v, exists := l.visitors[ip]
	l.mu.RUnlock()

	if exists {
		l.mu.Lock()
		v.lastSeen = time.Now()
		l.mu.Unlock()
		return v.limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// re-check under the write lock, another request may have won the race
	if v, exists = l.visitors[ip]; exists {
		v.lastSeen = time.Now()
		return v.limiter
	}

	v = &visitor{
		limiter:  rate.NewLimiter(rate.Limit(l.rps), l.burst),
		lastSeen: time.Now(),
	}
	l.visitors[ip] = v

	return v.limiter
}

func (l *rateLimiter) cleanupVisitors() {
	for {
		time.Sleep(l.ttl)

		l.mu.Lock()
		for ip, v := range l.visitors {
			if time.Since(v.lastSeen) > l.ttl {
				delete(l.visitors, ip)
			}
		}
		l.mu.Unlock()
	}
}
