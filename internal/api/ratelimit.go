package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipRateLimiter keeps one token bucket per client IP. Buckets idle for
// longer than staleAfter are dropped by a background sweep.
type ipRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	message string
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const staleAfter = 30 * time.Minute

func newIPRateLimiter(limit rate.Limit, burst int, message string) *ipRateLimiter {
	rl := &ipRateLimiter{
		clients: make(map[string]*client),
		limit:   limit,
		burst:   burst,
		message: message,
	}
	go rl.sweep()
	return rl
}

func (rl *ipRateLimiter) sweep() {
	for range time.Tick(staleAfter) {
		rl.mu.Lock()
		for ip, c := range rl.clients {
			if time.Since(c.lastSeen) > staleAfter {
				delete(rl.clients, ip)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	c, ok := rl.clients[ip]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter.Allow()
}

func (rl *ipRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": rl.message,
			})
			return
		}
		c.Next()
	}
}

// APIRateLimiter allows 100 requests per 15 minutes per IP across the API.
func APIRateLimiter() gin.HandlerFunc {
	return newIPRateLimiter(
		rate.Every(15*time.Minute/100), 100,
		"too many requests from this IP, please try again later",
	).Middleware()
}

// AuthRateLimiter allows 5 credential attempts per hour per IP.
func AuthRateLimiter() gin.HandlerFunc {
	return newIPRateLimiter(
		rate.Every(time.Hour/5), 5,
		"too many authentication attempts, please try again later",
	).Middleware()
}
