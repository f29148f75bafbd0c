package middleware

import (
	"net/http"
	"sync"
	"time"

	"almadina/utils"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultTrackedClients bounds how many client limiters are kept. The least
// recently seen client is evicted first and starts over with a full bucket.
const DefaultTrackedClients = 10000

// rateLimiterStore holds the rate limiters of recently seen client IPs.
type rateLimiterStore struct {
	limiters *lru.Cache[string, *rate.Limiter]
	perMin   int
	mu       sync.Mutex
}

func newRateLimiterStore(perMin, maxClients int) *rateLimiterStore {
	if perMin <= 0 {
		perMin = 100
	}
	if maxClients <= 0 {
		maxClients = DefaultTrackedClients
	}
	// lru.New only fails on a non-positive size.
	limiters, _ := lru.New[string, *rate.Limiter](maxClients)
	return &rateLimiterStore{
		limiters: limiters,
		perMin:   perMin,
	}
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *rateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters.Get(ip)
	if !exists {
		// perMin requests per minute, all of which may arrive as one burst.
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), s.perMin)
		s.limiters.Add(ip, limiter)
	}
	return limiter
}

// RateLimitMiddleware limits requests per client IP to perMin per minute.
// The IP comes from gin's ClientIP, so forwarding headers only count when
// the engine trusts the proxy that set them.
func RateLimitMiddleware(perMin int) gin.HandlerFunc {
	return rateLimit(newRateLimiterStore(perMin, DefaultTrackedClients))
}

func rateLimit(store *rateLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.getLimiter(ip).Allow() {
			utils.RequestLogger(c).Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, utils.ErrorResponse{
				Message: "Rate limit exceeded",
				Details: "Try again later.",
			})
			return
		}
		c.Next()
	}
}
