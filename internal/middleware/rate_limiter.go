package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/hospitalms/admin-console/pkg/httputil"
)

// RateLimiterConfig bounds how fast clients may drive the console. Every
// successful write triggers a full collection re-fetch, so a burst of
// writes amplifies into backend list calls; the inbound limiter keeps that
// amplification bounded.
type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
}

// RateLimiter shares one token bucket across every console request.
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(config.Rate, config.Burst),
	}
}

// RateLimit rejects requests above the configured rate with the console's
// response envelope, so throttled clients parse the same error shape the
// screens already handle.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter.Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.Response{
				Success: false,
				Error: &httputil.Error{
					Code:    http.StatusTooManyRequests,
					Message: "rate limit exceeded, retry shortly",
				},
			})
			return
		}
		c.Next()
	}
}
