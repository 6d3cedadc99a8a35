package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter throttles requests per client IP using an in-memory store.
// Intended for the upload endpoint, where every request fans out to the
// speech engines.
type RateLimiter struct {
	limiter *limiter.Limiter
}

// NewRateLimiter parses a rate like "10-M" (10 per minute) or "100-H".
func NewRateLimiter(rate string) (*RateLimiter, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	return &RateLimiter{limiter: limiter.New(memory.NewStore(), parsed)}, nil
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, err := l.limiter.Get(c.Request.Context(), c.ClientIP())
		if err != nil {
			c.Next()
			return
		}
		if ctx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				gin.H{"error": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
