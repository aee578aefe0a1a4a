package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-services/internal/constants"
	"github.com/yukikurage/task-management-services/internal/response"
)

// Decision is the limiter's verdict for one request.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration
}

// Limiter counts requests per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// KeyFunc builds a rate-limit key from the request
type KeyFunc func(c *gin.Context) string

// KeyByIP returns a key function that limits by client IP only
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		return "rl:ip:" + ip
	}
}

// RateLimit rejects requests over the limit with a uniform 429 envelope. It
// sets X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset on every
// counted request, and Retry-After when rejecting. A failing limiter lets the
// request through.
func RateLimit(limiter Limiter, keyFn KeyFunc) gin.HandlerFunc {
	if limiter == nil || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		decision, err := limiter.Allow(c.Request.Context(), keyFn(c))
		if err != nil {
			Log(c).WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		reset := strconv.Itoa(ceilSeconds(decision.ResetAfter))
		c.Header(constants.HeaderRateLimitLimit, strconv.Itoa(decision.Limit))
		c.Header(constants.HeaderRateLimitRemaining, strconv.Itoa(decision.Remaining))
		c.Header(constants.HeaderRateLimitReset, reset)

		if !decision.Allowed {
			c.Header(constants.HeaderRetryAfter, reset)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
