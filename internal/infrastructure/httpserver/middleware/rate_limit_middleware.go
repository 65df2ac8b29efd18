package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/internal/core/ports"
)

type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiterService
	logger      *logrus.Logger
}

func NewRateLimitMiddleware(rateLimiter ports.RateLimiterService, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter, logger: logger}
}

// LimitComments applies the per-address comment budget and sets the standard
// rate limit headers on every response.
func (r *RateLimitMiddleware) LimitComments() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res := r.rateLimiter.AllowComment(c.RealIP())

			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
			c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", res.ResetAt.Unix()))

			if !res.Allowed {
				retryAfter := int(res.RetryAfter(time.Now()).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
				if r.logger != nil {
					r.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Warn("comment rate limit exceeded")
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many comments, slow down")
			}
			return next(c)
		}
	}
}
