package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/internal/core/domain/locale"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// RequestLogging logs each completed request with its latency and status.
// The resolved locale is included for page routes so language routing
// problems show up in the logs.
func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger == nil {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			fields := logrus.Fields{
				"method":    c.Request().Method,
				"path":      c.Request().URL.Path,
				"status":    c.Response().Status,
				"latency":   time.Since(start).String(),
				"remote_ip": c.RealIP(),
			}
			if loc, ok := c.Get(localeContextKey).(locale.Locale); ok {
				fields["locale"] = string(loc)
			}

			entry := m.logger.WithFields(fields)
			if err != nil {
				entry.WithError(err).Warn("request failed")
			} else {
				entry.Debug("request completed")
			}
			return err
		}
	}
}
