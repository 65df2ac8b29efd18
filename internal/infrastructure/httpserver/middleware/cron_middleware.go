package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// CronAuthMiddleware gates scheduled-trigger endpoints behind a shared
// bearer secret. An unset secret rejects everything rather than letting
// misconfiguration open the endpoints.
type CronAuthMiddleware struct {
	secret string
	logger *logrus.Logger
}

func NewCronAuthMiddleware(secret string, logger *logrus.Logger) *CronAuthMiddleware {
	return &CronAuthMiddleware{secret: secret, logger: logger}
}

// RequireCronSecret validates the Authorization bearer token.
func (m *CronAuthMiddleware) RequireCronSecret() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.secret == "" {
				if m.logger != nil {
					m.logger.WithField("path", c.Request().URL.Path).Error("cron secret is not configured, rejecting trigger")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "cron trigger not configured")
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(m.secret)) != 1 {
				if m.logger != nil {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Warn("cron auth rejected")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid cron secret")
			}
			return next(c)
		}
	}
}
