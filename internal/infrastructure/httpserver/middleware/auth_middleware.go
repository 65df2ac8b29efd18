package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillblog/quill/configs"
)

const adminRealm = `Basic realm="Admin Area"`

// AdminAuthMiddleware gates the admin API behind HTTP Basic credentials.
type AdminAuthMiddleware struct {
	username string
	password string
	logger   *logrus.Logger
}

func NewAdminAuthMiddleware(cfg *configs.AdminConfig, logger *logrus.Logger) *AdminAuthMiddleware {
	return &AdminAuthMiddleware{username: cfg.Username, password: cfg.Password, logger: logger}
}

// RequireAdmin validates Basic credentials. Every rejection carries the
// WWW-Authenticate challenge so browsers prompt for credentials.
func (m *AdminAuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, password, ok := c.Request().BasicAuth()
			if !ok || !m.credentialsValid(username, password) {
				if m.logger != nil && ok {
					m.logger.WithFields(logrus.Fields{"ip": c.RealIP(), "path": c.Request().URL.Path}).Warn("admin auth rejected")
				}
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, adminRealm)
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

func (m *AdminAuthMiddleware) credentialsValid(username, password string) bool {
	if m.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(m.username)) == 1

	// The configured password may be a bcrypt hash; compare accordingly.
	var passOK bool
	if strings.HasPrefix(m.password, "$2a$") || strings.HasPrefix(m.password, "$2b$") || strings.HasPrefix(m.password, "$2y$") {
		passOK = bcrypt.CompareHashAndPassword([]byte(m.password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) == 1
	}

	return userOK && passOK
}
