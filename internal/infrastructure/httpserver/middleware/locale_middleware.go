package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/internal/core/domain/locale"
)

// localeContextKey is where the resolved locale is stored on the request.
const localeContextKey = "locale"

// localeCookieName is the visitor's sticky language choice.
const localeCookieName = "locale"

// localeExemptPrefixes are served as-is, without locale redirection.
var localeExemptPrefixes = []string{
	"/api",
	"/admin",
	"/healthz",
	"/metrics",
	"/static",
	"/assets",
	"/favicon.ico",
	"/robots.txt",
	"/.well-known",
}

// LocaleMiddleware routes page requests under a locale prefix. Requests
// without a prefix are redirected to the visitor's remembered locale, or the
// site default. Trailing slashes are stripped first so each page has one
// canonical URL.
type LocaleMiddleware struct {
	defaultLocale locale.Locale
	logger        *logrus.Logger
}

func NewLocaleMiddleware(defaultLocale locale.Locale, logger *logrus.Logger) *LocaleMiddleware {
	if !locale.IsValid(string(defaultLocale)) {
		defaultLocale = locale.Default
	}
	return &LocaleMiddleware{defaultLocale: defaultLocale, logger: logger}
}

// Handler resolves the request locale and redirects when needed. Routing is
// fail-open: an unexpected panic while evaluating the request is logged and
// the request passes through untouched. Panics from downstream handlers are
// re-raised for the recover middleware.
func (m *LocaleMiddleware) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			entered := false
			defer func() {
				if r := recover(); r != nil {
					if entered {
						panic(r)
					}
					if m.logger != nil {
						m.logger.WithField("panic", r).Error("locale routing failed; passing request through")
					}
					err = next(c)
				}
			}()

			path := c.Request().URL.Path

			// Canonicalize away trailing slashes, keeping the query string.
			if len(path) > 1 && strings.HasSuffix(path, "/") {
				target := strings.TrimRight(path, "/")
				if target == "" {
					target = "/"
				}
				if q := c.Request().URL.RawQuery; q != "" {
					target += "?" + q
				}
				return c.Redirect(http.StatusMovedPermanently, target)
			}

			for _, prefix := range localeExemptPrefixes {
				if path == prefix || strings.HasPrefix(path, prefix+"/") {
					entered = true
					return next(c)
				}
			}

			if loc, ok := localeFromPath(path); ok {
				c.Set(localeContextKey, loc)
				entered = true
				return next(c)
			}

			loc := m.preferredLocale(c)
			target := "/" + string(loc) + path
			if q := c.Request().URL.RawQuery; q != "" {
				target += "?" + q
			}
			return c.Redirect(http.StatusTemporaryRedirect, target)
		}
	}
}

// localeFromPath reports whether the first path segment is a supported locale.
func localeFromPath(path string) (locale.Locale, bool) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, _, _ := strings.Cut(trimmed, "/")
	if !locale.IsValid(seg) {
		return "", false
	}
	return locale.Locale(seg), true
}

// preferredLocale reads the visitor's cookie, falling back to the default.
// A bad cookie never fails the request.
func (m *LocaleMiddleware) preferredLocale(c echo.Context) locale.Locale {
	cookie, err := c.Cookie(localeCookieName)
	if err != nil || cookie == nil || !locale.IsValid(cookie.Value) {
		return m.defaultLocale
	}
	return locale.Locale(cookie.Value)
}

// GetLocale returns the locale resolved for this request.
func GetLocale(c echo.Context) locale.Locale {
	if loc, ok := c.Get(localeContextKey).(locale.Locale); ok {
		return loc
	}
	return locale.Default
}
