package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quillblog/quill/configs"
	"github.com/quillblog/quill/internal/infrastructure/httpserver/middleware"
)

func runAdminAuth(t *testing.T, cfg *configs.AdminConfig, setAuth func(*http.Request)) (error, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	m := middleware.NewAdminAuthMiddleware(cfg, nil)
	handler := m.RequireAdmin()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
	if setAuth != nil {
		setAuth(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return handler(c), rec
}

func TestAdminAuth_MissingCredentials(t *testing.T) {
	cfg := &configs.AdminConfig{Username: "admin", Password: "secret"}
	err, rec := runAdminAuth(t, cfg, nil)

	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, htErr.Code)
	require.Equal(t, `Basic realm="Admin Area"`, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAdminAuth_WrongPassword(t *testing.T) {
	cfg := &configs.AdminConfig{Username: "admin", Password: "secret"}
	err, rec := runAdminAuth(t, cfg, func(r *http.Request) { r.SetBasicAuth("admin", "wrong") })

	require.Error(t, err)
	htErr := err.(*echo.HTTPError)
	require.Equal(t, http.StatusUnauthorized, htErr.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAdminAuth_WrongUsername(t *testing.T) {
	cfg := &configs.AdminConfig{Username: "admin", Password: "secret"}
	err, _ := runAdminAuth(t, cfg, func(r *http.Request) { r.SetBasicAuth("root", "secret") })

	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
}

func TestAdminAuth_ValidCredentials(t *testing.T) {
	cfg := &configs.AdminConfig{Username: "admin", Password: "secret"}
	err, _ := runAdminAuth(t, cfg, func(r *http.Request) { r.SetBasicAuth("admin", "secret") })

	require.NoError(t, err)
}

func TestAdminAuth_BcryptHashPassword(t *testing.T) {
	hash, hashErr := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, hashErr)
	cfg := &configs.AdminConfig{Username: "admin", Password: string(hash)}

	err, _ := runAdminAuth(t, cfg, func(r *http.Request) { r.SetBasicAuth("admin", "secret") })
	require.NoError(t, err)

	err, _ = runAdminAuth(t, cfg, func(r *http.Request) { r.SetBasicAuth("admin", "wrong") })
	require.Error(t, err)
}

func TestAdminAuth_EmptyConfiguredPasswordRejectsAll(t *testing.T) {
	cfg := &configs.AdminConfig{Username: "admin", Password: ""}
	err, _ := runAdminAuth(t, cfg, func(r *http.Request) { r.SetBasicAuth("admin", "") })

	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, err.(*echo.HTTPError).Code)
}
