package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/quillblog/quill/configs"
	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

type generationServiceStub struct {
	generateFn      func(ctx context.Context, req *ports.GenerateRequest) (*post.Post, error)
	convertVideoFn  func(ctx context.Context, videoID string, publishAt *time.Time) (*post.Post, error)
	generateBatchFn func(ctx context.Context, items []ports.GenerateRequest, opts ports.BatchOptions) *ports.BatchResult
	syncFn          func(ctx context.Context, maxVideos int, opts ports.BatchOptions) (*ports.BatchResult, error)
}

func (s *generationServiceStub) Generate(ctx context.Context, req *ports.GenerateRequest) (*post.Post, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, req)
	}
	return &post.Post{}, nil
}

func (s *generationServiceStub) ConvertVideo(ctx context.Context, videoID string, publishAt *time.Time) (*post.Post, error) {
	if s.convertVideoFn != nil {
		return s.convertVideoFn(ctx, videoID, publishAt)
	}
	return &post.Post{}, nil
}

func (s *generationServiceStub) GenerateBatch(ctx context.Context, items []ports.GenerateRequest, opts ports.BatchOptions) *ports.BatchResult {
	if s.generateBatchFn != nil {
		return s.generateBatchFn(ctx, items, opts)
	}
	return &ports.BatchResult{}
}

func (s *generationServiceStub) SyncChannelVideos(ctx context.Context, maxVideos int, opts ports.BatchOptions) (*ports.BatchResult, error) {
	if s.syncFn != nil {
		return s.syncFn(ctx, maxVideos, opts)
	}
	return &ports.BatchResult{}, nil
}

func newRoutingTestServer(deps ServerDeps) *Server {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewServer(
		&ServerConfig{},
		&configs.AdminConfig{Username: "admin", Password: "hunter2"},
		&configs.CronConfig{},
		locale.English,
		logger,
		deps,
	)
}

func TestAdminRoutes_RejectMissingCredentials(t *testing.T) {
	s := newRoutingTestServer(ServerDeps{})

	targets := []string{
		"/admin",
		"/admin/posts",
		"/admin/anything-at-all",
		"/api/admin/posts",
		"/api/admin/reclassify-languages",
	}
	for _, target := range targets {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		s.Echo().ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "target %s", target)
		require.Equal(t, `Basic realm="Admin Area"`, rec.Header().Get(echo.HeaderWWWAuthenticate), "target %s", target)
	}
}

func TestAdminRoutes_UnknownPathStillGated(t *testing.T) {
	s := newRoutingTestServer(ServerDeps{})

	// Without credentials the gate answers before the router's 404.
	req := httptest.NewRequest(http.MethodGet, "/admin/nope", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// With credentials the unknown path is a plain 404.
	req = httptest.NewRequest(http.MethodGet, "/admin/nope", nil)
	req.SetBasicAuth("admin", "hunter2")
	rec = httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRoutes_NotCapturedByLocalePages(t *testing.T) {
	// /admin/posts must resolve to the gated admin route, never to the
	// public /:locale/posts page handler with locale "admin".
	s := newRoutingTestServer(ServerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/admin/posts", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotEmpty(t, rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestPageRoutes_RejectNonLocalePrefix(t *testing.T) {
	s := newRoutingTestServer(ServerDeps{})

	req := httptest.NewRequest(http.MethodGet, "/static/posts", nil)
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminGenerateBatch_SpacesProviderCalls(t *testing.T) {
	var gotOpts ports.BatchOptions
	var gotItems int
	gen := &generationServiceStub{
		generateBatchFn: func(ctx context.Context, items []ports.GenerateRequest, opts ports.BatchOptions) *ports.BatchResult {
			gotItems = len(items)
			gotOpts = opts
			return &ports.BatchResult{Succeeded: len(items), DryRun: opts.DryRun}
		},
	}
	s := newRoutingTestServer(ServerDeps{GenerationService: gen})

	body := `{"items":[{"prompt":"a"},{"prompt":"b"}],"dry_run":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate/batch", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.SetBasicAuth("admin", "hunter2")
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 2, gotItems)
	require.Equal(t, batchCallDelay, gotOpts.Delay)
	require.True(t, gotOpts.DryRun)
}
