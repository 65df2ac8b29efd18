package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/configs"
	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/ports"
)

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	AdminAuth *AdminAuthMiddleware
	CronAuth  *CronAuthMiddleware
	Locale    *LocaleMiddleware
	Logging   *LoggingMiddleware
	RateLimit *RateLimitMiddleware
	Metrics   *MetricsMiddleware
}

// NewMiddlewareCollection creates a new collection of all middleware
func NewMiddlewareCollection(
	adminCfg *configs.AdminConfig,
	cronCfg *configs.CronConfig,
	defaultLocale locale.Locale,
	rateLimiterService ports.RateLimiterService,
	logger *logrus.Logger,
	requestsTotal *prometheus.CounterVec,
	requestDuration *prometheus.HistogramVec,
) *MiddlewareCollection {
	return &MiddlewareCollection{
		AdminAuth: NewAdminAuthMiddleware(adminCfg, logger),
		CronAuth:  NewCronAuthMiddleware(cronCfg.Secret, logger),
		Locale:    NewLocaleMiddleware(defaultLocale, logger),
		Logging:   NewLoggingMiddleware(logger),
		RateLimit: NewRateLimitMiddleware(rateLimiterService, logger),
		Metrics:   NewMetricsMiddleware(requestsTotal, requestDuration),
	}
}
