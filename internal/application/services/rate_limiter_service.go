package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/configs"
	"github.com/quillblog/quill/internal/core/ports"
)

// Bucket keys. The comment bucket additionally embeds the caller address so
// limits apply per address, not globally.
const (
	bucketGeneration  = "generation-api"
	bucketVideoLookup = "video-api"
	bucketUpload      = "blob-upload"
	bucketComment     = "comment"
)

// RateLimiterService enforces the per-bucket request budgets for external
// providers and comment submission.
type RateLimiterService struct {
	store  ports.RateLimitStore
	cfg    configs.RateLimitConfig
	logger *logrus.Logger
}

func NewRateLimiterService(store ports.RateLimitStore, cfg *configs.RateLimitConfig, logger *logrus.Logger) *RateLimiterService {
	// Apply defaults matching the providers' free-tier budgets
	c := configs.RateLimitConfig{
		Generation:  configs.BucketConfig{Interval: time.Hour, MaxRequests: 60},
		VideoLookup: configs.BucketConfig{Interval: 24 * time.Hour, MaxRequests: 100},
		Upload:      configs.BucketConfig{Interval: time.Hour, MaxRequests: 100},
		Comment:     configs.BucketConfig{Interval: time.Minute, MaxRequests: 5},
	}
	if cfg != nil {
		if cfg.Generation.Interval > 0 && cfg.Generation.MaxRequests > 0 {
			c.Generation = cfg.Generation
		}
		if cfg.VideoLookup.Interval > 0 && cfg.VideoLookup.MaxRequests > 0 {
			c.VideoLookup = cfg.VideoLookup
		}
		if cfg.Upload.Interval > 0 && cfg.Upload.MaxRequests > 0 {
			c.Upload = cfg.Upload
		}
		if cfg.Comment.Interval > 0 && cfg.Comment.MaxRequests > 0 {
			c.Comment = cfg.Comment
		}
	}
	return &RateLimiterService{store: store, cfg: c, logger: logger}
}

func (s *RateLimiterService) check(key string, b configs.BucketConfig) ports.RateLimitResult {
	res := s.store.Check(key, b.Interval, b.MaxRequests)
	if !res.Allowed && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"bucket": key, "reset_at": res.ResetAt}).Warn("rate limit exceeded")
	}
	return res
}

// AllowGeneration checks the text-generation provider budget.
func (s *RateLimiterService) AllowGeneration() ports.RateLimitResult {
	return s.check(bucketGeneration, s.cfg.Generation)
}

// AllowVideoLookup checks the video-metadata provider budget.
func (s *RateLimiterService) AllowVideoLookup() ports.RateLimitResult {
	return s.check(bucketVideoLookup, s.cfg.VideoLookup)
}

// AllowUpload checks the blob-upload budget.
func (s *RateLimiterService) AllowUpload() ports.RateLimitResult {
	return s.check(bucketUpload, s.cfg.Upload)
}

// AllowComment checks the per-address comment bucket.
func (s *RateLimiterService) AllowComment(ip string) ports.RateLimitResult {
	return s.check(fmt.Sprintf("%s-%s", bucketComment, ip), s.cfg.Comment)
}
