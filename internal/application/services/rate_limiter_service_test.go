package services_test

import (
	"testing"
	"time"

	"github.com/quillblog/quill/configs"
	impl "github.com/quillblog/quill/internal/application/services"
	"github.com/quillblog/quill/internal/core/ports"
)

type recordingStore struct {
	key      string
	interval time.Duration
	max      int
	result   ports.RateLimitResult
}

func (s *recordingStore) Check(key string, interval time.Duration, maxRequests int) ports.RateLimitResult {
	s.key = key
	s.interval = interval
	s.max = maxRequests
	return s.result
}

func TestRateLimiterService_BucketConfiguration(t *testing.T) {
	store := &recordingStore{result: ports.RateLimitResult{Allowed: true}}
	cfg := &configs.RateLimitConfig{
		Generation:  configs.BucketConfig{Interval: time.Hour, MaxRequests: 60},
		VideoLookup: configs.BucketConfig{Interval: 24 * time.Hour, MaxRequests: 100},
		Upload:      configs.BucketConfig{Interval: time.Hour, MaxRequests: 100},
		Comment:     configs.BucketConfig{Interval: time.Minute, MaxRequests: 5},
	}
	svc := impl.NewRateLimiterService(store, cfg, nil)

	svc.AllowGeneration()
	if store.key != "generation-api" || store.interval != time.Hour || store.max != 60 {
		t.Fatalf("generation bucket wrong: %s %v %d", store.key, store.interval, store.max)
	}

	svc.AllowVideoLookup()
	if store.key != "video-api" || store.interval != 24*time.Hour || store.max != 100 {
		t.Fatalf("video bucket wrong: %s %v %d", store.key, store.interval, store.max)
	}

	svc.AllowUpload()
	if store.key != "blob-upload" || store.interval != time.Hour || store.max != 100 {
		t.Fatalf("upload bucket wrong: %s %v %d", store.key, store.interval, store.max)
	}
}

func TestRateLimiterService_CommentKeyedPerAddress(t *testing.T) {
	store := &recordingStore{result: ports.RateLimitResult{Allowed: true}}
	svc := impl.NewRateLimiterService(store, nil, nil)

	svc.AllowComment("10.0.0.1")
	if store.key != "comment-10.0.0.1" {
		t.Fatalf("comment key = %q", store.key)
	}
	if store.interval != time.Minute || store.max != 5 {
		t.Fatalf("comment defaults wrong: %v %d", store.interval, store.max)
	}

	svc.AllowComment("10.0.0.2")
	if store.key != "comment-10.0.0.2" {
		t.Fatalf("comment key = %q", store.key)
	}
}

func TestRateLimiterService_ZeroConfigGetsDefaults(t *testing.T) {
	store := &recordingStore{result: ports.RateLimitResult{Allowed: true}}
	svc := impl.NewRateLimiterService(store, &configs.RateLimitConfig{}, nil)

	svc.AllowGeneration()
	if store.interval != time.Hour || store.max != 60 {
		t.Fatalf("expected free-tier defaults, got %v %d", store.interval, store.max)
	}
}
