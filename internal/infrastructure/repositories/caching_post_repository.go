package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

const popularCacheTTL = 5 * time.Minute

// CachingPostRepository decorates a post repository with a short-lived cache
// for the popular listing, which is the one hot read path. Cache failures are
// logged and treated as misses so the underlying repository always wins.
type CachingPostRepository struct {
	ports.PostRepository

	cache  ports.Cache
	logger *logrus.Logger
}

// NewCachingPostRepository wraps a repository with popular-listing caching.
func NewCachingPostRepository(inner ports.PostRepository, cache ports.Cache, logger *logrus.Logger) ports.PostRepository {
	return &CachingPostRepository{
		PostRepository: inner,
		cache:          cache,
		logger:         logger,
	}
}

func popularCacheKey(since *time.Time, limit int) string {
	if since == nil {
		return fmt.Sprintf("popular:all:%d", limit)
	}
	return fmt.Sprintf("popular:%d:%d", since.Unix(), limit)
}

// ListPopular serves from cache when possible.
func (r *CachingPostRepository) ListPopular(ctx context.Context, since *time.Time, limit int) ([]*post.Post, error) {
	key := popularCacheKey(since, limit)

	if data, ok, err := r.cache.Get(ctx, key); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Warn("cache: popular read failed, falling through")
		}
	} else if ok {
		var posts []*post.Post
		if err := json.Unmarshal(data, &posts); err == nil {
			return posts, nil
		}
		// stale or corrupt entry, drop it
		_ = r.cache.Delete(ctx, key)
	}

	posts, err := r.PostRepository.ListPopular(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(posts); err == nil {
		if err := r.cache.Set(ctx, key, data, popularCacheTTL); err != nil && r.logger != nil {
			r.logger.WithError(err).Warn("cache: popular write failed")
		}
	}

	return posts, nil
}

// Writes fall through to the embedded repository. Popular entries expire on
// their own TTL rather than being invalidated per key, since view counts
// change on every read anyway.
