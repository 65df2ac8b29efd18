package services_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

type postRepoMock struct {
	createFn           func(ctx context.Context, p *post.Post) error
	getByIDFn          func(ctx context.Context, id uuid.UUID) (*post.Post, error)
	getBySlugFn        func(ctx context.Context, slug string) (*post.Post, error)
	getByVideoIDFn     func(ctx context.Context, videoID string) (*post.Post, error)
	listFn             func(ctx context.Context, f *ports.PostFilter) ([]*post.Post, error)
	countFn            func(ctx context.Context, f *ports.PostFilter) (int, error)
	updateFn           func(ctx context.Context, p *post.Post) error
	deleteFn           func(ctx context.Context, id uuid.UUID) error
	incrementViewsFn   func(ctx context.Context, id uuid.UUID) (int64, error)
	listPopularFn      func(ctx context.Context, since *time.Time, limit int) ([]*post.Post, error)
	listRelatedFn      func(ctx context.Context, tags []string, excludeID uuid.UUID, limit int) ([]*post.Post, error)
	slugExistsFn       func(ctx context.Context, slug string) (bool, error)
	listScheduledDueFn func(ctx context.Context, now time.Time) ([]*post.Post, error)
}

func (m *postRepoMock) Create(ctx context.Context, p *post.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *postRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *postRepoMock) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, ports.ErrNotFound
}

func (m *postRepoMock) GetByVideoID(ctx context.Context, videoID string) (*post.Post, error) {
	if m.getByVideoIDFn != nil {
		return m.getByVideoIDFn(ctx, videoID)
	}
	return nil, ports.ErrNotFound
}

func (m *postRepoMock) List(ctx context.Context, f *ports.PostFilter) ([]*post.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx, f)
	}
	return nil, nil
}

func (m *postRepoMock) Count(ctx context.Context, f *ports.PostFilter) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, f)
	}
	return 0, nil
}

func (m *postRepoMock) Update(ctx context.Context, p *post.Post) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *postRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *postRepoMock) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.incrementViewsFn != nil {
		return m.incrementViewsFn(ctx, id)
	}
	return 0, nil
}

func (m *postRepoMock) ListPopular(ctx context.Context, since *time.Time, limit int) ([]*post.Post, error) {
	if m.listPopularFn != nil {
		return m.listPopularFn(ctx, since, limit)
	}
	return nil, nil
}

func (m *postRepoMock) ListRelated(ctx context.Context, tags []string, excludeID uuid.UUID, limit int) ([]*post.Post, error) {
	if m.listRelatedFn != nil {
		return m.listRelatedFn(ctx, tags, excludeID, limit)
	}
	return nil, nil
}

func (m *postRepoMock) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.slugExistsFn != nil {
		return m.slugExistsFn(ctx, slug)
	}
	return false, nil
}

func (m *postRepoMock) ListScheduledDue(ctx context.Context, now time.Time) ([]*post.Post, error) {
	if m.listScheduledDueFn != nil {
		return m.listScheduledDueFn(ctx, now)
	}
	return nil, nil
}

type commentRepoMock struct {
	createFn     func(ctx context.Context, c *post.Comment) error
	listByPostFn func(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*post.Comment, error)
	countFn      func(ctx context.Context, postID uuid.UUID) (int, error)
}

func (m *commentRepoMock) Create(ctx context.Context, c *post.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *commentRepoMock) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*post.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID, limit, offset)
	}
	return nil, nil
}

func (m *commentRepoMock) Count(ctx context.Context, postID uuid.UUID) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, postID)
	}
	return 0, nil
}

type textGeneratorMock struct {
	generateFn func(ctx context.Context, prompt string) (*ports.GeneratedContent, error)
}

func (m *textGeneratorMock) GenerateContent(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, prompt)
	}
	return &ports.GeneratedContent{Title: "generated", Content: "body"}, nil
}

type videoProviderMock struct {
	getVideoFn func(ctx context.Context, id string) (*ports.VideoMetadata, error)
	listFn     func(ctx context.Context, maxResults int) ([]*ports.VideoMetadata, error)
}

func (m *videoProviderMock) GetVideo(ctx context.Context, id string) (*ports.VideoMetadata, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, id)
	}
	return &ports.VideoMetadata{ID: id, Title: "video", Description: "description"}, nil
}

func (m *videoProviderMock) ListChannelUploads(ctx context.Context, maxResults int) ([]*ports.VideoMetadata, error) {
	if m.listFn != nil {
		return m.listFn(ctx, maxResults)
	}
	return nil, nil
}

type rateLimiterMock struct {
	generationFn  func() ports.RateLimitResult
	videoLookupFn func() ports.RateLimitResult
	uploadFn      func() ports.RateLimitResult
	commentFn     func(ip string) ports.RateLimitResult
}

func allowAll() ports.RateLimitResult {
	return ports.RateLimitResult{Allowed: true, Remaining: 1, ResetAt: time.Now().Add(time.Minute)}
}

func (m *rateLimiterMock) AllowGeneration() ports.RateLimitResult {
	if m.generationFn != nil {
		return m.generationFn()
	}
	return allowAll()
}

func (m *rateLimiterMock) AllowVideoLookup() ports.RateLimitResult {
	if m.videoLookupFn != nil {
		return m.videoLookupFn()
	}
	return allowAll()
}

func (m *rateLimiterMock) AllowUpload() ports.RateLimitResult {
	if m.uploadFn != nil {
		return m.uploadFn()
	}
	return allowAll()
}

func (m *rateLimiterMock) AllowComment(ip string) ports.RateLimitResult {
	if m.commentFn != nil {
		return m.commentFn(ip)
	}
	return allowAll()
}
