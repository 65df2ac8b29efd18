package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

const maxGeneratedTitleLength = 60

// GenerationService orchestrates the external text and video providers behind
// the rate limiter. Nothing is persisted unless the provider call fully
// succeeds and yields a usable title.
type GenerationService struct {
	generator ports.TextGenerator
	videos    ports.VideoProvider
	posts     ports.PostService
	repo      ports.PostRepository
	limiter   ports.RateLimiterService
	logger    *logrus.Logger
}

func NewGenerationService(
	generator ports.TextGenerator,
	videos ports.VideoProvider,
	posts ports.PostService,
	repo ports.PostRepository,
	limiter ports.RateLimiterService,
	logger *logrus.Logger,
) *GenerationService {
	return &GenerationService{
		generator: generator,
		videos:    videos,
		posts:     posts,
		repo:      repo,
		limiter:   limiter,
		logger:    logger,
	}
}

// Generate runs one generation job and persists the normalized post. A
// rate-limit rejection carries the retry-after duration; provider failures
// come back as tagged generation errors with nothing written.
func (s *GenerationService) Generate(ctx context.Context, req *ports.GenerateRequest) (*post.Post, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ports.NewGenerationError(ports.GenerationEmpty, errors.New("prompt is required"))
	}
	if s.generator == nil {
		return nil, fmt.Errorf("text generation provider is not configured")
	}

	if res := s.limiter.AllowGeneration(); !res.Allowed {
		return nil, ports.NewRateLimitedError(res.RetryAfter(time.Now()))
	}

	generated, err := s.generator.GenerateContent(ctx, buildGenerationPrompt(req.Prompt, req.Keywords))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ports.NewGenerationError(ports.GenerationTimeout, err)
		}
		if _, ok := ports.AsGenerationError(err); ok {
			return nil, err
		}
		return nil, ports.NewGenerationError(ports.GenerationMalformed, err)
	}

	title := strings.TrimSpace(generated.Title)
	if title == "" {
		title = titleFromPrompt(req.Prompt)
	}
	if title == "" {
		return nil, ports.NewGenerationError(ports.GenerationEmpty, errors.New("provider returned no title"))
	}

	tags := generated.Tags
	if len(tags) == 0 {
		tags = req.Keywords
	}

	created, err := s.posts.CreatePost(ctx, &post.CreatePostRequest{
		Title:          title,
		Content:        generated.Content,
		Excerpt:        generated.Excerpt,
		CoverImage:     generated.CoverImage,
		Tags:           tags,
		SEOTitle:       firstNonEmpty(generated.SEOTitle, title),
		SEODescription: firstNonEmpty(generated.SEODescription, generated.Excerpt),
		PublishedAt:    req.PublishAt,
		ScheduledAt:    req.ScheduleAt,
		VideoID:        req.VideoID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist generated post: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"post_id": created.ID, "slug": created.Slug, "status": created.Status}).Info("generated post stored")
	}
	return created, nil
}

// ConvertVideo turns one video into a post: resolve metadata through its own
// rate-limit bucket, then generate from the transcript.
func (s *GenerationService) ConvertVideo(ctx context.Context, videoID string, publishAt *time.Time) (*post.Post, error) {
	if videoID == "" {
		return nil, ports.NewGenerationError(ports.GenerationEmpty, errors.New("video id is required"))
	}
	if s.videos == nil {
		return nil, fmt.Errorf("video metadata provider is not configured")
	}

	if existing, err := s.repo.GetByVideoID(ctx, videoID); err == nil && existing != nil {
		return nil, ports.NewGenerationError(ports.GenerationDuplicate,
			fmt.Errorf("video %s already converted to post %s", videoID, existing.Slug))
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing video post: %w", err)
	}

	if res := s.limiter.AllowVideoLookup(); !res.Allowed {
		return nil, ports.NewRateLimitedError(res.RetryAfter(time.Now()))
	}

	meta, err := s.videos.GetVideo(ctx, videoID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ports.NewGenerationError(ports.GenerationTimeout, err)
		}
		return nil, ports.NewGenerationError(ports.GenerationMalformed, fmt.Errorf("failed to fetch video metadata: %w", err))
	}
	transcript := strings.TrimSpace(meta.Description)
	if transcript == "" {
		return nil, ports.NewGenerationError(ports.GenerationEmpty, fmt.Errorf("video %s has no usable transcript", videoID))
	}

	return s.Generate(ctx, &ports.GenerateRequest{
		Prompt:    buildVideoPrompt(meta.Title, meta.ChannelTitle, transcript),
		VideoID:   videoID,
		PublishAt: publishAt,
	})
}

// GenerateBatch runs jobs independently: every item gets its own outcome, a
// failure never aborts the rest, and consecutive provider calls are separated
// by the configured delay. Dry runs exercise the provider but persist nothing.
func (s *GenerationService) GenerateBatch(ctx context.Context, items []ports.GenerateRequest, opts ports.BatchOptions) *ports.BatchResult {
	result := &ports.BatchResult{DryRun: opts.DryRun}
	for i := range items {
		if i > 0 && opts.Delay > 0 {
			if err := sleepCtx(ctx, opts.Delay); err != nil {
				result.Failed += len(items) - i
				result.Errors = append(result.Errors, ports.BatchItemError{Error: err.Error()})
				return result
			}
		}
		item := items[i]
		if opts.DryRun {
			if err := s.dryRunItem(ctx, &item); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, ports.BatchItemError{Prompt: item.Prompt, Error: err.Error()})
			} else {
				result.Succeeded++
			}
			continue
		}
		if _, err := s.Generate(ctx, &item); err != nil {
			if s.logger != nil {
				s.logger.WithError(err).WithField("prompt", sample(item.Prompt, 70)).Warn("batch item failed")
			}
			result.Failed++
			result.Errors = append(result.Errors, ports.BatchItemError{Prompt: item.Prompt, Error: err.Error()})
			continue
		}
		result.Succeeded++
	}
	return result
}

// SyncChannelVideos converts the channel's latest uploads that have not been
// posted yet. The listing itself counts against the video bucket.
func (s *GenerationService) SyncChannelVideos(ctx context.Context, maxVideos int, opts ports.BatchOptions) (*ports.BatchResult, error) {
	if s.videos == nil {
		return nil, fmt.Errorf("video metadata provider is not configured")
	}
	if res := s.limiter.AllowVideoLookup(); !res.Allowed {
		return nil, ports.NewRateLimitedError(res.RetryAfter(time.Now()))
	}
	videos, err := s.videos.ListChannelUploads(ctx, maxVideos)
	if err != nil {
		return nil, fmt.Errorf("failed to list channel uploads: %w", err)
	}

	result := &ports.BatchResult{DryRun: opts.DryRun}
	first := true
	for _, v := range videos {
		if existing, err := s.repo.GetByVideoID(ctx, v.ID); err == nil && existing != nil {
			continue
		} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
			result.Failed++
			result.Errors = append(result.Errors, ports.BatchItemError{VideoID: v.ID, Error: err.Error()})
			continue
		}
		if !first && opts.Delay > 0 {
			if err := sleepCtx(ctx, opts.Delay); err != nil {
				result.Errors = append(result.Errors, ports.BatchItemError{Error: err.Error()})
				return result, nil
			}
		}
		first = false
		if opts.DryRun {
			result.Succeeded++
			continue
		}
		if _, err := s.ConvertVideo(ctx, v.ID, nil); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ports.BatchItemError{VideoID: v.ID, Error: err.Error()})
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

// dryRunItem exercises the provider path without persisting anything.
func (s *GenerationService) dryRunItem(ctx context.Context, req *ports.GenerateRequest) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return errors.New("prompt is required")
	}
	if s.generator == nil {
		return errors.New("text generation provider is not configured")
	}
	if res := s.limiter.AllowGeneration(); !res.Allowed {
		return ports.NewRateLimitedError(res.RetryAfter(time.Now()))
	}
	generated, err := s.generator.GenerateContent(ctx, buildGenerationPrompt(req.Prompt, req.Keywords))
	if err != nil {
		return err
	}
	if strings.TrimSpace(generated.Title) == "" && titleFromPrompt(req.Prompt) == "" {
		return errors.New("provider returned no title")
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"title":          firstNonEmpty(generated.Title, titleFromPrompt(req.Prompt)),
			"content_length": len(generated.Content),
		}).Info("dry run: post not stored")
	}
	return nil
}

func titleFromPrompt(prompt string) string {
	runes := []rune(strings.TrimSpace(prompt))
	if len(runes) > maxGeneratedTitleLength {
		runes = runes[:maxGeneratedTitleLength]
	}
	return strings.TrimSpace(string(runes))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
