package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	impl "github.com/quillblog/quill/internal/application/services"
	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

func newGenerationService(gen *textGeneratorMock, videos *videoProviderMock, repo *postRepoMock, limiter *rateLimiterMock) *impl.GenerationService {
	if repo == nil {
		repo = &postRepoMock{}
	}
	if limiter == nil {
		limiter = &rateLimiterMock{}
	}
	posts := impl.NewPostService(repo, &commentRepoMock{}, "Quill", nil)
	return impl.NewGenerationService(gen, videos, posts, repo, limiter, nil)
}

func TestGenerate_PersistsNormalizedPost(t *testing.T) {
	var stored *post.Post
	repo := &postRepoMock{createFn: func(ctx context.Context, p *post.Post) error {
		stored = p
		return nil
	}}
	gen := &textGeneratorMock{generateFn: func(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
		return &ports.GeneratedContent{
			Title:   "Generated title",
			Content: "Generated body",
			Excerpt: "Short summary",
			Tags:    []string{"go", "testing"},
		}, nil
	}}
	svc := newGenerationService(gen, nil, repo, nil)

	created, err := svc.Generate(context.Background(), &ports.GenerateRequest{Prompt: "write about testing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored == nil {
		t.Fatal("post was not persisted")
	}
	if created.Title != "Generated title" {
		t.Fatalf("unexpected title %q", created.Title)
	}
	if created.SEOTitle != "Generated title" {
		t.Fatal("seo title should fall back to the title")
	}
	if created.Status != post.StatusDraft {
		t.Fatalf("expected draft without publish time, got %s", created.Status)
	}
}

func TestGenerate_RateLimitedPersistsNothing(t *testing.T) {
	resetAt := time.Now().Add(30 * time.Minute)
	limiter := &rateLimiterMock{generationFn: func() ports.RateLimitResult {
		return ports.RateLimitResult{Allowed: false, ResetAt: resetAt}
	}}
	repo := &postRepoMock{createFn: func(ctx context.Context, p *post.Post) error {
		t.Fatal("nothing may be persisted on a rate-limit rejection")
		return nil
	}}
	gen := &textGeneratorMock{generateFn: func(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
		t.Fatal("provider must not be called when rate limited")
		return nil, nil
	}}
	svc := newGenerationService(gen, nil, repo, limiter)

	_, err := svc.Generate(context.Background(), &ports.GenerateRequest{Prompt: "p"})
	ge, ok := ports.AsGenerationError(err)
	if !ok || ge.Kind != ports.GenerationRateLimited {
		t.Fatalf("expected rate_limited error, got %v", err)
	}
	if ge.RetryAfter <= 0 || ge.RetryAfter > 30*time.Minute {
		t.Fatalf("retry after out of range: %v", ge.RetryAfter)
	}
}

func TestGenerate_TimeoutTagged(t *testing.T) {
	gen := &textGeneratorMock{generateFn: func(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
		return nil, context.DeadlineExceeded
	}}
	svc := newGenerationService(gen, nil, nil, nil)

	_, err := svc.Generate(context.Background(), &ports.GenerateRequest{Prompt: "p"})
	ge, ok := ports.AsGenerationError(err)
	if !ok || ge.Kind != ports.GenerationTimeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestGenerate_ProviderErrorTaggedMalformed(t *testing.T) {
	gen := &textGeneratorMock{generateFn: func(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
		return nil, errors.New("bad payload")
	}}
	svc := newGenerationService(gen, nil, nil, nil)

	_, err := svc.Generate(context.Background(), &ports.GenerateRequest{Prompt: "p"})
	ge, ok := ports.AsGenerationError(err)
	if !ok || ge.Kind != ports.GenerationMalformed {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestGenerate_TitleFallsBackToPrompt(t *testing.T) {
	gen := &textGeneratorMock{generateFn: func(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
		return &ports.GeneratedContent{Content: "body only"}, nil
	}}
	svc := newGenerationService(gen, nil, nil, nil)

	created, err := svc.Generate(context.Background(), &ports.GenerateRequest{Prompt: "A short prompt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Title != "A short prompt" {
		t.Fatalf("expected title from prompt, got %q", created.Title)
	}
}

func TestGenerate_EmptyPromptRejected(t *testing.T) {
	svc := newGenerationService(&textGeneratorMock{}, nil, nil, nil)

	_, err := svc.Generate(context.Background(), &ports.GenerateRequest{Prompt: "   "})
	ge, ok := ports.AsGenerationError(err)
	if !ok || ge.Kind != ports.GenerationEmpty {
		t.Fatalf("expected empty error, got %v", err)
	}
}

func TestConvertVideo_DuplicateRejected(t *testing.T) {
	repo := &postRepoMock{getByVideoIDFn: func(ctx context.Context, videoID string) (*post.Post, error) {
		return &post.Post{Slug: "existing"}, nil
	}}
	svc := newGenerationService(&textGeneratorMock{}, &videoProviderMock{}, repo, nil)

	_, err := svc.ConvertVideo(context.Background(), "abc123", nil)
	ge, ok := ports.AsGenerationError(err)
	if !ok || ge.Kind != ports.GenerationDuplicate {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestConvertVideo_EmptyDescriptionRejected(t *testing.T) {
	videos := &videoProviderMock{getVideoFn: func(ctx context.Context, id string) (*ports.VideoMetadata, error) {
		return &ports.VideoMetadata{ID: id, Title: "t", Description: "   "}, nil
	}}
	svc := newGenerationService(&textGeneratorMock{}, videos, nil, nil)

	_, err := svc.ConvertVideo(context.Background(), "abc123", nil)
	ge, ok := ports.AsGenerationError(err)
	if !ok || ge.Kind != ports.GenerationEmpty {
		t.Fatalf("expected empty error, got %v", err)
	}
}

func TestConvertVideo_UsesVideoBucket(t *testing.T) {
	videoChecked := false
	limiter := &rateLimiterMock{videoLookupFn: func() ports.RateLimitResult {
		videoChecked = true
		return allowAll()
	}}
	repo := &postRepoMock{}
	svc := newGenerationService(&textGeneratorMock{}, &videoProviderMock{}, repo, limiter)

	if _, err := svc.ConvertVideo(context.Background(), "abc123", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !videoChecked {
		t.Fatal("video lookup bucket was not consulted")
	}
}

func TestGenerateBatch_IndependentOutcomes(t *testing.T) {
	gen := &textGeneratorMock{generateFn: func(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
		if strings.Contains(prompt, "fail") {
			return nil, errors.New("provider exploded")
		}
		return &ports.GeneratedContent{Title: "ok", Content: "body"}, nil
	}}
	svc := newGenerationService(gen, nil, nil, nil)

	result := svc.GenerateBatch(context.Background(), []ports.GenerateRequest{
		{Prompt: "first"},
		{Prompt: "please fail"},
		{Prompt: "third"},
	}, ports.BatchOptions{})

	if result.Succeeded != 2 || result.Failed != 1 {
		t.Fatalf("succeeded=%d failed=%d, want 2/1", result.Succeeded, result.Failed)
	}
	if len(result.Errors) != 1 || result.Errors[0].Prompt != "please fail" {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
}

func TestGenerateBatch_DryRunCallsProviderButPersistsNothing(t *testing.T) {
	providerCalls := 0
	gen := &textGeneratorMock{generateFn: func(ctx context.Context, prompt string) (*ports.GeneratedContent, error) {
		providerCalls++
		return &ports.GeneratedContent{Title: "ok", Content: "body"}, nil
	}}
	repo := &postRepoMock{createFn: func(ctx context.Context, p *post.Post) error {
		t.Fatal("dry run must not persist")
		return nil
	}}
	svc := newGenerationService(gen, nil, repo, nil)

	result := svc.GenerateBatch(context.Background(), []ports.GenerateRequest{
		{Prompt: "one"},
		{Prompt: "two"},
	}, ports.BatchOptions{DryRun: true})

	if !result.DryRun {
		t.Fatal("result should be flagged as dry run")
	}
	if result.Succeeded != 2 || providerCalls != 2 {
		t.Fatalf("succeeded=%d providerCalls=%d, want 2/2", result.Succeeded, providerCalls)
	}
}

func TestSyncChannelVideos_SkipsExisting(t *testing.T) {
	videos := &videoProviderMock{listFn: func(ctx context.Context, maxResults int) ([]*ports.VideoMetadata, error) {
		return []*ports.VideoMetadata{
			{ID: "old", Title: "already posted", Description: "d"},
			{ID: "new", Title: "fresh upload", Description: "d"},
		}, nil
	}}
	repo := &postRepoMock{getByVideoIDFn: func(ctx context.Context, videoID string) (*post.Post, error) {
		if videoID == "old" {
			return &post.Post{Slug: "already"}, nil
		}
		return nil, ports.ErrNotFound
	}}
	svc := newGenerationService(&textGeneratorMock{}, videos, repo, nil)

	result, err := svc.SyncChannelVideos(context.Background(), 5, ports.BatchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Succeeded != 1 || result.Failed != 0 {
		t.Fatalf("succeeded=%d failed=%d, want 1/0", result.Succeeded, result.Failed)
	}
}
