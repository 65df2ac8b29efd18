package ports

import (
	"context"
	"time"

	"github.com/quillblog/quill/internal/core/domain/post"
)

// GenerateRequest describes one content-generation job. Exactly one of
// PublishAt / ScheduleAt may be set: PublishAt publishes immediately with
// that timestamp, ScheduleAt stores a draft to be published later.
type GenerateRequest struct {
	Prompt     string     `json:"prompt"`
	Keywords   []string   `json:"keywords,omitempty"`
	VideoID    string     `json:"video_id,omitempty"`
	PublishAt  *time.Time `json:"publish_at,omitempty"`
	ScheduleAt *time.Time `json:"schedule_at,omitempty"`
}

// GeneratedContent is the normalized success payload from the text provider.
type GeneratedContent struct {
	Title          string   `json:"title"`
	Content        string   `json:"content"`
	Excerpt        string   `json:"excerpt"`
	Tags           []string `json:"tags"`
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
	CoverImage     string   `json:"coverImage"`
}

// TextGenerator is the external generative-text provider boundary.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (*GeneratedContent, error)
}

// VideoMetadata is what the video-platform provider returns for one video.
type VideoMetadata struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	ThumbnailURL string
	Duration     time.Duration
	PublishedAt  time.Time
}

// VideoProvider is the external video-metadata provider boundary.
type VideoProvider interface {
	GetVideo(ctx context.Context, id string) (*VideoMetadata, error)
	ListChannelUploads(ctx context.Context, maxResults int) ([]*VideoMetadata, error)
}

// BatchOptions configures a multi-item generation run.
type BatchOptions struct {
	DryRun bool
	// Delay separates consecutive provider calls so a batch does not burn
	// through the rate-limit budget in one burst.
	Delay time.Duration
}

// BatchItemError records one failed item of a batch.
type BatchItemError struct {
	Prompt  string `json:"prompt,omitempty"`
	VideoID string `json:"video_id,omitempty"`
	Error   string `json:"error"`
}

// BatchResult reports independent per-item outcomes of a batch run.
type BatchResult struct {
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	DryRun    bool             `json:"dry_run"`
	Errors    []BatchItemError `json:"errors,omitempty"`
}

// GenerationService orchestrates the text and video providers behind the
// rate limiter and persists the resulting posts.
type GenerationService interface {
	Generate(ctx context.Context, req *GenerateRequest) (*post.Post, error)
	ConvertVideo(ctx context.Context, videoID string, publishAt *time.Time) (*post.Post, error)
	GenerateBatch(ctx context.Context, items []GenerateRequest, opts BatchOptions) *BatchResult
	SyncChannelVideos(ctx context.Context, maxVideos int, opts BatchOptions) (*BatchResult, error)
}
