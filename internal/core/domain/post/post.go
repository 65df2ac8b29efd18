package post

import (
	"time"

	"github.com/google/uuid"

	"github.com/quillblog/quill/internal/core/domain/locale"
)

// Status is the lifecycle state of a post. It is always derived from the
// presence of a publish timestamp; it is never set independently.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

func (s Status) String() string {
	return string(s)
}

// StatusFor derives the lifecycle state from a publish timestamp.
func StatusFor(publishedAt *time.Time) Status {
	if publishedAt != nil {
		return StatusPublished
	}
	return StatusDraft
}

type Post struct {
	ID             uuid.UUID     `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Content        string        `json:"content"`
	Excerpt        string        `json:"excerpt"`
	CoverImage     string        `json:"cover_image,omitempty"`
	Tags           []string      `json:"tags"`
	SEOTitle       string        `json:"seo_title,omitempty"`
	SEODescription string        `json:"seo_description,omitempty"`
	Status         Status        `json:"status"`
	Language       locale.Locale `json:"language"`
	Author         string        `json:"author"`
	VideoID        string        `json:"video_id,omitempty"`
	Views          int64         `json:"views"`
	PublishedAt    *time.Time    `json:"published_at"`
	ScheduledAt    *time.Time    `json:"scheduled_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// SetPublishedAt records (or clears) the publish timestamp and keeps the
// derived status consistent with it.
func (p *Post) SetPublishedAt(t *time.Time) {
	p.PublishedAt = t
	p.Status = StatusFor(t)
}

// IsVisible reports whether the post should be served on public routes.
func (p *Post) IsVisible(now time.Time) bool {
	return p.Status == StatusPublished && p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// CreatePostRequest represents the request to create a new post
type CreatePostRequest struct {
	Title          string     `json:"title"`
	Slug           string     `json:"slug,omitempty"`
	Content        string     `json:"content"`
	Excerpt        string     `json:"excerpt,omitempty"`
	CoverImage     string     `json:"cover_image,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	ScheduledAt    *time.Time `json:"scheduled_at,omitempty"`
	VideoID        string     `json:"video_id,omitempty"`
}

// UpdatePostRequest represents the request to update a post. Nil fields are
// left unchanged; PublishedAt uses the Set flag so an explicit null clears the
// timestamp and flips the post back to draft.
type UpdatePostRequest struct {
	Title          *string    `json:"title,omitempty"`
	Content        *string    `json:"content,omitempty"`
	Excerpt        *string    `json:"excerpt,omitempty"`
	CoverImage     *string    `json:"cover_image,omitempty"`
	Tags           *[]string  `json:"tags,omitempty"`
	SEOTitle       *string    `json:"seo_title,omitempty"`
	SEODescription *string    `json:"seo_description,omitempty"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	ClearPublished bool       `json:"clear_published,omitempty"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest represents the request to add a comment to a post
type CreateCommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}
