package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/domain/post"
)

// PostFilter narrows post listings. Nil fields are not applied.
type PostFilter struct {
	Status   *post.Status
	Language *locale.Locale
	Limit    int
	Offset   int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	GetBySlug(ctx context.Context, slug string) (*post.Post, error)
	GetByVideoID(ctx context.Context, videoID string) (*post.Post, error)
	List(ctx context.Context, filter *PostFilter) ([]*post.Post, error)
	Count(ctx context.Context, filter *PostFilter) (int, error)
	Update(ctx context.Context, p *post.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	ListPopular(ctx context.Context, since *time.Time, limit int) ([]*post.Post, error)
	ListRelated(ctx context.Context, tags []string, excludeID uuid.UUID, limit int) ([]*post.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListScheduledDue(ctx context.Context, now time.Time) ([]*post.Post, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, c *post.Comment) error
	ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*post.Comment, error)
	Count(ctx context.Context, postID uuid.UUID) (int, error)
}

// PostService defines the interface for post business logic
type PostService interface {
	CreatePost(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error)
	GetPost(ctx context.Context, idOrSlug string) (*post.Post, error)
	UpdatePost(ctx context.Context, id uuid.UUID, req *post.UpdatePostRequest) (*post.Post, error)
	DeletePost(ctx context.Context, id uuid.UUID) error
	ListPosts(ctx context.Context, filter *PostFilter) ([]*post.Post, int, error)
	PublishPost(ctx context.Context, id uuid.UUID) (*post.Post, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	PopularPosts(ctx context.Context, period string, limit int) ([]*post.Post, error)
	RelatedPosts(ctx context.Context, id uuid.UUID, limit int) ([]*post.Post, error)
	AddComment(ctx context.Context, postID uuid.UUID, req *post.CreateCommentRequest) (*post.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*post.Comment, error)
	ReclassifyLanguages(ctx context.Context) (changed int, total int, err error)
	PublishScheduled(ctx context.Context, now time.Time) (published int, err error)
}
