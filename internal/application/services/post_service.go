package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
)

const (
	maxTitleLength   = 200
	maxExcerptLength = 160
	maxCommentLength = 2000
	maxAuthorLength  = 50
)

// PostService implements post business logic on top of the repositories.
type PostService struct {
	repo        ports.PostRepository
	commentRepo ports.CommentRepository
	author      string
	logger      *logrus.Logger
}

func NewPostService(repo ports.PostRepository, commentRepo ports.CommentRepository, author string, logger *logrus.Logger) *PostService {
	return &PostService{repo: repo, commentRepo: commentRepo, author: author, logger: logger}
}

// CreatePost validates and stores a new post. Status is derived from the
// publish timestamp, never taken from the request.
func (s *PostService) CreatePost(ctx context.Context, req *post.CreatePostRequest) (*post.Post, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", ports.ErrInvalidInput)
	}
	if len([]rune(title)) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds %d characters: %w", maxTitleLength, ports.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("content is required: %w", ports.ErrInvalidInput)
	}

	slug := req.Slug
	if slug == "" {
		slug = post.Slugify(title)
	}
	slug, err := post.UniqueSlug(slug, func(c string) (bool, error) {
		return s.repo.SlugExists(ctx, c)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve slug: %w", err)
	}

	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = excerptFrom(req.Content)
	}

	now := time.Now().UTC()
	p := &post.Post{
		ID:             uuid.New(),
		Title:          title,
		Slug:           slug,
		Content:        req.Content,
		Excerpt:        excerpt,
		CoverImage:     req.CoverImage,
		Tags:           req.Tags,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
		Language:       locale.Detect(title + " " + req.Content),
		Author:         s.author,
		VideoID:        req.VideoID,
		ScheduledAt:    req.ScheduledAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	p.SetPublishedAt(req.PublishedAt)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"post_id": p.ID, "slug": p.Slug, "status": p.Status}).Info("post created")
	}
	return p, nil
}

// GetPost resolves a post by UUID or, failing that, by slug.
func (s *PostService) GetPost(ctx context.Context, idOrSlug string) (*post.Post, error) {
	if id, err := uuid.Parse(idOrSlug); err == nil {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.GetBySlug(ctx, idOrSlug)
}

// UpdatePost applies the non-nil fields of req. A publish-timestamp change
// always re-derives the status; ClearPublished flips the post back to draft.
func (s *PostService) UpdatePost(ctx context.Context, id uuid.UUID, req *post.UpdatePostRequest) (*post.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
		if p.Title == "" {
			return nil, fmt.Errorf("title cannot be empty: %w", ports.ErrInvalidInput)
		}
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.CoverImage != nil {
		p.CoverImage = *req.CoverImage
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.SEOTitle != nil {
		p.SEOTitle = *req.SEOTitle
	}
	if req.SEODescription != nil {
		p.SEODescription = *req.SEODescription
	}
	if req.ClearPublished {
		p.SetPublishedAt(nil)
	} else if req.PublishedAt != nil {
		p.SetPublishedAt(req.PublishedAt)
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return p, nil
}

func (s *PostService) DeletePost(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, filter *ports.PostFilter) ([]*post.Post, int, error) {
	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// PublishPost stamps the post with the current time, which derives the
// published status.
func (s *PostService) PublishPost(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	now := time.Now().UTC()
	return s.UpdatePost(ctx, id, &post.UpdatePostRequest{PublishedAt: &now})
}

func (s *PostService) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.repo.IncrementViews(ctx, id)
}

// PopularPosts lists the most-viewed published posts for a period. This is a
// supplementary, cache-like read: on a store failure it degrades to an empty
// list instead of surfacing an error.
func (s *PostService) PopularPosts(ctx context.Context, period string, limit int) ([]*post.Post, error) {
	var since *time.Time
	now := time.Now().UTC()
	switch period {
	case "week":
		t := now.AddDate(0, 0, -7)
		since = &t
	case "month":
		t := now.AddDate(0, 0, -30)
		since = &t
	}
	posts, err := s.repo.ListPopular(ctx, since, limit)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("popular posts query failed; serving empty list")
		}
		return []*post.Post{}, nil
	}
	return posts, nil
}

// RelatedPosts ranks published posts sharing tags with the given post and
// tops the list up with popular posts when fewer than three match.
func (s *PostService) RelatedPosts(ctx context.Context, id uuid.UUID, limit int) ([]*post.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	related, err := s.repo.ListRelated(ctx, p.Tags, id, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list related posts: %w", err)
	}
	if len(related) >= 3 || len(related) >= limit {
		return related, nil
	}
	popular, err := s.repo.ListPopular(ctx, nil, limit)
	if err != nil {
		// top-up is best effort
		return related, nil
	}
	seen := map[uuid.UUID]bool{id: true}
	for _, r := range related {
		seen[r.ID] = true
	}
	for _, pp := range popular {
		if len(related) >= limit {
			break
		}
		if !seen[pp.ID] {
			related = append(related, pp)
			seen[pp.ID] = true
		}
	}
	return related, nil
}

// AddComment validates and stores a comment on a published post.
func (s *PostService) AddComment(ctx context.Context, postID uuid.UUID, req *post.CreateCommentRequest) (*post.Comment, error) {
	author := strings.TrimSpace(req.Author)
	content := strings.TrimSpace(req.Content)
	if author == "" || content == "" {
		return nil, fmt.Errorf("author and content are required: %w", ports.ErrInvalidInput)
	}
	if len([]rune(author)) > maxAuthorLength {
		return nil, fmt.Errorf("author exceeds %d characters: %w", maxAuthorLength, ports.ErrInvalidInput)
	}
	if len([]rune(content)) > maxCommentLength {
		return nil, fmt.Errorf("content exceeds %d characters: %w", maxCommentLength, ports.ErrInvalidInput)
	}
	if _, err := s.repo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	c := &post.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		Author:    author,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return c, nil
}

func (s *PostService) ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*post.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// ReclassifyLanguages re-runs the canonical language detector over every post
// and persists corrections. One rule applied everywhere; batch tools with
// divergent heuristics are what this replaces.
func (s *PostService) ReclassifyLanguages(ctx context.Context) (int, int, error) {
	const pageSize = 100
	changed, total := 0, 0
	for offset := 0; ; offset += pageSize {
		posts, err := s.repo.List(ctx, &ports.PostFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return changed, total, fmt.Errorf("failed to list posts: %w", err)
		}
		if len(posts) == 0 {
			break
		}
		for _, p := range posts {
			total++
			detected := locale.Detect(p.Title + " " + p.Content)
			if detected == p.Language {
				continue
			}
			p.Language = detected
			p.UpdatedAt = time.Now().UTC()
			if err := s.repo.Update(ctx, p); err != nil {
				if s.logger != nil {
					s.logger.WithFields(logrus.Fields{"post_id": p.ID}).WithError(err).Error("failed to update post language")
				}
				continue
			}
			changed++
		}
		if len(posts) < pageSize {
			break
		}
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"changed": changed, "total": total}).Info("language reclassification complete")
	}
	return changed, total, nil
}

// PublishScheduled publishes every draft whose scheduled timestamp has come
// due. Each post publishes independently; one failure does not stop the rest.
func (s *PostService) PublishScheduled(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.ListScheduledDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list scheduled posts: %w", err)
	}
	published := 0
	for _, p := range due {
		at := now
		if p.ScheduledAt != nil {
			at = *p.ScheduledAt
		}
		p.SetPublishedAt(&at)
		p.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, p); err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"post_id": p.ID}).WithError(err).Error("failed to publish scheduled post")
			}
			continue
		}
		published++
	}
	return published, nil
}

func excerptFrom(content string) string {
	runes := []rune(strings.TrimSpace(content))
	if len(runes) <= maxExcerptLength {
		return string(runes)
	}
	return string(runes[:maxExcerptLength])
}

func sample(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// IsNotFound reports whether err is a repository not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ports.ErrNotFound)
}
