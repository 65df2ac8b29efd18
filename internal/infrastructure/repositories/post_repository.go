package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/internal/core/domain/locale"
	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
	"github.com/quillblog/quill/internal/infrastructure/db"
)

// postRow mirrors the posts table. Tags live in one comma-delimited column;
// the conversion to the list form happens only here, at the storage boundary.
type postRow struct {
	ID             uuid.UUID  `db:"id"`
	Title          string     `db:"title"`
	Slug           string     `db:"slug"`
	Content        string     `db:"content"`
	Excerpt        string     `db:"excerpt"`
	CoverImage     string     `db:"cover_image"`
	Tags           string     `db:"tags"`
	SEOTitle       string     `db:"seo_title"`
	SEODescription string     `db:"seo_description"`
	Status         string     `db:"status"`
	Language       string     `db:"language"`
	Author         string     `db:"author"`
	VideoID        string     `db:"video_id"`
	Views          int64      `db:"views"`
	PublishedAt    *time.Time `db:"published_at"`
	ScheduledAt    *time.Time `db:"scheduled_at"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

func (r *postRow) toDomain() *post.Post {
	return &post.Post{
		ID:             r.ID,
		Title:          r.Title,
		Slug:           r.Slug,
		Content:        r.Content,
		Excerpt:        r.Excerpt,
		CoverImage:     r.CoverImage,
		Tags:           post.TagsToList(r.Tags),
		SEOTitle:       r.SEOTitle,
		SEODescription: r.SEODescription,
		Status:         post.Status(r.Status),
		Language:       locale.Locale(r.Language),
		Author:         r.Author,
		VideoID:        r.VideoID,
		Views:          r.Views,
		PublishedAt:    r.PublishedAt,
		ScheduledAt:    r.ScheduledAt,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

const postColumns = `id, title, slug, content, excerpt, cover_image, tags, seo_title, seo_description,
	   status, language, author, video_id, views, published_at, scheduled_at, created_at, updated_at`

// PostRepository implements the post repository interface
type PostRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(database *db.Database, logger *logrus.Logger) ports.PostRepository {
	return &PostRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new post. The status column is derived from the publish
// timestamp on every write so the two can never diverge.
func (r *PostRepository) Create(ctx context.Context, p *post.Post) error {
	query := `
		INSERT INTO posts (id, title, slug, content, excerpt, cover_image, tags, seo_title, seo_description,
						   status, language, author, video_id, views, published_at, scheduled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	_, err := r.db.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImage, post.TagsToString(p.Tags),
		p.SEOTitle, p.SEODescription, post.StatusFor(p.PublishedAt), p.Language, p.Author,
		p.VideoID, p.Views, p.PublishedAt, p.ScheduledAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"post_id": p.ID, "slug": p.Slug}).WithError(err).Error("db: failed to create post")
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"post_id": p.ID, "slug": p.Slug}).Info("db: post created")
	}

	return nil
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var row postRow
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id = $1`, postColumns)

	err := r.db.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("post %s: %w", id, ports.ErrNotFound)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"post_id": id}).WithError(err).Error("db: failed to get post by ID")
		}
		return nil, fmt.Errorf("failed to get post by ID: %w", err)
	}

	return row.toDomain(), nil
}

// GetBySlug retrieves a post by slug
func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	var row postRow
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE slug = $1`, postColumns)

	err := r.db.DB.GetContext(ctx, &row, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("post %s: %w", slug, ports.ErrNotFound)
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"slug": slug}).WithError(err).Error("db: failed to get post by slug")
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}

	return row.toDomain(), nil
}

// GetByVideoID retrieves the post converted from a given source video.
func (r *PostRepository) GetByVideoID(ctx context.Context, videoID string) (*post.Post, error) {
	var row postRow
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE video_id = $1`, postColumns)

	err := r.db.DB.GetContext(ctx, &row, query, videoID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("post for video %s: %w", videoID, ports.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get post by video ID: %w", err)
	}

	return row.toDomain(), nil
}

// List retrieves posts matching the filter, newest first.
func (r *PostRepository) List(ctx context.Context, filter *ports.PostFilter) ([]*post.Post, error) {
	where, args := buildPostFilter(filter)
	limit, offset := 20, 0
	if filter != nil {
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		offset = filter.Offset
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM posts %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, len(args)-1, len(args))

	var rows []postRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to list posts")
		}
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return rowsToDomain(rows), nil
}

// Count returns the number of posts matching the filter.
func (r *PostRepository) Count(ctx context.Context, filter *ports.PostFilter) (int, error) {
	where, args := buildPostFilter(filter)
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM posts %s`, where)

	if err := r.db.DB.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

// Update updates an existing post
func (r *PostRepository) Update(ctx context.Context, p *post.Post) error {
	query := `
		UPDATE posts
		SET title = $2, slug = $3, content = $4, excerpt = $5, cover_image = $6, tags = $7,
			seo_title = $8, seo_description = $9, status = $10, language = $11,
			video_id = $12, published_at = $13, scheduled_at = $14, updated_at = $15
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Content, p.Excerpt, p.CoverImage, post.TagsToString(p.Tags),
		p.SEOTitle, p.SEODescription, post.StatusFor(p.PublishedAt), p.Language,
		p.VideoID, p.PublishedAt, p.ScheduledAt, p.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"post_id": p.ID}).WithError(err).Error("db: failed to update post")
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", p.ID, ports.ErrNotFound)
	}

	return nil
}

// Delete deletes a post by ID
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"post_id": id}).WithError(err).Error("db: failed to delete post")
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", id, ports.ErrNotFound)
	}

	return nil
}

// IncrementViews bumps the view counter and returns the new value.
func (r *PostRepository) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	var views int64
	query := `UPDATE posts SET views = views + 1 WHERE id = $1 RETURNING views`

	err := r.db.DB.GetContext(ctx, &views, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("post %s: %w", id, ports.ErrNotFound)
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}

	return views, nil
}

// ListPopular returns the most-viewed published posts, optionally restricted
// to posts published since a given time.
func (r *PostRepository) ListPopular(ctx context.Context, since *time.Time, limit int) ([]*post.Post, error) {
	args := []interface{}{string(post.StatusPublished)}
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE status = $1 AND published_at <= NOW()`, postColumns)
	if since != nil {
		args = append(args, *since)
		query += fmt.Sprintf(` AND published_at >= $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY views DESC, published_at DESC LIMIT $%d`, len(args))

	var rows []postRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list popular posts: %w", err)
	}

	return rowsToDomain(rows), nil
}

// ListRelated returns published posts sharing at least one tag, most viewed
// first. Tag overlap is computed by splitting the delimited column in SQL.
func (r *PostRepository) ListRelated(ctx context.Context, tags []string, excludeID uuid.UUID, limit int) ([]*post.Post, error) {
	if len(tags) == 0 {
		return []*post.Post{}, nil
	}
	query := fmt.Sprintf(`
		SELECT %s FROM posts
		WHERE id != $1 AND status = $2 AND published_at <= NOW()
		  AND string_to_array(tags, ',') && $3
		ORDER BY views DESC, published_at DESC
		LIMIT $4`, postColumns)

	var rows []postRow
	err := r.db.DB.SelectContext(ctx, &rows, query, excludeID, string(post.StatusPublished), pq.Array(tags), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list related posts: %w", err)
	}

	return rowsToDomain(rows), nil
}

// SlugExists reports whether a slug is already taken.
func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`

	if err := r.db.DB.GetContext(ctx, &exists, query, slug); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return exists, nil
}

// ListScheduledDue returns drafts whose scheduled publish time has passed.
func (r *PostRepository) ListScheduledDue(ctx context.Context, now time.Time) ([]*post.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM posts
		WHERE status = $1 AND scheduled_at IS NOT NULL AND scheduled_at <= $2
		ORDER BY scheduled_at ASC`, postColumns)

	var rows []postRow
	err := r.db.DB.SelectContext(ctx, &rows, query, string(post.StatusDraft), now)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled posts: %w", err)
	}

	return rowsToDomain(rows), nil
}

func buildPostFilter(filter *ports.PostFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}
	if filter != nil {
		if filter.Status != nil {
			args = append(args, string(*filter.Status))
			clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
		}
		if filter.Language != nil {
			args = append(args, string(*filter.Language))
			clauses = append(clauses, fmt.Sprintf("language = $%d", len(args)))
		}
	}
	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func rowsToDomain(rows []postRow) []*post.Post {
	posts := make([]*post.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].toDomain())
	}
	return posts
}
