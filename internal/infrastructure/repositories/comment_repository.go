package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/quillblog/quill/internal/core/domain/post"
	"github.com/quillblog/quill/internal/core/ports"
	"github.com/quillblog/quill/internal/infrastructure/db"
)

type commentRow struct {
	ID        uuid.UUID `db:"id"`
	PostID    uuid.UUID `db:"post_id"`
	Author    string    `db:"author"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *commentRow) toDomain() *post.Comment {
	return &post.Comment{
		ID:        r.ID,
		PostID:    r.PostID,
		Author:    r.Author,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
	}
}

// CommentRepository implements the comment repository interface
type CommentRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(database *db.Database, logger *logrus.Logger) ports.CommentRepository {
	return &CommentRepository{
		db:     database,
		logger: logger,
	}
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, c *post.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author, content, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.DB.ExecContext(ctx, query, c.ID, c.PostID, c.Author, c.Content, c.CreatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"post_id": c.PostID}).WithError(err).Error("db: failed to create comment")
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListByPost retrieves comments for a post, oldest first.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*post.Comment, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, post_id, author, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	var rows []commentRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, postID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*post.Comment, 0, len(rows))
	for i := range rows {
		comments = append(comments, rows[i].toDomain())
	}
	return comments, nil
}

// Count returns the number of comments on a post.
func (r *CommentRepository) Count(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM comments WHERE post_id = $1`

	if err := r.db.DB.GetContext(ctx, &count, query, postID); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}

	return count, nil
}
