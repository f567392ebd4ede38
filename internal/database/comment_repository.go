package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PiWizard3852/Wayve/internal/domain"
)

const commentSelect = `
	SELECT c.id, c.post_id, c.username, u.name, c.content, c.created_at,
		(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id),
		(SELECT COUNT(*) FROM comment_dislikes cd WHERE cd.comment_id = c.id)
	FROM comments c
	JOIN users u ON u.username = c.username`

// CommentRepo implements domain.CommentRepository backed by PostgreSQL.
type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func scanComment(row pgx.Row) (*domain.Comment, error) {
	var comment domain.Comment
	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.Username, &comment.AuthorName,
		&comment.Content, &comment.CreatedAt,
		&comment.Likes, &comment.Dislikes,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, username, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`, comment.PostID, comment.Username, comment.Content).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return scanComment(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
}

func (r *CommentRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}
	return exists, nil
}

func (r *CommentRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	return r.queryComments(ctx, commentSelect+` WHERE c.post_id = $1`, postID)
}

func (r *CommentRepo) ListByUsername(ctx context.Context, username string) ([]domain.Comment, error) {
	return r.queryComments(ctx, commentSelect+` WHERE c.username = $1`, username)
}

func (r *CommentRepo) queryComments(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read comments: %w", err)
	}
	return comments, nil
}
