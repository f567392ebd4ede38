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

// postSelect returns posts with author display name and current tallies. The
// counts are recomputed on every read — the process holds no authoritative copy.
const postSelect = `
	SELECT p.id, p.username, u.name, p.title, p.content, p.created_at,
		(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id),
		(SELECT COUNT(*) FROM post_dislikes pd WHERE pd.post_id = p.id),
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
	FROM posts p
	JOIN users u ON u.username = p.username`

// PostRepo implements domain.PostRepository backed by PostgreSQL.
type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	err := row.Scan(
		&post.ID, &post.Username, &post.AuthorName, &post.Title,
		&post.Content, &post.CreatedAt,
		&post.Likes, &post.Dislikes, &post.Comments,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return &post, nil
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO posts (username, title, content, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`, post.Username, post.Title, post.Content).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
}

func (r *PostRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return exists, nil
}

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	return r.queryPosts(ctx, postSelect)
}

func (r *PostRepo) ListByUsername(ctx context.Context, username string) ([]domain.Post, error) {
	return r.queryPosts(ctx, postSelect+` WHERE p.username = $1`, username)
}

func (r *PostRepo) queryPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return posts, nil
}
