package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Post content is stored HTML-escaped; AuthorName is denormalized from the
// users table on read. Likes/Dislikes/Comments are tallies computed by the
// repository at query time — the process never holds an authoritative copy.
type Post struct {
	ID         uuid.UUID
	Username   string
	AuthorName string
	Title      string
	Content    string
	CreatedAt  time.Time
	Likes      int
	Dislikes   int
	Comments   int
}

type Comment struct {
	ID         uuid.UUID
	PostID     uuid.UUID
	Username   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
	Likes      int
	Dislikes   int
}

// PostRepository abstracts post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context) ([]Post, error)
	ListByUsername(ctx context.Context, username string) ([]Post, error)
}

// CommentRepository abstracts comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListByPost(ctx context.Context, postID uuid.UUID) ([]Comment, error)
	ListByUsername(ctx context.Context, username string) ([]Comment, error)
}
