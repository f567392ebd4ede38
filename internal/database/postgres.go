// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling and inline startup migrations. Repositories
// implement the domain interfaces and map pgx.ErrNoRows to domain sentinel errors.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Database connected", "max_conns", poolCfg.MaxConns)
	return pool, nil
}

func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			name VARCHAR(180) NOT NULL,
			username VARCHAR(50) PRIMARY KEY,
			email VARCHAR(180) NOT NULL,
			email_verified BOOLEAN NOT NULL DEFAULT FALSE,
			password VARCHAR(60) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users(email)`,
		`CREATE TABLE IF NOT EXISTS verifications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(180) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS verifications_email_key ON verifications(email)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(50) NOT NULL REFERENCES users(username),
			title VARCHAR(80) NOT NULL,
			content VARCHAR(500) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_username ON posts(username)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			post_id UUID NOT NULL REFERENCES posts(id),
			username VARCHAR(50) NOT NULL REFERENCES users(username),
			content VARCHAR(500) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_username ON comments(username)`,
		`CREATE TABLE IF NOT EXISTS post_likes (
			post_id UUID NOT NULL REFERENCES posts(id),
			voter VARCHAR(50) NOT NULL REFERENCES users(username),
			PRIMARY KEY (post_id, voter)
		)`,
		`CREATE TABLE IF NOT EXISTS post_dislikes (
			post_id UUID NOT NULL REFERENCES posts(id),
			voter VARCHAR(50) NOT NULL REFERENCES users(username),
			PRIMARY KEY (post_id, voter)
		)`,
		`CREATE TABLE IF NOT EXISTS comment_likes (
			comment_id UUID NOT NULL REFERENCES comments(id),
			voter VARCHAR(50) NOT NULL REFERENCES users(username),
			PRIMARY KEY (comment_id, voter)
		)`,
		`CREATE TABLE IF NOT EXISTS comment_dislikes (
			comment_id UUID NOT NULL REFERENCES comments(id),
			voter VARCHAR(50) NOT NULL REFERENCES users(username),
			PRIMARY KEY (comment_id, voter)
		)`,
		`CREATE TABLE IF NOT EXISTS followers (
			followed VARCHAR(50) NOT NULL REFERENCES users(username),
			follower VARCHAR(50) NOT NULL REFERENCES users(username),
			PRIMARY KEY (followed, follower)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_followers_follower ON followers(follower)`,
	}

	for _, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Info("Database migrations completed")
	return nil
}
