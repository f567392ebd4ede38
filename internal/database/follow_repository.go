package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FollowRepo implements domain.FollowRepository backed by PostgreSQL.
type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

// Toggle removes the edge if present, creates it otherwise, inside one
// transaction to keep concurrent toggles from double-inserting.
func (r *FollowRepo) Toggle(ctx context.Context, followed, follower string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	tag, err := tx.Exec(ctx,
		`DELETE FROM followers WHERE followed = $1 AND follower = $2`,
		followed, follower)
	if err != nil {
		return false, fmt.Errorf("failed to toggle follow: %w", err)
	}

	following := false
	if tag.RowsAffected() == 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO followers (followed, follower) VALUES ($1, $2)`,
			followed, follower)
		if err != nil {
			return false, fmt.Errorf("failed to insert follow: %w", err)
		}
		following = true
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return following, nil
}

func (r *FollowRepo) IsFollowing(ctx context.Context, followed, follower string) (bool, error) {
	var following bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM followers WHERE followed = $1 AND follower = $2)`,
		followed, follower).Scan(&following)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return following, nil
}

func (r *FollowRepo) CountFollowers(ctx context.Context, username string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM followers WHERE followed = $1`, username).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}
