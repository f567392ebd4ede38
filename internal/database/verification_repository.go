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

// VerificationRepo implements domain.VerificationRepository backed by PostgreSQL.
type VerificationRepo struct {
	pool *pgxpool.Pool
}

func NewVerificationRepo(pool *pgxpool.Pool) *VerificationRepo {
	return &VerificationRepo{pool: pool}
}

// Replace supersedes any outstanding record for the email: at most one
// verification per email is ever pending.
func (r *VerificationRepo) Replace(ctx context.Context, email string) (*domain.Verification, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM verifications WHERE email = $1`, email); err != nil {
		return nil, fmt.Errorf("failed to delete stale verification: %w", err)
	}

	var v domain.Verification
	err = tx.QueryRow(ctx, `
		INSERT INTO verifications (email, created_at)
		VALUES ($1, NOW())
		RETURNING id, email, created_at
	`, email).Scan(&v.ID, &v.Email, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert verification: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &v, nil
}

// Consume deletes the record and returns it; the DELETE ... RETURNING makes
// consumption exactly-once even under concurrent requests.
func (r *VerificationRepo) Consume(ctx context.Context, id uuid.UUID) (*domain.Verification, error) {
	var v domain.Verification
	err := r.pool.QueryRow(ctx, `
		DELETE FROM verifications
		WHERE id = $1
		RETURNING id, email, created_at
	`, id).Scan(&v.ID, &v.Email, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrVerificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume verification: %w", err)
	}
	return &v, nil
}
