package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PiWizard3852/Wayve/internal/domain"
)

// voteTables maps a subject kind to its like/dislike tables and id column.
// Table names are compile-time constants, never user input.
type voteTables struct {
	likes    string
	dislikes string
	idColumn string
}

var voteTablesByKind = map[domain.SubjectKind]voteTables{
	domain.SubjectPost:    {likes: "post_likes", dislikes: "post_dislikes", idColumn: "post_id"},
	domain.SubjectComment: {likes: "comment_likes", dislikes: "comment_dislikes", idColumn: "comment_id"},
}

// VoteRepo implements domain.VoteRepository backed by PostgreSQL.
type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// Toggle runs the delete-then-toggle sequence in a single transaction so a
// concurrent duplicate submission cannot leave both reaction rows behind.
// The opposite-side delete runs unconditionally, healing any inconsistency a
// prior failure might have left.
func (r *VoteRepo) Toggle(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string, action domain.VoteAction) (domain.Reaction, error) {
	tables, ok := voteTablesByKind[kind]
	if !ok {
		return domain.ReactionNone, fmt.Errorf("unknown subject kind %q", kind)
	}

	same, opposite := tables.likes, tables.dislikes
	onState := domain.ReactionLiking
	if action == domain.ActionDislike {
		same, opposite = tables.dislikes, tables.likes
		onState = domain.ReactionDisliking
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.ReactionNone, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	_, err = tx.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1 AND voter = $2`, opposite, tables.idColumn),
		subjectID, voter)
	if err != nil {
		return domain.ReactionNone, fmt.Errorf("failed to clear opposite reaction: %w", err)
	}

	tag, err := tx.Exec(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1 AND voter = $2`, same, tables.idColumn),
		subjectID, voter)
	if err != nil {
		return domain.ReactionNone, fmt.Errorf("failed to toggle reaction: %w", err)
	}

	state := domain.ReactionNone
	if tag.RowsAffected() == 0 {
		_, err = tx.Exec(ctx, fmt.Sprintf(
			`INSERT INTO %s (%s, voter) VALUES ($1, $2)`, same, tables.idColumn),
			subjectID, voter)
		if err != nil {
			return domain.ReactionNone, fmt.Errorf("failed to insert reaction: %w", err)
		}
		state = onState
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ReactionNone, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return state, nil
}

// Reaction checks the like row first, then the dislike row, mirroring the
// read-side annotation contract.
func (r *VoteRepo) Reaction(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (domain.Reaction, error) {
	tables, ok := voteTablesByKind[kind]
	if !ok {
		return domain.ReactionNone, fmt.Errorf("unknown subject kind %q", kind)
	}

	var liking bool
	err := r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND voter = $2)`, tables.likes, tables.idColumn),
		subjectID, voter).Scan(&liking)
	if err != nil {
		return domain.ReactionNone, fmt.Errorf("failed to check like: %w", err)
	}
	if liking {
		return domain.ReactionLiking, nil
	}

	var disliking bool
	err = r.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND voter = $2)`, tables.dislikes, tables.idColumn),
		subjectID, voter).Scan(&disliking)
	if err != nil {
		return domain.ReactionNone, fmt.Errorf("failed to check dislike: %w", err)
	}
	if disliking {
		return domain.ReactionDisliking, nil
	}
	return domain.ReactionNone, nil
}
