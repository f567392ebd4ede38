package domain

import (
	"context"

	"github.com/google/uuid"
)

// Reaction is a voter's current state on a subject. The zero value of the
// underlying tables (no row) maps to ReactionNone; a persisted like or dislike
// row maps to the other two. For any (voter, subject) pair at most one of the
// like/dislike rows may exist.
type Reaction string

const (
	ReactionNone      Reaction = "none"
	ReactionLiking    Reaction = "liking"
	ReactionDisliking Reaction = "disliking"
)

// VoteAction is the user gesture: pressing the like or the dislike button.
type VoteAction string

const (
	ActionLike    VoteAction = "like"
	ActionDislike VoteAction = "dislike"
)

// SubjectKind discriminates the two votable entity types.
type SubjectKind string

const (
	SubjectPost    SubjectKind = "post"
	SubjectComment SubjectKind = "comment"
)

// Transition applies a vote action to the current reaction and returns the
// new reaction together with the delta to the displayed tally (likes − dislikes).
//
//	none      --like-->    liking    (+1)
//	none      --dislike--> disliking (−1)
//	liking    --like-->    none      (−1)
//	liking    --dislike--> disliking (−2)
//	disliking --like-->    liking    (+2)
//	disliking --dislike--> none      (+1)
func Transition(current Reaction, action VoteAction) (Reaction, int) {
	switch action {
	case ActionLike:
		switch current {
		case ReactionLiking:
			return ReactionNone, -1
		case ReactionDisliking:
			return ReactionLiking, +2
		default:
			return ReactionLiking, +1
		}
	case ActionDislike:
		switch current {
		case ReactionDisliking:
			return ReactionNone, +1
		case ReactionLiking:
			return ReactionDisliking, -2
		default:
			return ReactionDisliking, -1
		}
	}
	return current, 0
}

// VoteRepository persists reactions. Toggle performs the full delete-then-toggle
// sequence for one action inside a single transaction: the opposite-side row is
// deleted unconditionally (self-healing against accumulated inconsistency), then
// the same-side row is deleted if present or inserted otherwise. It returns the
// resulting reaction.
type VoteRepository interface {
	Toggle(ctx context.Context, kind SubjectKind, subjectID uuid.UUID, voter string, action VoteAction) (Reaction, error)
	// Reaction reports the voter's current state on the subject: an existence
	// check on the like row, then the dislike row. Pure read.
	Reaction(ctx context.Context, kind SubjectKind, subjectID uuid.UUID, voter string) (Reaction, error)
}

// VoteDebouncer rejects rapid duplicate submissions from the same voter on the
// same subject. Optional: a nil debouncer means every vote is allowed through.
type VoteDebouncer interface {
	CheckDebounce(ctx context.Context, kind SubjectKind, subjectID uuid.UUID, voter string) (bool, error)
}
