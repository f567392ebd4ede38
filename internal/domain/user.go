package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is keyed by username. PasswordHash is a bcrypt hash; the plaintext
// password never leaves the auth package.
type User struct {
	Name          string
	Username      string
	Email         string
	EmailVerified bool
	PasswordHash  string
	CreatedAt     time.Time
}

// UserRepository abstracts user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByUsernameFold matches the username case-insensitively.
	GetByUsernameFold(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// MarkEmailVerified flips email_verified for the user owning the email
	// and returns the updated user.
	MarkEmailVerified(ctx context.Context, email string) (*User, error)
}

// Verification is a single-use email verification record. It is consumed
// (deleted) on first use and superseded by any newer record for the same email.
type Verification struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}

// VerificationRepository abstracts verification record persistence.
type VerificationRepository interface {
	// Replace deletes any outstanding record for the email and inserts a
	// fresh one, returning it.
	Replace(ctx context.Context, email string) (*Verification, error)
	// Consume fetches and deletes the record in one step. Returns
	// ErrVerificationNotFound if the record does not exist (already used,
	// superseded, or never issued).
	Consume(ctx context.Context, id uuid.UUID) (*Verification, error)
}

// Mailer delivers verification links. Implementations live in internal/mailer.
type Mailer interface {
	SendVerification(ctx context.Context, to, name string, verificationID uuid.UUID) error
}
