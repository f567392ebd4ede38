package server

import (
	"errors"

	"github.com/PiWizard3852/Wayve/internal/domain"
	apperrors "github.com/PiWizard3852/Wayve/internal/errors"
)

// domainError translates domain sentinels into structured, field-attributed
// errors. Anything unrecognized falls through to a 500 via the errors
// middleware.
func domainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return apperrors.NotFoundError("username", "User not found")
	case errors.Is(err, domain.ErrPostNotFound):
		return apperrors.NotFoundError("post", "Post not found")
	case errors.Is(err, domain.ErrCommentNotFound):
		return apperrors.NotFoundError("comment", "Comment not found")
	case errors.Is(err, domain.ErrVerificationNotFound):
		return apperrors.NotFoundError("verification", "Verification link is invalid or has already been used")
	case errors.Is(err, domain.ErrVerificationExpired):
		return apperrors.ValidationError("verification", "Verification link has expired, request a new one")
	case errors.Is(err, domain.ErrEmailTaken):
		return apperrors.ConflictError("email", "An account with this email already exists")
	case errors.Is(err, domain.ErrUsernameTaken):
		return apperrors.ConflictError("username", "This username is already taken")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.ValidationError("form", "Incorrect email or password")
	case errors.Is(err, domain.ErrSelfFollow):
		return apperrors.ConflictError("username", "You cannot follow yourself")
	case errors.Is(err, domain.ErrVoteDebounced):
		return apperrors.ValidationError("form", "You are voting too quickly")
	case errors.Is(err, domain.ErrMailDelivery):
		return apperrors.ExternalError("Failed to send verification email", err)
	default:
		return err
	}
}
