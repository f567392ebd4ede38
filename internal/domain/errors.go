package domain

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrVerificationNotFound = errors.New("verification not found")
	ErrVerificationExpired  = errors.New("verification expired")
	ErrEmailTaken           = errors.New("email already in use")
	ErrUsernameTaken        = errors.New("username already in use")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrSelfFollow           = errors.New("cannot follow yourself")
	ErrVoteDebounced        = errors.New("vote debounced")
	ErrMailDelivery         = errors.New("mail delivery failed")
)
