package server

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	apperrors "github.com/PiWizard3852/Wayve/internal/errors"
)

// Field limits mirror the column widths in the schema. Title and content are
// persisted HTML-escaped, so their limits are checked against the escaped
// form — that is the string the VARCHAR column has to hold.
const (
	maxNameLen     = 90
	maxFullNameLen = 180
	maxEmailLen    = 180
	maxUsernameLen = 50
	minPasswordLen = 8
	maxPasswordLen = 60
	maxTitleLen    = 80
	maxContentLen  = 500
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type signUpForm struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// validate normalizes the form in place (trims names, folds the email) and
// returns the first field error encountered.
func (f *signUpForm) validate() error {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))

	if f.FirstName == "" {
		return apperrors.ValidationError("firstName", "First name is required")
	}
	if len(f.FirstName) > maxNameLen {
		return apperrors.ValidationError("firstName", fmt.Sprintf("First name must be at most %d characters", maxNameLen))
	}
	if f.LastName == "" {
		return apperrors.ValidationError("lastName", "Last name is required")
	}
	if len(f.LastName) > maxNameLen {
		return apperrors.ValidationError("lastName", fmt.Sprintf("Last name must be at most %d characters", maxNameLen))
	}
	// The stored name is "first last"; the joined form must fit the column.
	if len(f.FirstName)+len(f.LastName)+1 > maxFullNameLen {
		return apperrors.ValidationError("lastName", fmt.Sprintf("First and last name together must be at most %d characters", maxFullNameLen-1))
	}
	if f.Username == "" {
		return apperrors.ValidationError("username", "Username is required")
	}
	if len(f.Username) > maxUsernameLen {
		return apperrors.ValidationError("username", fmt.Sprintf("Username must be at most %d characters", maxUsernameLen))
	}
	if !usernamePattern.MatchString(f.Username) {
		return apperrors.ValidationError("username", "Username may only contain letters and numbers")
	}
	if err := validateEmail(f.Email); err != nil {
		return err
	}
	if len(f.Password) < minPasswordLen {
		return apperrors.ValidationError("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	if len(f.Password) > maxPasswordLen {
		return apperrors.ValidationError("password", fmt.Sprintf("Password must be at most %d characters", maxPasswordLen))
	}
	if f.Password != f.ConfirmPassword {
		return apperrors.ValidationError("confirmPassword", "Passwords do not match")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return apperrors.ValidationError("email", "Email is required")
	}
	if len(email) > maxEmailLen {
		return apperrors.ValidationError("email", fmt.Sprintf("Email must be at most %d characters", maxEmailLen))
	}
	if !emailPattern.MatchString(email) {
		return apperrors.ValidationError("email", "Email is not a valid address")
	}
	return nil
}

type loginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f *loginForm) validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	if f.Email == "" {
		return apperrors.ValidationError("email", "Email is required")
	}
	if f.Password == "" {
		return apperrors.ValidationError("password", "Password is required")
	}
	return nil
}

type postForm struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// validate trims and HTML-escapes both fields. The escaped form is what gets
// stored, so the length limits are enforced after escaping — a title full of
// ampersands occupies five column characters apiece.
func (f *postForm) validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Content = strings.TrimSpace(f.Content)

	if f.Title == "" {
		return apperrors.ValidationError("title", "Title is required")
	}
	f.Title = html.EscapeString(f.Title)
	if len(f.Title) > maxTitleLen {
		return apperrors.ValidationError("title", fmt.Sprintf("Title must be at most %d characters (special characters count as their escaped form)", maxTitleLen))
	}

	escaped, err := escapeContent(f.Content)
	if err != nil {
		return err
	}
	f.Content = escaped
	return nil
}

type commentForm struct {
	Content string `json:"content"`
}

func (f *commentForm) validate() error {
	f.Content = strings.TrimSpace(f.Content)
	escaped, err := escapeContent(f.Content)
	if err != nil {
		return err
	}
	f.Content = escaped
	return nil
}

// escapeContent checks the trimmed content is non-empty, escapes it, and
// enforces the column limit on the escaped result.
func escapeContent(content string) (string, error) {
	if content == "" {
		return "", apperrors.ValidationError("content", "Content is required")
	}
	escaped := html.EscapeString(content)
	if len(escaped) > maxContentLen {
		return "", apperrors.ValidationError("content", fmt.Sprintf("Content must be at most %d characters (special characters count as their escaped form)", maxContentLen))
	}
	return escaped, nil
}
