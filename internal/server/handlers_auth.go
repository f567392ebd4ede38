package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PiWizard3852/Wayve/internal/app"
	"github.com/PiWizard3852/Wayve/internal/domain"
	apperrors "github.com/PiWizard3852/Wayve/internal/errors"
)

func (s *Server) handleSignUp(c echo.Context) error {
	var form signUpForm
	if err := c.Bind(&form); err != nil {
		return apperrors.ValidationError("form", "Request body is not valid JSON")
	}
	if err := form.validate(); err != nil {
		return err
	}

	user, err := s.app.SignUp(c.Request().Context(), app.SignUpParams{
		Name:     fmt.Sprintf("%s %s", form.FirstName, form.LastName),
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return domainError(err)
	}

	return respondCreated(c, "Account created, check your email for a verification link", map[string]string{
		"username": user.Username,
	})
}

func (s *Server) handleLogin(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return apperrors.ValidationError("form", "Request body is not valid JSON")
	}
	if err := form.validate(); err != nil {
		return err
	}

	user, err := s.app.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		return domainError(err)
	}

	token, expires, err := s.sessions.Issue(user.Username)
	if err != nil {
		return apperrors.InternalError("Failed to issue session", err)
	}
	c.SetCookie(s.sessions.Cookie(token, expires))

	return respondOK(c, "Logged in", map[string]string{"username": user.Username})
}

func (s *Server) handleLogout(c echo.Context) error {
	c.SetCookie(s.sessions.ClearCookie())
	return respondOK(c, "Logged out", nil)
}

// handleVerifyEmail is hit from the emailed link, so it answers with
// redirects rather than JSON: success logs the user in and lands on the
// feed, any kind of bad link lands on the login page.
func (s *Server) handleVerifyEmail(c echo.Context) error {
	verificationID, err := uuid.Parse(c.Param("verificationId"))
	if err != nil {
		return c.Redirect(http.StatusFound, "/login")
	}

	user, err := s.app.VerifyEmail(c.Request().Context(), verificationID)
	if err != nil {
		if errors.Is(err, domain.ErrVerificationNotFound) ||
			errors.Is(err, domain.ErrVerificationExpired) ||
			errors.Is(err, domain.ErrUserNotFound) {
			return c.Redirect(http.StatusFound, "/login")
		}
		return domainError(err)
	}

	token, expires, err := s.sessions.Issue(user.Username)
	if err != nil {
		return apperrors.InternalError("Failed to issue session", err)
	}
	c.SetCookie(s.sessions.Cookie(token, expires))

	return c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleResendVerification(c echo.Context) error {
	var form struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&form); err != nil {
		return apperrors.ValidationError("form", "Request body is not valid JSON")
	}
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	if err := validateEmail(form.Email); err != nil {
		return err
	}

	if err := s.app.ResendVerification(c.Request().Context(), form.Email); err != nil {
		return domainError(err)
	}

	return respondOK(c, "Verification email sent", nil)
}
