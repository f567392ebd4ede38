package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PiWizard3852/Wayve/internal/auth"
	"github.com/PiWizard3852/Wayve/internal/domain"
	"github.com/PiWizard3852/Wayve/internal/logging"
)

const contextKeyUsername = "username"

// resolveCurrentUser decodes the session cookie and stores the username in
// the request context. Every failure mode falls open to anonymous: missing
// cookie, bad token, and a username no longer in the store all leave the
// request unauthenticated. A vanished user additionally gets the stale
// cookie cleared.
func (s *Server) resolveCurrentUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(auth.CookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		username, err := s.sessions.Verify(cookie.Value)
		if err != nil {
			return next(c)
		}

		if _, err := s.app.CurrentUser(c.Request().Context(), username); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.SetCookie(s.sessions.ClearCookie())
			} else {
				logging.WithUser(username).Warn("session revalidation failed", "error", err)
			}
			return next(c)
		}

		c.Set(contextKeyUsername, username)
		return next(c)
	}
}

// requireAuth redirects anonymous requests to the login page.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentUsername(c) == "" {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// currentUsername returns the authenticated username or "" for anonymous
// requests.
func currentUsername(c echo.Context) string {
	username, _ := c.Get(contextKeyUsername).(string)
	return username
}
