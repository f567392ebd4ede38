package server

import (
	"github.com/labstack/echo/v4"
)

func (s *Server) handleProfile(c echo.Context) error {
	profile, err := s.app.Profile(c.Request().Context(), currentUsername(c), c.Param("username"))
	if err != nil {
		return domainError(err)
	}
	return respondOK(c, "", profile)
}

func (s *Server) handleUserPosts(c echo.Context) error {
	posts, err := s.app.UserPosts(c.Request().Context(), currentUsername(c), c.Param("username"))
	if err != nil {
		return domainError(err)
	}
	return respondOK(c, "", posts)
}

func (s *Server) handleUserComments(c echo.Context) error {
	comments, err := s.app.UserComments(c.Request().Context(), currentUsername(c), c.Param("username"))
	if err != nil {
		return domainError(err)
	}
	return respondOK(c, "", comments)
}

func (s *Server) handleToggleFollow(c echo.Context) error {
	following, err := s.app.ToggleFollow(c.Request().Context(), currentUsername(c), c.Param("username"))
	if err != nil {
		return domainError(err)
	}

	message := "Unfollowed"
	if following {
		message = "Following"
	}
	return respondOK(c, message, map[string]bool{"following": following})
}
