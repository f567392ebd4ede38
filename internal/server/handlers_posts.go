package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PiWizard3852/Wayve/internal/app"
	apperrors "github.com/PiWizard3852/Wayve/internal/errors"
)

func (s *Server) handleFeed(c echo.Context) error {
	policy := app.SortRecent
	if c.QueryParam("sort") == string(app.SortPopular) {
		policy = app.SortPopular
	}

	posts, err := s.app.Feed(c.Request().Context(), currentUsername(c), policy)
	if err != nil {
		return domainError(err)
	}

	return respondOK(c, "", posts)
}

func (s *Server) handleCreatePost(c echo.Context) error {
	var form postForm
	if err := c.Bind(&form); err != nil {
		return apperrors.ValidationError("form", "Request body is not valid JSON")
	}
	if err := form.validate(); err != nil {
		return err
	}

	post, err := s.app.CreatePost(c.Request().Context(), currentUsername(c), form.Title, form.Content)
	if err != nil {
		return domainError(err)
	}

	return respondCreated(c, "Post created", post)
}

func (s *Server) handleGetPost(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return apperrors.ValidationError("post", "Post id is not a valid uuid")
	}

	detail, err := s.app.GetPost(c.Request().Context(), currentUsername(c), postID)
	if err != nil {
		return domainError(err)
	}

	return respondOK(c, "", detail)
}

func (s *Server) handleCreateComment(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		return apperrors.ValidationError("post", "Post id is not a valid uuid")
	}

	var form commentForm
	if err := c.Bind(&form); err != nil {
		return apperrors.ValidationError("form", "Request body is not valid JSON")
	}
	if err := form.validate(); err != nil {
		return err
	}

	comment, err := s.app.CreateComment(c.Request().Context(), currentUsername(c), postID, form.Content)
	if err != nil {
		return domainError(err)
	}

	return respondCreated(c, "Comment created", comment)
}
