package server

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PiWizard3852/Wayve/internal/domain"
	apperrors "github.com/PiWizard3852/Wayve/internal/errors"
)

// handleVote builds the handler for one of the four vote endpoints. The
// response carries the voter's resulting reaction and the tally delta so an
// optimistically updated client can confirm or roll back its prediction.
func (s *Server) handleVote(kind domain.SubjectKind, action domain.VoteAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form struct {
			ID string `json:"id"`
		}
		if err := c.Bind(&form); err != nil {
			return apperrors.ValidationError("form", "Request body is not valid JSON")
		}

		subjectID, err := uuid.Parse(form.ID)
		if err != nil {
			return apperrors.ValidationError("id", "Subject id is not a valid uuid")
		}

		reaction, delta, err := s.app.ToggleVote(c.Request().Context(), currentUsername(c), kind, subjectID, action)
		if err != nil {
			return domainError(err)
		}

		return respondOK(c, "", map[string]any{"reaction": reaction, "delta": delta})
	}
}
