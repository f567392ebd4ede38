package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/PiWizard3852/Wayve/internal/errors"
)

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	structured := apperrors.AsStructuredError(err)
	require.NotNil(t, structured)
	return structured.Field
}

func TestPostForm_StoredFormFitsColumns(t *testing.T) {
	// Escaping expands each reserved character fivefold; the limit has to
	// bind the escaped string or a max-length input overflows VARCHAR(500).
	form := postForm{Title: "ok", Content: strings.Repeat("&", maxContentLen)}
	err := form.validate()
	require.Error(t, err)
	assert.Equal(t, "content", fieldOf(t, err))

	form = postForm{Title: strings.Repeat("&", maxTitleLen), Content: "ok"}
	err = form.validate()
	require.Error(t, err)
	assert.Equal(t, "title", fieldOf(t, err))
}

func TestPostForm_MaxLengthPlainContentAccepted(t *testing.T) {
	form := postForm{
		Title:   strings.Repeat("t", maxTitleLen),
		Content: strings.Repeat("c", maxContentLen),
	}
	require.NoError(t, form.validate())
	assert.Len(t, form.Title, maxTitleLen)
	assert.Len(t, form.Content, maxContentLen)
}

func TestPostForm_EscapedFormNeverExceedsColumns(t *testing.T) {
	inputs := []string{
		"a & b",
		"<script>alert('x')</script>",
		strings.Repeat(`"'<>&`, 99),
		strings.Repeat("&amp;", 100),
	}
	for _, input := range inputs {
		form := postForm{Title: "ok", Content: input}
		if err := form.validate(); err != nil {
			continue
		}
		assert.LessOrEqual(t, len(form.Content), maxContentLen, "input %q", input)
	}
}

func TestCommentForm_EscapedLimit(t *testing.T) {
	form := commentForm{Content: strings.Repeat("<", maxContentLen/4)}
	err := form.validate()
	require.Error(t, err)
	assert.Equal(t, "content", fieldOf(t, err))

	form = commentForm{Content: "fine & dandy"}
	require.NoError(t, form.validate())
	assert.Equal(t, "fine &amp; dandy", form.Content)
}

func TestSignUpForm_JoinedNameFitsColumn(t *testing.T) {
	// Two max-length names pass the per-field checks but join to 181
	// characters against a 180-character column.
	form := signUpForm{
		FirstName:       strings.Repeat("a", maxNameLen),
		LastName:        strings.Repeat("b", maxNameLen),
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "longenough",
		ConfirmPassword: "longenough",
	}
	err := form.validate()
	require.Error(t, err)
	assert.Equal(t, "lastName", fieldOf(t, err))

	form.LastName = strings.Repeat("b", maxFullNameLen-maxNameLen-1)
	require.NoError(t, form.validate())
}
