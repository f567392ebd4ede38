package errors

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ValidationError("title", "too long"), 400},
		{NotFoundError("post", "Post does not exist"), 404},
		{ConflictError("email", "Email already in use"), 409},
		{ExternalError("mail delivery failed", fmt.Errorf("smtp: boom")), 502},
		{InternalError("oops", nil), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatus())
	}
}

func TestToEnvelopeKeysByField(t *testing.T) {
	env := ValidationError("username", "Username must be alphanumeric").ToEnvelope()

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"failed":true,"fieldErrors":{"username":["Username must be alphanumeric"]}}`,
		string(raw))
}

func TestToEnvelopeFallsBackToFormField(t *testing.T) {
	env := InternalError("internal server error", nil).ToEnvelope()
	assert.Equal(t, []string{"internal server error"}, env.FieldErrors["form"])
}

func TestAsStructuredErrorPassthrough(t *testing.T) {
	orig := ConflictError("currentUser", "You cannot follow yourself")
	assert.Same(t, orig, AsStructuredError(orig))
}

func TestAsStructuredErrorWrapsUnknown(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	structured := AsStructuredError(cause)

	require.NotNil(t, structured)
	assert.Equal(t, TypeInternal, structured.Type)
	assert.ErrorIs(t, structured, cause)
}

func TestAsStructuredErrorNil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}
