package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	inner := New("disk full")
	err := NewAppError(ErrStorage, "failed to save index", inner)

	assert.Equal(t, ErrStorage, err.Code())
	assert.Equal(t, "failed to save index: disk full", err.Error())
	assert.Equal(t, inner, Unwrap(err))
}

func TestWrapPreservesCode(t *testing.T) {
	base := NewAppError(ErrNotFound, "product not found", nil)

	wrapped := Wrap(base, "loading tree")
	require.Error(t, wrapped)
	assert.Equal(t, ErrNotFound, CodeOf(wrapped))
	assert.True(t, IsNotFound(wrapped))

	plain := Wrap(New("boom"), "doing work")
	assert.Equal(t, ErrInternal, CodeOf(plain))

	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrParse, CodeOf(NewAppError(ErrParse, "bad xml", nil)))
	assert.Equal(t, ErrInternal, CodeOf(New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestToHTTPError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrInvalidArgument, http.StatusBadRequest},
		{ErrParse, http.StatusUnprocessableEntity},
		{ErrValidation, http.StatusUnprocessableEntity},
		{ErrStorage, http.StatusBadGateway},
		{ErrInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			httpErr := ToHTTPError(NewAppError(tt.code, "message", nil))
			require.NotNil(t, httpErr)
			assert.Equal(t, tt.status, httpErr.Code)
		})
	}

	assert.Nil(t, ToHTTPError(nil))
}
