package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewNotFound("project", "1"), http.StatusNotFound},
		{"missing field", NewMissingRequiredFieldError("title"), http.StatusBadRequest},
		{"upload too large", NewUploadTooLargeError(50 << 20), http.StatusRequestEntityTooLarge},
		{"storage write", NewStorageWriteError("projects", errors.New("disk full")), http.StatusInternalServerError},
		{"expired token", NewExpiredTokenError(), http.StatusUnauthorized},
		{"wrapped", fmt.Errorf("outer: %w", NewNotFound("lead", "2")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestCheckers(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("presentation", "x")))
	assert.True(t, IsNotFound(NewNotFoundError("API endpoint not found")))
	assert.True(t, IsUploadRejectedError(NewUploadExtensionError(".exe", []string{".pdf"})))
	assert.True(t, IsStorageWriteError(NewStorageWriteError("leads", nil)))
	assert.True(t, IsInvalidTokenError(NewMissingTokenError()))
	assert.False(t, IsNotFound(NewBadRequestError("x")))

	assert.True(t, IsUnauthorized(NewUnauthorizedError("unsupported authorization scheme")))
	assert.True(t, IsUnauthorized(NewInvalidCredentialsError()))
	assert.True(t, IsUnauthorized(NewExpiredTokenError()))
	assert.False(t, IsUnauthorized(NewNotFound("lead", "1")))
}

func TestInternalErrorKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalErrorWithCause("unexpected error", cause)

	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.True(t, errors.Is(err, ErrInternal))
	assert.Equal(t, "unexpected error: internal server error -> disk full", err.GetFullError())
}

func TestGetFullError(t *testing.T) {
	err := NewStorageWriteError("projects", NewFileStorageError("save", "a.pdf", errors.New("disk full")))
	assert.Equal(t,
		"collection storage write failed: Failed to persist collection projects -> file storage failed: Failed to save file a.pdf -> disk full",
		err.GetFullError())
	assert.Equal(t, "no project with id \"1\"", NewNotFound("project", "1").Details)
}
