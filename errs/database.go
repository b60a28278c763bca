package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable marks a collection document that was missing or
	// unreadable and has been replaced by its empty default.
	ErrStorageUnavailable = errors.New("collection storage unavailable")

	// ErrStorageWrite marks a failed whole-document write.
	ErrStorageWrite = errors.New("collection storage write failed")

	ErrFileStorage = errors.New("file storage failed")
)

// NewNotFound reports a missing record, e.g. NewNotFound("project", "17").
func NewNotFound(entity, id string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
		Details:    fmt.Sprintf("no %s with id %q", entity, id),
	}
}

func NewStorageUnavailableError(collection string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrStorageUnavailable,
		Details:    fmt.Sprintf("Collection %s could not be read", collection),
		Cause:      cause,
		Field:      "storage",
	}
}

func NewStorageWriteError(collection string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageWrite,
		Details:    fmt.Sprintf("Failed to persist collection %s", collection),
		Cause:      cause,
		Field:      "storage",
	}
}

func NewFileStorageError(operation, name string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrFileStorage,
		Details:    fmt.Sprintf("Failed to %s file %s", operation, name),
		Cause:      cause,
		Field:      "file",
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsStorageWriteError(err error) bool {
	return errors.Is(err, ErrStorageWrite)
}

func IsFileStorageError(err error) bool {
	return errors.Is(err, ErrFileStorage)
}
