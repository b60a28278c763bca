package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/diaver-site-backend/errs"
)

// FileStore keeps uploaded presentation binaries under flat storage names.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// NewFileName builds a collision-resistant storage name that keeps the
// original extension, e.g. 1718000000000-0f8c...-b1.pdf.
func NewFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}

// ContentType guesses the MIME type of a stored file from its extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// validName rejects names that could escape the storage root.
func validName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errs.NewInvalidFieldError("fileName", fmt.Sprintf("invalid storage name %q", name))
	}
	return nil
}
