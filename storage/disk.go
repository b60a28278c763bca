package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DiskStore writes binaries into a single local directory.
type DiskStore struct {
	dir    string
	logger zerolog.Logger
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{
		dir:    dir,
		logger: log.With().Str("component", "diskStore").Str("dir", dir).Logger(),
	}
}

func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errs.NewFileStorageError("save", name, err)
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return errs.NewFileStorageError("save", name, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return errs.NewFileStorageError("save", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return errs.NewFileStorageError("save", name, err)
	}

	s.logger.Debug().Str("fileName", name).Msg("Stored file")
	return nil
}

func (s *DiskStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := validName(name); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NewNotFound("file", name)
		}
		return nil, errs.NewFileStorageError("open", name, err)
	}
	return f, nil
}

// Delete removes a stored file. Deleting a missing file is not an error.
func (s *DiskStore) Delete(ctx context.Context, name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return errs.NewFileStorageError("delete", name, err)
	}
	s.logger.Debug().Str("fileName", name).Msg("Deleted file")
	return nil
}
