package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Collection is a whole-document JSON store: every read loads the full file
// and every mutation rewrites it. The mutex serialises load+mutate+save cycles
// inside this process only; other processes writing the same file still race.
type Collection[T any] struct {
	mu     sync.Mutex
	name   string
	path   string
	empty  func() T
	logger zerolog.Logger
}

// NewCollection returns a collection stored at path. empty builds the
// document used when the file is missing or unreadable.
func NewCollection[T any](name, path string, empty func() T) *Collection[T] {
	return &Collection[T]{
		name:   name,
		path:   path,
		empty:  empty,
		logger: log.With().Str("component", "collection").Str("collection", name).Logger(),
	}
}

// Load returns the full document. A missing file is initialised with the
// empty default; a corrupt file is backed up once and reset to the default.
func (c *Collection[T]) Load() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Save overwrites the file with doc. The write is not atomic.
func (c *Collection[T]) Save(doc T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(doc)
}

// Update runs one load, mutate, save cycle under the collection lock.
// When fn returns an error nothing is written.
func (c *Collection[T]) Update(fn func(doc *T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := c.load()
	if err := fn(&doc); err != nil {
		return err
	}
	return c.write(doc)
}

func (c *Collection[T]) load() T {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		c.logger.Error().Err(err).Str("path", c.path).Msg("Failed to create data directory")
		return c.empty()
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			doc := c.empty()
			if werr := c.write(doc); werr != nil {
				c.logger.Error().Err(werr).Str("path", c.path).Msg("Failed to initialise collection file")
			} else {
				c.logger.Info().Str("path", c.path).Msg("Initialised collection file")
			}
			return doc
		}
		c.logger.Error().
			Err(errs.NewStorageUnavailableError(c.name, err)).
			Str("path", c.path).
			Msg("Failed to read collection file, serving empty default")
		return c.empty()
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		backup := c.backup(data)
		c.logger.Error().
			Err(errs.NewStorageUnavailableError(c.name, err)).
			Str("path", c.path).
			Str("backup", backup).
			Msg("Collection file is corrupt, resetting to empty default")
		doc := c.empty()
		// without a backup the corrupt content stays in place for the next write
		if backup != "" {
			if werr := c.write(doc); werr != nil {
				c.logger.Error().Err(werr).Str("path", c.path).Msg("Failed to reset corrupt collection file")
			}
		}
		return doc
	}
	return doc
}

// backup copies unreadable content next to the original so the reset to the
// empty default does not lose it for good.
func (c *Collection[T]) backup(data []byte) string {
	backupPath := fmt.Sprintf("%s.corrupt-%d", c.path, time.Now().UnixNano())
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		c.logger.Error().Err(err).Str("path", backupPath).Msg("Failed to back up corrupt collection file")
		return ""
	}
	return backupPath
}

func (c *Collection[T]) write(doc T) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return errs.NewStorageWriteError(c.name, err)
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errs.NewStorageWriteError(c.name, err)
	}

	if err := os.WriteFile(c.path, b, 0o644); err != nil {
		c.logger.Error().Err(err).Str("path", c.path).Msg("Failed to write collection file")
		return errs.NewStorageWriteError(c.name, err)
	}
	return nil
}
