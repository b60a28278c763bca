package database

import (
	"context"
	"time"

	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rpupo63/diaver-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileRemover deletes stored presentation binaries by their storage name.
type FileRemover interface {
	Delete(ctx context.Context, name string) error
}

type PresentationRepo struct {
	collection *Collection[models.PresentationsDocument]
	files      FileRemover
	now        func() time.Time
	logger     zerolog.Logger
}

func NewPresentationRepo(path string, files FileRemover) *PresentationRepo {
	return &PresentationRepo{
		collection: NewCollection("presentations", path, models.NewPresentationsDocument),
		files:      files,
		now:        time.Now,
		logger:     log.With().Str("component", "presentationRepo").Logger(),
	}
}

func (r *PresentationRepo) load() models.PresentationsDocument {
	doc := r.collection.Load()
	doc.Normalize()
	return doc
}

func (r *PresentationRepo) update(fn func(doc *models.PresentationsDocument) error) error {
	return r.collection.Update(func(doc *models.PresentationsDocument) error {
		doc.Normalize()
		return fn(doc)
	})
}

// FindAll returns every presentation ordered by creation time.
func (r *PresentationRepo) FindAll() []models.Presentation {
	return r.load().Sorted()
}

// FindByID returns a presentation by its slug
func (r *PresentationRepo) FindByID(id string) (*models.Presentation, error) {
	p, ok := r.load().Presentations[id]
	if !ok {
		return nil, errs.NewNotFound("presentation", id)
	}
	return &p, nil
}

// Categories returns the known categories in insertion order.
func (r *PresentationRepo) Categories() []string {
	return r.load().Categories
}

// Settings returns the read-only settings block of the document.
func (r *PresentationRepo) Settings() models.PresentationSettings {
	return r.load().Settings
}

// Count returns the number of stored presentations.
func (r *PresentationRepo) Count() int {
	return len(r.load().Presentations)
}

// Add stores a presentation under the slug of its title. An existing
// presentation with the same slug is replaced and its binary deleted.
// If the document cannot be written the new binary is deleted instead.
func (r *PresentationRepo) Add(ctx context.Context, in models.PresentationInput, file models.StoredFile) (*models.Presentation, error) {
	if err := in.Validate(); err != nil {
		r.removeFile(ctx, file.Name)
		return nil, err
	}
	id := Slugify(in.Title)
	if id == "" {
		r.removeFile(ctx, file.Name)
		return nil, errs.NewInvalidFieldError("title", "must contain at least one letter or digit")
	}

	var (
		created  models.Presentation
		replaced string
	)
	err := r.update(func(doc *models.PresentationsDocument) error {
		if prev, ok := doc.Presentations[id]; ok && prev.FileName != file.Name {
			replaced = prev.FileName
		}
		created = models.NewPresentation(id, in, file, r.now())
		doc.Presentations[id] = created
		if doc.AddCategory(created.Category) {
			r.logger.Info().Str("category", created.Category).Msg("Added presentation category")
		}
		return nil
	})
	if err != nil {
		r.removeFile(ctx, file.Name)
		return nil, err
	}

	if replaced != "" {
		r.logger.Warn().Str("id", id).Msg("Presentation with the same slug was overwritten")
		r.removeFile(ctx, replaced)
	}
	return &created, nil
}

// Update merges patch into the stored presentation. The slug never changes,
// even when the title does. A replaced binary is deleted after the write.
func (r *PresentationRepo) Update(ctx context.Context, id string, patch models.PresentationPatch) (*models.Presentation, error) {
	var (
		updated  models.Presentation
		replaced string
	)
	err := r.update(func(doc *models.PresentationsDocument) error {
		p, ok := doc.Presentations[id]
		if !ok {
			return errs.NewNotFound("presentation", id)
		}
		replaced = p.Apply(patch, r.now())
		if patch.Title != nil && *patch.Title != "" {
			p.DownloadName = p.Title + models.DownloadNameSuffix
		}
		doc.Presentations[id] = p
		doc.AddCategory(p.Category)
		updated = p
		return nil
	})
	if err != nil {
		if patch.File != nil {
			r.removeFile(ctx, patch.File.Name)
		}
		return nil, err
	}

	if replaced != "" {
		r.removeFile(ctx, replaced)
	}
	return &updated, nil
}

// Delete removes the presentation and then its binary. Categories are kept.
func (r *PresentationRepo) Delete(ctx context.Context, id string) (*models.Presentation, error) {
	var removed models.Presentation
	err := r.update(func(doc *models.PresentationsDocument) error {
		p, ok := doc.Presentations[id]
		if !ok {
			return errs.NewNotFound("presentation", id)
		}
		removed = p
		delete(doc.Presentations, id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.removeFile(ctx, removed.FileName)
	return &removed, nil
}

// RecordDemoRequest increments the demo request counter of a presentation.
func (r *PresentationRepo) RecordDemoRequest(id string) (*models.Presentation, error) {
	var updated models.Presentation
	err := r.update(func(doc *models.PresentationsDocument) error {
		p, ok := doc.Presentations[id]
		if !ok {
			return errs.NewNotFound("presentation", id)
		}
		p.DemoRequests++
		doc.Presentations[id] = p
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// removeFile deletes a binary; failures leave an orphan and are only logged.
func (r *PresentationRepo) removeFile(ctx context.Context, name string) {
	if name == "" || r.files == nil {
		return
	}
	if err := r.files.Delete(ctx, name); err != nil {
		r.logger.Error().Err(err).Str("fileName", name).Msg("Failed to delete presentation file")
	}
}
