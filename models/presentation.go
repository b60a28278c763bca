package models

import (
	"sort"
	"strings"
	"time"

	"github.com/rpupo63/diaver-site-backend/errs"
)

const (
	// DefaultPresentationDuration is shown when no duration is supplied.
	DefaultPresentationDuration = "30 минут"
	// DownloadNameSuffix is appended to the title to build the download name.
	DownloadNameSuffix = "-ДИАВЕР.pdf"
	// DefaultUploadPath is the public path prefix of uploaded presentations.
	DefaultUploadPath = "/assets/presentations/"
)

// DefaultCategories seeds the category list of a fresh presentations document.
var DefaultCategories = []string{"accounting", "government", "business", "finance", "education"}

// DefaultAllowedFormats lists the upload extensions accepted by default.
var DefaultAllowedFormats = []string{".pdf", ".pptx", ".ppt"}

// Presentation is a downloadable product presentation
type Presentation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	File         string    `json:"file"`
	FileName     string    `json:"fileName"`
	DownloadName string    `json:"downloadName"`
	Category     string    `json:"category"`
	Duration     string    `json:"duration"`
	Featured     bool      `json:"featured"`
	DemoRequests int       `json:"demoRequests"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PresentationSettings is read-only configuration embedded in the document.
type PresentationSettings struct {
	UploadPath     string   `json:"uploadPath,omitempty"`
	AllowedFormats []string `json:"allowedFormats,omitempty"`
}

// PathFor returns the public path of a stored file name.
func (s PresentationSettings) PathFor(fileName string) string {
	prefix := s.UploadPath
	if prefix == "" {
		prefix = DefaultUploadPath
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix + fileName
}

// Formats returns the allowed extensions, falling back to the defaults.
func (s PresentationSettings) Formats() []string {
	if len(s.AllowedFormats) == 0 {
		return DefaultAllowedFormats
	}
	return s.AllowedFormats
}

// PresentationsDocument is the persisted presentations file: presentations
// keyed by slug, the shared category list and settings.
type PresentationsDocument struct {
	Presentations map[string]Presentation `json:"presentations"`
	Categories    []string                `json:"categories"`
	Settings      PresentationSettings    `json:"settings"`
}

// NewPresentationsDocument returns the document written for a missing file.
func NewPresentationsDocument() PresentationsDocument {
	return PresentationsDocument{
		Presentations: map[string]Presentation{},
		Categories:    append([]string(nil), DefaultCategories...),
		Settings: PresentationSettings{
			UploadPath:     DefaultUploadPath,
			AllowedFormats: append([]string(nil), DefaultAllowedFormats...),
		},
	}
}

// Normalize fills nil containers left by a hand-edited or legacy file.
func (d *PresentationsDocument) Normalize() {
	if d.Presentations == nil {
		d.Presentations = map[string]Presentation{}
	}
	if d.Categories == nil {
		d.Categories = []string{}
	}
}

// Sorted returns the presentations ordered by creation time, then id.
func (d PresentationsDocument) Sorted() []Presentation {
	list := make([]Presentation, 0, len(d.Presentations))
	for _, p := range d.Presentations {
		list = append(list, p)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// AddCategory appends category unless it is already known. Reports whether it was added.
func (d *PresentationsDocument) AddCategory(category string) bool {
	if category == "" {
		return false
	}
	for _, c := range d.Categories {
		if c == category {
			return false
		}
	}
	d.Categories = append(d.Categories, category)
	return true
}

// FormBool normalises a form-encoded boolean: only the literal "true" is true.
func FormBool(raw string) bool {
	return raw == "true"
}

// PresentationInput carries the form fields of a new presentation.
type PresentationInput struct {
	Title       string
	Description string
	Category    string
	Duration    string
	Featured    string
}

// Validate checks the fields required at creation time.
func (in PresentationInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Category) == "" {
		missing = append(missing, "category")
	}

	switch len(missing) {
	case 0:
		return nil
	case 1:
		return errs.NewMissingRequiredFieldError(missing[0])
	default:
		return errs.NewMissingRequiredFieldsError(missing)
	}
}

// StoredFile describes an uploaded binary after it has been written.
type StoredFile struct {
	Name string // generated storage name
	Path string // public path served to clients
}

// NewPresentation builds a presentation for a validated input and stored file.
func NewPresentation(id string, in PresentationInput, file StoredFile, now time.Time) Presentation {
	title := strings.TrimSpace(in.Title)
	duration := in.Duration
	if duration == "" {
		duration = DefaultPresentationDuration
	}

	return Presentation{
		ID:           id,
		Title:        title,
		Description:  in.Description,
		File:         file.Path,
		FileName:     file.Name,
		DownloadName: title + DownloadNameSuffix,
		Category:     strings.TrimSpace(in.Category),
		Duration:     duration,
		Featured:     FormBool(in.Featured),
		DemoRequests: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// PresentationPatch lists the presentation fields an update may touch.
// Nil or empty text fields leave the stored value unchanged.
type PresentationPatch struct {
	Title       *string
	Description *string
	Category    *string
	Duration    *string
	Featured    *string
	File        *StoredFile
}

// Apply merges the patch and refreshes UpdatedAt. It returns the file name
// that was replaced, or "" when the binary did not change.
func (p *Presentation) Apply(patch PresentationPatch, now time.Time) (replaced string) {
	setNonEmpty(&p.Title, patch.Title)
	setNonEmpty(&p.Description, patch.Description)
	setNonEmpty(&p.Category, patch.Category)
	setNonEmpty(&p.Duration, patch.Duration)
	if patch.Featured != nil {
		p.Featured = FormBool(*patch.Featured)
	}
	if patch.File != nil {
		if p.FileName != patch.File.Name {
			replaced = p.FileName
		}
		p.File = patch.File.Path
		p.FileName = patch.File.Name
	}
	p.UpdatedAt = laterOf(p.UpdatedAt, now)
	return replaced
}

func setNonEmpty(dst *string, src *string) {
	if src != nil && strings.TrimSpace(*src) != "" {
		*dst = strings.TrimSpace(*src)
	}
}
