package models

import (
	"strings"
	"time"

	"github.com/rpupo63/diaver-site-backend/errs"
)

// DefaultProjectImage is used when a project is created without an image.
const DefaultProjectImage = "/assets/images/default.jpg"

// Project represents a portfolio case shown on the solutions page
type Project struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Client       string    `json:"client"`
	Duration     string    `json:"duration"`
	Technologies []string  `json:"technologies"`
	Image        string    `json:"image"`
	Results      []string  `json:"results"`
	Featured     bool      `json:"featured"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProjectInput is the payload accepted when creating a project.
type ProjectInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Client       string   `json:"client"`
	Duration     string   `json:"duration"`
	Technologies []string `json:"technologies"`
	Image        string   `json:"image"`
	Results      []string `json:"results"`
	Featured     bool     `json:"featured"`
}

// Validate checks the fields required at creation time.
func (in ProjectInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
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

// NewProject builds a project from a validated input.
func NewProject(id int64, in ProjectInput, now time.Time) Project {
	image := in.Image
	if image == "" {
		image = DefaultProjectImage
	}

	return Project{
		ID:           id,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Category:     strings.TrimSpace(in.Category),
		Client:       in.Client,
		Duration:     in.Duration,
		Technologies: nonNil(in.Technologies),
		Image:        image,
		Results:      nonNil(in.Results),
		Featured:     in.Featured,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ProjectPatch lists the project fields an update may touch. A nil field
// leaves the stored value unchanged; id and createdAt are not patchable.
type ProjectPatch struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	Client       *string   `json:"client"`
	Duration     *string   `json:"duration"`
	Technologies *[]string `json:"technologies"`
	Image        *string   `json:"image"`
	Results      *[]string `json:"results"`
	Featured     *bool     `json:"featured"`
}

// Validate rejects patches that would blank a required field.
func (p ProjectPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errs.NewInvalidFieldError("title", "must not be empty")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return errs.NewInvalidFieldError("description", "must not be empty")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return errs.NewInvalidFieldError("category", "must not be empty")
	}
	return nil
}

// Apply merges the patch into the project and refreshes UpdatedAt.
func (p *Project) Apply(patch ProjectPatch, now time.Time) {
	setString(&p.Title, patch.Title)
	setString(&p.Description, patch.Description)
	setString(&p.Category, patch.Category)
	setString(&p.Client, patch.Client)
	setString(&p.Duration, patch.Duration)
	setString(&p.Image, patch.Image)
	if patch.Technologies != nil {
		p.Technologies = nonNil(*patch.Technologies)
	}
	if patch.Results != nil {
		p.Results = nonNil(*patch.Results)
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	p.UpdatedAt = laterOf(p.UpdatedAt, now)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// laterOf keeps UpdatedAt from moving backwards when the wall clock does.
func laterOf(prev, now time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}
