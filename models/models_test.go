package models

import (
	"testing"
	"time"

	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProjectApply(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewProject(7, ProjectInput{Title: "A", Description: "D", Category: "c", Client: "X"}, created)

	techs := []string{"go", "sql"}
	p.Apply(ProjectPatch{Title: strPtr("B"), Technologies: &techs}, created.Add(time.Hour))

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "B", p.Title)
	assert.Equal(t, "X", p.Client)
	assert.Equal(t, techs, p.Technologies)
	assert.Equal(t, []string{}, p.Results)
	assert.Equal(t, created, p.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), p.UpdatedAt)

	t.Run("updatedAt never moves back", func(t *testing.T) {
		p.Apply(ProjectPatch{}, created)
		assert.Equal(t, created.Add(time.Hour), p.UpdatedAt)
	})
}

func TestProjectInputValidate(t *testing.T) {
	err := ProjectInput{Title: "A"}.Validate()
	require.Error(t, err)
	assert.True(t, errs.IsMissingRequiredFieldError(err))
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "category")

	assert.NoError(t, ProjectInput{Title: "A", Description: "B", Category: "C"}.Validate())
}

func TestParseLeadStatus(t *testing.T) {
	s, err := ParseLeadStatus(" Completed ")
	require.NoError(t, err)
	assert.Equal(t, LeadStatusCompleted, s)

	_, err = ParseLeadStatus("done")
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestNewLeadDefaultsStatus(t *testing.T) {
	now := time.Now()
	l := NewLead(1, LeadInput{Name: " Ivan ", Email: "i@x.ru", Message: "m"}, now)
	assert.Equal(t, LeadStatusNew, l.Status)
	assert.Equal(t, "Ivan", l.Name)
	assert.Equal(t, now, l.Date)
}

func TestCountLeads(t *testing.T) {
	stats := CountLeads([]Lead{{Status: LeadStatusNew}, {Status: LeadStatusNew}, {Status: LeadStatusProcessed}})
	assert.Equal(t, LeadStats{Total: 3, New: 2, Processed: 1}, stats)
}

func TestFormBool(t *testing.T) {
	assert.True(t, FormBool("true"))
	for _, v := range []string{"True", "1", "on", "", "false"} {
		assert.False(t, FormBool(v), v)
	}
}

func TestPresentationApply(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPresentation("deck", PresentationInput{Title: "Deck", Category: "business", Description: "old"},
		StoredFile{Name: "1.pdf", Path: "/assets/presentations/1.pdf"}, now)

	replaced := p.Apply(PresentationPatch{Description: strPtr("  "), Duration: strPtr("45 минут")}, now.Add(time.Minute))
	assert.Empty(t, replaced)
	assert.Equal(t, "old", p.Description)
	assert.Equal(t, "45 минут", p.Duration)

	replaced = p.Apply(PresentationPatch{File: &StoredFile{Name: "2.pdf", Path: "/assets/presentations/2.pdf"}}, now.Add(time.Hour))
	assert.Equal(t, "1.pdf", replaced)
	assert.Equal(t, "2.pdf", p.FileName)
	assert.Equal(t, "/assets/presentations/2.pdf", p.File)
	assert.Equal(t, "deck", p.ID)
	assert.Equal(t, now, p.CreatedAt)
}

func TestPresentationsDocument(t *testing.T) {
	doc := NewPresentationsDocument()
	assert.False(t, doc.AddCategory("business"))
	assert.True(t, doc.AddCategory("healthcare"))
	assert.False(t, doc.AddCategory("healthcare"))
	assert.Equal(t, "healthcare", doc.Categories[len(doc.Categories)-1])

	var legacy PresentationsDocument
	legacy.Normalize()
	assert.NotNil(t, legacy.Presentations)
	assert.Equal(t, DefaultAllowedFormats, legacy.Settings.Formats())
	assert.Equal(t, "/assets/presentations/x.pdf", legacy.Settings.PathFor("x.pdf"))
}
