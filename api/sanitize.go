package api

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rpupo63/diaver-site-backend/models"
)

var strictPolicy = bluemonday.StrictPolicy()

// scrubText strips all markup from public free text and keeps it as plain text.
func scrubText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func scrubLeadInput(in models.LeadInput) models.LeadInput {
	return models.LeadInput{
		Name:    scrubText(in.Name),
		Email:   scrubText(in.Email),
		Phone:   scrubText(in.Phone),
		Company: scrubText(in.Company),
		Service: scrubText(in.Service),
		Message: scrubText(in.Message),
	}
}
