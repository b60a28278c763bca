package models

import (
	"strings"
	"time"

	"github.com/rpupo63/diaver-site-backend/errs"
)

// LeadStatus tracks how far a contact request has been handled.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusProcessed LeadStatus = "processed"
	LeadStatusCompleted LeadStatus = "completed"
)

// LeadStatuses lists every valid status in workflow order.
var LeadStatuses = []LeadStatus{LeadStatusNew, LeadStatusProcessed, LeadStatusCompleted}

// Valid reports whether s is one of the known statuses.
func (s LeadStatus) Valid() bool {
	for _, known := range LeadStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseLeadStatus validates a status coming from a request.
func ParseLeadStatus(raw string) (LeadStatus, error) {
	s := LeadStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", errs.NewInvalidFieldError("status", "must be one of new, processed, completed")
	}
	return s, nil
}

// Lead is a contact form submission
type Lead struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Phone   string     `json:"phone,omitempty"`
	Company string     `json:"company,omitempty"`
	Service string     `json:"service,omitempty"`
	Message string     `json:"message"`
	Date    time.Time  `json:"date"`
	Status  LeadStatus `json:"status"`
}

// LeadInput is the contact form payload.
type LeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Service string `json:"service"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Validate checks the fields required to accept a lead.
func (in LeadInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(in.Message) == "" {
		missing = append(missing, "message")
	}

	switch len(missing) {
	case 0:
	case 1:
		return errs.NewMissingRequiredFieldError(missing[0])
	default:
		return errs.NewMissingRequiredFieldsError(missing)
	}

	if !strings.Contains(in.Email, "@") {
		return errs.NewInvalidFieldError("email", "must be an email address")
	}
	if in.Status != "" {
		if _, err := ParseLeadStatus(in.Status); err != nil {
			return err
		}
	}
	return nil
}

// NewLead builds a lead from a validated input. Status defaults to new.
func NewLead(id int64, in LeadInput, now time.Time) Lead {
	status := LeadStatusNew
	if s, err := ParseLeadStatus(in.Status); err == nil {
		status = s
	}

	return Lead{
		ID:      id,
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Company: strings.TrimSpace(in.Company),
		Service: strings.TrimSpace(in.Service),
		Message: strings.TrimSpace(in.Message),
		Date:    now,
		Status:  status,
	}
}

// LeadStats summarises leads by status.
type LeadStats struct {
	Total     int `json:"totalLeads"`
	New       int `json:"newLeads"`
	Processed int `json:"processedLeads"`
	Completed int `json:"completedLeads"`
}

// CountLeads tallies leads per status.
func CountLeads(leads []Lead) LeadStats {
	stats := LeadStats{Total: len(leads)}
	for _, l := range leads {
		switch l.Status {
		case LeadStatusNew:
			stats.New++
		case LeadStatusProcessed:
			stats.Processed++
		case LeadStatusCompleted:
			stats.Completed++
		}
	}
	return stats
}
