package api

import "github.com/rpupo63/diaver-site-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler      projectHandler
	presentationHandler presentationHandler
	leadHandler         leadHandler
	adminHandler        adminHandler
	healthHandler       healthHandler
	pageHandler         pageHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
	Cause   string `json:"cause,omitempty"`
}

// MessageResponse is returned by deletes and other body-less mutations.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ProjectResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Project models.Project `json:"project"`
}

type PresentationResponse struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message"`
	Presentation models.Presentation `json:"presentation"`
}

type LeadResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Lead    models.Lead `json:"lead"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type LeadStatusRequest struct {
	Status string `json:"status"`
}

// StatsResponse feeds the admin dashboard counters.
type StatsResponse struct {
	models.LeadStats
	TotalProjects      int `json:"totalProjects"`
	FeaturedProjects   int `json:"featuredProjects"`
	TotalPresentations int `json:"totalPresentations"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	StartedAt     string `json:"startedAt"`
	Projects      int    `json:"projects"`
	Leads         int    `json:"leads"`
	Presentations int    `json:"presentations"`
}
