package api

import (
	"time"

	"github.com/rpupo63/diaver-site-backend/auth"
	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rpupo63/diaver-site-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, deps Dependencies, settings routerSettings) *routeHandlers {
	return &routeHandlers{
		projectHandler:      newProjectHandler(database.ProjectRepo()),
		presentationHandler: newPresentationHandler(database.PresentationRepo(), deps.Files, settings.maxUploadBytes),
		leadHandler:         newLeadHandler(database.LeadRepo(), deps.Notifier),
		adminHandler:        newAdminHandler(deps.Authenticator, database),
		healthHandler:       newHealthHandler(database, settings.startupTime),
		pageHandler:         newPageHandler(settings.frontendDir),
	}
}

// Dependencies are the collaborators the API needs besides the database.
type Dependencies struct {
	Files         storage.FileStore
	Notifier      leadNotifier
	Authenticator *auth.Authenticator
}

type routerSettings struct {
	startupTime     time.Time
	frontendDir     string
	maxUploadBytes  int64
	requireAuth     bool
	acceptedOrigins []string
}
