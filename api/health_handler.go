package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rs/zerolog/log"
)

type healthHandler struct {
	responder   Responder
	database    database.Database
	startupTime time.Time
}

func newHealthHandler(database database.Database, startupTime time.Time) healthHandler {
	return healthHandler{
		responder:   NewResponder(log.With().Str("handlerName", "healthHandler").Logger()),
		database:    database,
		startupTime: startupTime,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		total, _ := h.database.ProjectRepo().Counts()
		h.responder.WriteJSON(w, HealthResponse{
			Status:        "ok",
			Uptime:        time.Since(h.startupTime).Round(time.Second).String(),
			StartedAt:     h.startupTime.UTC().Format(time.RFC3339),
			Projects:      total,
			Leads:         h.database.LeadRepo().Stats().Total,
			Presentations: h.database.PresentationRepo().Count(),
		})
	}
}
