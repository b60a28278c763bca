package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/diaver-site-backend/auth"
	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type adminHandler struct {
	responder     Responder
	logger        zerolog.Logger
	authenticator *auth.Authenticator
	database      database.Database
}

func newAdminHandler(authenticator *auth.Authenticator, database database.Database) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		authenticator: authenticator,
		database:      database,
	}
}

// login exchanges the admin username and password for a bearer token.
// @Router /api/admin/login [post]
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, expiresAt, err := h.authenticator.Login(req.Username, req.Password)
		if err != nil {
			h.logger.Warn().Str("username", req.Username).Str("remote_addr", r.RemoteAddr).Msg("Failed admin login")
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("username", req.Username).Msg("Admin logged in")
		h.responder.WriteJSON(w, LoginResponse{
			Success:   true,
			Message:   "Успешный вход",
			Token:     token,
			ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		})
	}
}

// @Router /api/admin/stats [get]
func (h adminHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totalProjects, featuredProjects := h.database.ProjectRepo().Counts()
		h.responder.WriteJSON(w, StatsResponse{
			LeadStats:          h.database.LeadRepo().Stats(),
			TotalProjects:      totalProjects,
			FeaturedProjects:   featuredProjects,
			TotalPresentations: h.database.PresentationRepo().Count(),
		})
	}
}
