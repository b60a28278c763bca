package api

import (
	"net/http"

	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rpupo63/diaver-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects lists projects, optionally filtered by ?category=
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.projectRepo.FindByCategory(r.URL.Query().Get("category")))
	}
}

// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := int64Param(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.ProjectInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Add(input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Int64("projectId", project.ID).
			Str("admin", ctxGetAdmin(r.Context())).
			Msg("Project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, ProjectResponse{
			Success: true,
			Message: "Проект успешно создан",
			Project: *project,
		})
	}
}

// updateProject merges the JSON body into the stored project
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := int64Param(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch models.ProjectPatch
		if err := decodeJSON(w, r, &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Update(projectID, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Int64("projectId", project.ID).
			Str("admin", ctxGetAdmin(r.Context())).
			Msg("Project updated")
		h.responder.WriteJSON(w, ProjectResponse{
			Success: true,
			Message: "Проект успешно обновлен",
			Project: *project,
		})
	}
}

// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := int64Param(r, "projectID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Int64("projectId", projectID).
			Str("admin", ctxGetAdmin(r.Context())).
			Msg("Project deleted")
		h.responder.WriteJSON(w, MessageResponse{
			Success: true,
			Message: "Проект успешно удален",
		})
	}
}
