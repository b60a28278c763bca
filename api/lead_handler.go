package api

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rpupo63/diaver-site-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 30 * time.Second

// leadNotifier tells staff about a new lead.
type leadNotifier interface {
	NotifyLead(ctx context.Context, lead models.Lead) error
}

type leadHandler struct {
	responder Responder
	logger    zerolog.Logger
	leadRepo  *database.LeadRepo
	notifier  leadNotifier
}

func newLeadHandler(leadRepo *database.LeadRepo, notifier leadNotifier) leadHandler {
	logger := log.With().Str("handlerName", "leadHandler").Logger()

	return leadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		leadRepo:  leadRepo,
		notifier:  notifier,
	}
}

// submitContact stores a contact form submission as a new lead.
// Staff notification runs after the response and never fails the request.
// @Router /api/contact [post]
func (h leadHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input models.LeadInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		lead, err := h.leadRepo.Add(scrubLeadInput(input))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Int64("leadId", lead.ID).Msg("Lead received")
		if h.notifier != nil {
			ctx := context.WithoutCancel(r.Context())
			go h.notify(ctx, *lead)
		}

		h.responder.WriteJSON(w, MessageResponse{
			Success: true,
			Message: "Заявка успешно отправлена!",
		})
	}
}

func (h leadHandler) notify(ctx context.Context, lead models.Lead) {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	if err := h.notifier.NotifyLead(ctx, lead); err != nil {
		h.logger.Error().Err(err).Int64("leadId", lead.ID).Msg("Lead notification failed")
	}
}

// getAllLeads lists leads, optionally filtered by ?status=
// @Router /api/admin/leads [get]
func (h leadHandler) getAllLeads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status models.LeadStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := models.ParseLeadStatus(raw)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			status = parsed
		}
		h.responder.WriteJSON(w, h.leadRepo.FindByStatus(status))
	}
}

// @Router /api/admin/leads/{leadID} [put]
func (h leadHandler) updateLeadStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leadID, err := int64Param(r, "leadID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req LeadStatusRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		status, err := models.ParseLeadStatus(req.Status)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		lead, err := h.leadRepo.UpdateStatus(leadID, status)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Int64("leadId", lead.ID).
			Str("status", string(lead.Status)).
			Str("admin", ctxGetAdmin(r.Context())).
			Msg("Lead status updated")
		h.responder.WriteJSON(w, LeadResponse{
			Success: true,
			Message: "Статус заявки обновлен",
			Lead:    *lead,
		})
	}
}

// @Router /api/admin/leads/{leadID} [delete]
func (h leadHandler) deleteLead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leadID, err := int64Param(r, "leadID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.leadRepo.Delete(leadID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Int64("leadId", leadID).
			Str("admin", ctxGetAdmin(r.Context())).
			Msg("Lead deleted")
		h.responder.WriteJSON(w, MessageResponse{
			Success: true,
			Message: "Заявка удалена",
		})
	}
}

var leadCSVHeader = []string{"ID", "Имя", "Email", "Телефон", "Компания", "Услуга", "Сообщение", "Дата", "Статус"}

// exportLeads downloads every lead as CSV.
// @Router /api/admin/leads/export [get]
func (h leadHandler) exportLeads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leads := h.leadRepo.FindAll()

		filename := fmt.Sprintf("leads_%s.csv", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

		// BOM so spreadsheet apps detect UTF-8
		if _, err := w.Write([]byte("\xef\xbb\xbf")); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to write leads export")
			return
		}

		cw := csv.NewWriter(w)
		rows := make([][]string, 0, len(leads)+1)
		rows = append(rows, leadCSVHeader)
		for _, l := range leads {
			rows = append(rows, []string{
				strconv.FormatInt(l.ID, 10),
				l.Name,
				l.Email,
				l.Phone,
				l.Company,
				l.Service,
				l.Message,
				l.Date.Format(time.RFC3339),
				string(l.Status),
			})
		}
		if err := cw.WriteAll(rows); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to write leads export")
		}
	}
}
