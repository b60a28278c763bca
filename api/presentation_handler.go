package api

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/diaver-site-backend/database"
	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rpupo63/diaver-site-backend/models"
	"github.com/rpupo63/diaver-site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// multipart overhead allowed on top of the file size limit
const formOverheadBytes = 1 << 20

type presentationHandler struct {
	responder        Responder
	logger           zerolog.Logger
	presentationRepo *database.PresentationRepo
	files            storage.FileStore
	maxUploadBytes   int64
}

func newPresentationHandler(presentationRepo *database.PresentationRepo, files storage.FileStore, maxUploadBytes int64) presentationHandler {
	logger := log.With().Str("handlerName", "presentationHandler").Logger()

	return presentationHandler{
		responder:        NewResponder(logger),
		logger:           logger,
		presentationRepo: presentationRepo,
		files:            files,
		maxUploadBytes:   maxUploadBytes,
	}
}

func (h presentationHandler) getAllPresentations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.presentationRepo.FindAll())
	}
}

func (h presentationHandler) getPresentation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presentation, err := h.presentationRepo.FindByID(chi.URLParam(r, "presentationID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, presentation)
	}
}

func (h presentationHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.presentationRepo.Categories())
	}
}

// createPresentation accepts a multipart form with a required "file" part.
func (h presentationHandler) createPresentation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.parseForm(w, r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		input := models.PresentationInput{
			Title:       r.FormValue("title"),
			Description: r.FormValue("description"),
			Category:    r.FormValue("category"),
			Duration:    r.FormValue("duration"),
			Featured:    r.FormValue("featured"),
		}

		file, header, err := h.uploadedFile(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if file == nil {
			h.responder.WriteError(w, errs.NewUploadMissingError())
			return
		}
		defer file.Close()

		if err := input.Validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		stored, err := h.store(r, file, header)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		presentation, err := h.presentationRepo.Add(r.Context(), input, stored)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("presentationId", presentation.ID).
			Str("fileName", presentation.FileName).
			Str("admin", ctxGetAdmin(r.Context())).
			Msg("Presentation created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, PresentationResponse{
			Success:      true,
			Message:      "Презентация успешно создана",
			Presentation: *presentation,
		})
	}
}

// updatePresentation merges the submitted form fields; a "file" part replaces the binary.
func (h presentationHandler) updatePresentation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presentationID := chi.URLParam(r, "presentationID")
		if _, err := h.presentationRepo.FindByID(presentationID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.parseForm(w, r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		patch := models.PresentationPatch{
			Title:       formField(r, "title"),
			Description: formField(r, "description"),
			Category:    formField(r, "category"),
			Duration:    formField(r, "duration"),
			Featured:    checkboxField(r, "featured"),
		}

		file, header, err := h.uploadedFile(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if file != nil {
			defer file.Close()
			stored, err := h.store(r, file, header)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			patch.File = &stored
		}

		presentation, err := h.presentationRepo.Update(r.Context(), presentationID, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("presentationId", presentation.ID).
			Bool("fileReplaced", patch.File != nil).
			Str("admin", ctxGetAdmin(r.Context())).
			Msg("Presentation updated")
		h.responder.WriteJSON(w, PresentationResponse{
			Success:      true,
			Message:      "Презентация успешно обновлена",
			Presentation: *presentation,
		})
	}
}

func (h presentationHandler) deletePresentation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presentation, err := h.presentationRepo.Delete(r.Context(), chi.URLParam(r, "presentationID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("presentationId", presentation.ID).
			Str("admin", ctxGetAdmin(r.Context())).
			Msg("Presentation deleted")
		h.responder.WriteJSON(w, MessageResponse{
			Success: true,
			Message: "Презентация успешно удалена",
		})
	}
}

func (h presentationHandler) requestDemo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presentation, err := h.presentationRepo.RecordDemoRequest(chi.URLParam(r, "presentationID"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, PresentationResponse{
			Success:      true,
			Message:      "Запрос демонстрации принят",
			Presentation: *presentation,
		})
	}
}

// serveFile streams a stored presentation binary.
func (h presentationHandler) serveFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "fileName")
		rc, err := h.files.Open(r.Context(), name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", storage.ContentType(name))
		if _, err := io.Copy(w, rc); err != nil {
			h.logger.Warn().Err(err).Str("fileName", name).Msg("Failed to stream presentation file")
		}
	}
}

// parseForm reads a multipart or urlencoded body, enforcing the upload limit.
func (h presentationHandler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+formOverheadBytes)

	err := r.ParseMultipartForm(32 << 20)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errs.NewUploadTooLargeError(h.maxUploadBytes)
		}
		return errs.NewMalformedPayloadError("presentation form", err)
	}
	return nil
}

// uploadedFile returns the "file" part, or nil when none was sent. Size and
// extension are checked before anything is written.
func (h presentationHandler) uploadedFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, errs.NewMalformedPayloadError("presentation file", err)
	}

	if header.Size > h.maxUploadBytes {
		file.Close()
		return nil, nil, errs.NewUploadTooLargeError(h.maxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := h.presentationRepo.Settings().Formats()
	if !extensionAllowed(allowed, ext) {
		file.Close()
		return nil, nil, errs.NewUploadExtensionError(ext, allowed)
	}
	return file, header, nil
}

func (h presentationHandler) store(r *http.Request, file multipart.File, header *multipart.FileHeader) (models.StoredFile, error) {
	name := storage.NewFileName(header.Filename)
	if err := h.files.Save(r.Context(), name, file); err != nil {
		return models.StoredFile{}, err
	}
	return models.StoredFile{
		Name: name,
		Path: h.presentationRepo.Settings().PathFor(name),
	}, nil
}

func extensionAllowed(allowed []string, ext string) bool {
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}

// checkboxField reads a checkbox value. Browsers omit unchecked boxes, so a
// missing key means "" and clears the flag.
func checkboxField(r *http.Request, key string) *string {
	if v := formField(r, key); v != nil {
		return v
	}
	unchecked := ""
	return &unchecked
}

// formField returns a pointer to a submitted form value, or nil when the key is absent.
func formField(r *http.Request, key string) *string {
	values, ok := r.PostForm[key]
	if !ok && r.MultipartForm != nil {
		values, ok = r.MultipartForm.Value[key]
	}
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
