package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"projectvote/internal/config"
	"projectvote/internal/models"
	"projectvote/internal/repositories"
	"projectvote/internal/services"
	"projectvote/pkg/apperrors"
)

type AttachmentHandler struct {
	cfg *config.Config
}

func NewAttachmentHandler(cfg *config.Config) *AttachmentHandler {
	return &AttachmentHandler{cfg: cfg}
}

// ByToken handles GET /vote/{token}/attachments/{id}: streams the file if
// the token is valid and the attachment belongs to its application.
func (h *AttachmentHandler) ByToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	attachmentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeTokenError(w, apperrors.ErrAttachmentNotFound)
		return
	}

	att, err := repositories.AttachmentForToken(token, attachmentID)
	if err != nil {
		writeTokenError(w, err)
		return
	}

	h.stream(w, r, att)
}

// ByID handles GET /attachments/{id}: archive-side streaming without a
// token.
func (h *AttachmentHandler) ByID(w http.ResponseWriter, r *http.Request) {
	attachmentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeTokenError(w, apperrors.ErrAttachmentNotFound)
		return
	}

	att, err := repositories.AttachmentByID(attachmentID)
	if err != nil {
		writeTokenError(w, err)
		return
	}

	h.stream(w, r, att)
}

func (h *AttachmentHandler) stream(w http.ResponseWriter, r *http.Request, att *models.Attachment) {
	path, err := services.AttachmentPath(h.cfg.UploadDir, att)
	if err != nil {
		writeTokenError(w, err)
		return
	}

	w.Header().Set("Content-Type", att.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
	http.ServeFile(w, r, path)
}
