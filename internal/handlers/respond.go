package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"projectvote/pkg/apperrors"
)

func JSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func ErrorResponse(w http.ResponseWriter, status int, detail string) {
	JSONResponse(w, status, map[string]string{"detail": detail})
}

// writeTokenError maps the vote-flow error taxonomy onto HTTP. Unknown,
// foreign and malformed tokens all surface the same generic 404 so the
// response never reveals which tokens exist.
func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrTokenNotFound):
		ErrorResponse(w, http.StatusNotFound, "Invalid or expired token.")
	case errors.Is(err, apperrors.ErrAlreadyCast):
		ErrorResponse(w, http.StatusBadRequest, "This vote has already been cast.")
	case errors.Is(err, apperrors.ErrAttachmentNotFound):
		ErrorResponse(w, http.StatusNotFound, "Attachment not found.")
	default:
		log.Errorf("vote request failed: %v", err)
		ErrorResponse(w, http.StatusInternalServerError, "Internal server error.")
	}
}
