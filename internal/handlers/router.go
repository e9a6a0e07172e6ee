package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"projectvote/internal/config"
)

func NewRouter(cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	applicationHandler := NewApplicationHandler(cfg)
	voteHandler := NewVoteHandler()
	attachmentHandler := NewAttachmentHandler(cfg)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		JSONResponse(w, http.StatusOK, map[string]string{
			"message": "Welcome to the Funding Application API",
		})
	})

	r.Post("/applications", applicationHandler.Submit)
	r.Get("/applications/archive", applicationHandler.Archive)

	r.Get("/vote/{token}", voteHandler.Details)
	r.Post("/vote/{token}", voteHandler.Cast)
	r.Get("/vote/{token}/attachments/{id}", attachmentHandler.ByToken)

	r.Get("/attachments/{id}", attachmentHandler.ByID)

	return r
}
