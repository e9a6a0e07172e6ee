package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"projectvote/internal/models"
	"projectvote/internal/services"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// Details handles GET /vote/{token}: the application summary and vote
// options for a valid, unused token.
func (h *VoteHandler) Details(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	vote, err := services.VoteDetails(token)
	if err != nil {
		writeTokenError(w, err)
		return
	}

	app := vote.Application
	attachments := make([]attachmentOut, 0, len(app.Attachments))
	for _, att := range app.Attachments {
		attachments = append(attachments, attachmentOut{ID: att.ID, Filename: att.Filename})
	}

	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"voter_email": vote.VoterEmail,
		"application": map[string]interface{}{
			"id":                  app.ID,
			"project_title":       app.ProjectTitle,
			"project_description": app.ProjectDescription,
			"costs":               app.Costs,
			"department":          app.Department,
			"attachments":         attachments,
		},
		"vote_options": models.VoteOptions(),
	})
}

type castRequest struct {
	Decision string `json:"decision"`
}

// Cast handles POST /vote/{token}: records the decision and re-runs the
// outcome resolver.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req castRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	decision, ok := models.ParseVoteOption(req.Decision)
	if !ok {
		ErrorResponse(w, http.StatusBadRequest, "Decision must be approve, reject or abstain.")
		return
	}

	if err := services.CastVote(token, decision); err != nil {
		writeTokenError(w, err)
		return
	}

	JSONResponse(w, http.StatusOK, map[string]string{"message": "Vote cast successfully"})
}
