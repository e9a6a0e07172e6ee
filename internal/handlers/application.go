package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"projectvote/internal/config"
	"projectvote/internal/models"
	"projectvote/internal/repositories"
	"projectvote/internal/services"
	"projectvote/pkg/apperrors"
)

type ApplicationHandler struct {
	cfg *config.Config
}

func NewApplicationHandler(cfg *config.Config) *ApplicationHandler {
	return &ApplicationHandler{cfg: cfg}
}

// Submit handles POST /applications: form-encoded fields plus an optional
// multipart file attachment.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseSubmission(r)
	if err != nil {
		ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	app, err := services.SubmitApplication(*input)
	if err != nil {
		if errors.Is(err, apperrors.ErrNegativeCosts) {
			ErrorResponse(w, http.StatusBadRequest, "Costs must not be negative.")
			return
		}
		log.Errorf("submitting application: %v", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to submit application.")
		return
	}

	JSONResponse(w, http.StatusOK, map[string]interface{}{
		"message":        "Application submitted successfully",
		"application_id": app.ID,
	})
}

func (h *ApplicationHandler) parseSubmission(r *http.Request) (*services.SubmitInput, error) {
	var attachment *services.AttachmentUpload

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, errors.New("invalid multipart form")
		}
		file, header, err := r.FormFile("attachment")
		if err == nil {
			defer file.Close()
			content, err := io.ReadAll(file)
			if err != nil {
				return nil, errors.New("failed to read attachment")
			}
			attachment = &services.AttachmentUpload{
				Filename: header.Filename,
				MimeType: header.Header.Get("Content-Type"),
				Content:  content,
			}
		} else if !errors.Is(err, http.ErrMissingFile) {
			return nil, errors.New("invalid attachment")
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, errors.New("invalid form data")
	}

	required := map[string]string{
		"first_name":          r.FormValue("first_name"),
		"last_name":           r.FormValue("last_name"),
		"applicant_email":     r.FormValue("applicant_email"),
		"department":          r.FormValue("department"),
		"project_title":       r.FormValue("project_title"),
		"project_description": r.FormValue("project_description"),
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return nil, errors.New(field + " is required")
		}
	}

	costs, err := strconv.ParseFloat(r.FormValue("costs"), 64)
	if err != nil {
		return nil, errors.New("costs must be a number")
	}

	return &services.SubmitInput{
		FirstName:          required["first_name"],
		LastName:           required["last_name"],
		ApplicantEmail:     required["applicant_email"],
		Department:         required["department"],
		ProjectTitle:       required["project_title"],
		ProjectDescription: required["project_description"],
		Costs:              costs,
		BoardMembers:       h.cfg.BoardMembers,
		Attachment:         attachment,
		UploadDir:          h.cfg.UploadDir,
		ReminderAfterHours: h.cfg.ReminderAfterHours,
	}, nil
}

type voteOut struct {
	VoterEmail string             `json:"voter_email"`
	Decision   *models.VoteOption `json:"decision"`
}

type attachmentOut struct {
	ID       int    `json:"id"`
	Filename string `json:"filename"`
}

type applicationOut struct {
	ID                 int                      `json:"id"`
	FirstName          string                   `json:"first_name"`
	LastName           string                   `json:"last_name"`
	ApplicantEmail     string                   `json:"applicant_email"`
	Department         string                   `json:"department"`
	ProjectTitle       string                   `json:"project_title"`
	ProjectDescription string                   `json:"project_description"`
	Costs              float64                  `json:"costs"`
	Status             models.ApplicationStatus `json:"status"`
	Votes              []voteOut                `json:"votes"`
	Attachments        []attachmentOut          `json:"attachments"`
}

// Archive handles GET /applications/archive: every application, newest
// first, with nested vote and attachment summaries.
func (h *ApplicationHandler) Archive(w http.ResponseWriter, r *http.Request) {
	apps, err := repositories.ArchiveApplications()
	if err != nil {
		log.Errorf("loading archive: %v", err)
		ErrorResponse(w, http.StatusInternalServerError, "Failed to load archive.")
		return
	}

	out := make([]applicationOut, 0, len(apps))
	for i := range apps {
		out = append(out, toApplicationOut(&apps[i]))
	}

	JSONResponse(w, http.StatusOK, out)
}

func toApplicationOut(app *models.Application) applicationOut {
	votes := make([]voteOut, 0, len(app.Votes))
	for _, v := range app.Votes {
		votes = append(votes, voteOut{VoterEmail: v.VoterEmail, Decision: v.Vote})
	}
	attachments := make([]attachmentOut, 0, len(app.Attachments))
	for _, a := range app.Attachments {
		attachments = append(attachments, attachmentOut{ID: a.ID, Filename: a.Filename})
	}

	return applicationOut{
		ID:                 app.ID,
		FirstName:          app.FirstName,
		LastName:           app.LastName,
		ApplicantEmail:     app.ApplicantEmail,
		Department:         app.Department,
		ProjectTitle:       app.ProjectTitle,
		ProjectDescription: app.ProjectDescription,
		Costs:              app.Costs,
		Status:             app.Status,
		Votes:              votes,
		Attachments:        attachments,
	}
}
