package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"projectvote/internal/models"
	"projectvote/internal/notifier"
	"projectvote/internal/repositories"
	"projectvote/internal/token"
	"projectvote/pkg/apperrors"
)

// tokenRetries bounds regeneration after a persisted-token collision.
const tokenRetries = 3

type AttachmentUpload struct {
	Filename string
	MimeType string
	Content  []byte
}

type SubmitInput struct {
	FirstName          string
	LastName           string
	ApplicantEmail     string
	Department         string
	ProjectTitle       string
	ProjectDescription string
	Costs              float64

	// BoardMembers is the configured board at the moment of submission;
	// it defines B for this application and is snapshotted onto it.
	BoardMembers []string

	Attachment *AttachmentUpload
	UploadDir  string

	// ReminderAfterHours schedules one reminder round; zero disables it.
	ReminderAfterHours int
}

// SubmitApplication runs the full submission flow: persist the application
// with one pending vote record per board member (each carrying a fresh
// token) and the optional attachment, then mail every member their voting
// link. Vote records and the application are created atomically; a token
// collision regenerates all tokens and retries.
func SubmitApplication(in SubmitInput) (*models.Application, error) {
	if in.Costs < 0 {
		return nil, apperrors.ErrNegativeCosts
	}
	if len(in.BoardMembers) == 0 {
		return nil, apperrors.ErrNoBoardMembers
	}

	var attachment *models.Attachment
	if in.Attachment != nil && in.Attachment.Filename != "" {
		saved, err := saveAttachment(in.UploadDir, in.Attachment)
		if err != nil {
			return nil, err
		}
		attachment = saved
	}

	var app *models.Application
	var err error
	for attempt := 0; attempt < tokenRetries; attempt++ {
		app = buildApplication(&in, attachment)
		err = repositories.CreateApplication(app)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrDuplicateToken) {
			break
		}
		log.Warnf("token collision on submission, regenerating (attempt %d)", attempt+1)
	}
	if err != nil {
		if attachment != nil {
			removeStoredFile(in.UploadDir, attachment.Filepath)
		}
		return nil, err
	}

	notifier.SendVotingLinks(app)

	if in.ReminderAfterHours > 0 {
		due := time.Now().Add(time.Duration(in.ReminderAfterHours) * time.Hour)
		if err := repositories.ScheduleReminder(app.ID, due); err != nil {
			log.Errorf("scheduling reminder for application %d: %v", app.ID, err)
		}
	}

	return app, nil
}

func buildApplication(in *SubmitInput, attachment *models.Attachment) *models.Application {
	votes := make([]models.VoteRecord, 0, len(in.BoardMembers))
	for _, member := range in.BoardMembers {
		votes = append(votes, models.VoteRecord{
			VoterEmail: member,
			Token:      token.New(),
			VoteStatus: models.VotePending,
		})
	}

	app := &models.Application{
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		ApplicantEmail:     in.ApplicantEmail,
		Department:         in.Department,
		ProjectTitle:       in.ProjectTitle,
		ProjectDescription: in.ProjectDescription,
		Costs:              in.Costs,
		Status:             models.StatusPending,
		BoardSize:          len(in.BoardMembers),
		Votes:              votes,
	}
	if attachment != nil {
		app.Attachments = []models.Attachment{*attachment}
	}

	return app
}

// saveAttachment writes the uploaded bytes under a generated filename that
// keeps the original extension. The stored path is relative to the upload
// root; the original filename only survives in the database record.
func saveAttachment(uploadDir string, upload *AttachmentUpload) (*models.Attachment, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}

	stored := uuid.NewString() + filepath.Ext(upload.Filename)
	if err := os.WriteFile(filepath.Join(uploadDir, stored), upload.Content, 0o644); err != nil {
		return nil, fmt.Errorf("writing attachment: %w", err)
	}

	mimeType := upload.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &models.Attachment{
		Filename: upload.Filename,
		Filepath: stored,
		MimeType: mimeType,
	}, nil
}

func removeStoredFile(uploadDir, stored string) {
	if err := os.Remove(filepath.Join(uploadDir, stored)); err != nil {
		log.Errorf("removing stored attachment %s: %v", stored, err)
	}
}

// AttachmentPath resolves the on-disk location of an attachment and checks
// the file still exists.
func AttachmentPath(uploadDir string, att *models.Attachment) (string, error) {
	path := filepath.Join(uploadDir, att.Filepath)
	if _, err := os.Stat(path); err != nil {
		return "", apperrors.ErrAttachmentNotFound
	}
	return path, nil
}
