package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"projectvote/internal/models"
	"projectvote/pkg/apperrors"
	"projectvote/pkg/db/postgres"
)

// CreateApplication persists the application together with its vote records
// and optional attachment in one transaction. A unique-violation on the
// token index is translated to ErrDuplicateToken so the caller can
// regenerate and retry.
func CreateApplication(app *models.Application) error {
	err := postgres.GetDB().Transaction(func(tx *gorm.DB) error {
		return tx.Create(app).Error
	})
	if postgres.IsUniqueViolation(err) {
		return apperrors.ErrDuplicateToken
	}
	return err
}

func GetApplicationByID(id int) (*models.Application, error) {
	var app models.Application

	err := postgres.GetDB().
		Preload("Votes").
		Preload("Attachments").
		First(&app, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrApplicationNotFound
	} else if err != nil {
		return nil, err
	}

	return &app, nil
}

// ArchiveApplications returns every application, newest first, with votes
// and attachments preloaded.
func ArchiveApplications() ([]models.Application, error) {
	var apps []models.Application

	err := postgres.GetDB().
		Preload("Votes").
		Preload("Attachments").
		Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	return apps, nil
}

// ConcludeApplication moves the application from pending to the given
// terminal status with compare-and-set semantics: the update only succeeds
// while the stored status is still pending. The boolean reports whether
// this caller won the transition; a false result means another writer
// already concluded the application.
func ConcludeApplication(applicationID int, status models.ApplicationStatus) (bool, error) {
	now := time.Now()

	res := postgres.GetDB().Exec(`
		UPDATE applications
		SET status = ?, concluded_at = ?
		WHERE id = ? AND status = ?
	`, status, now, applicationID, models.StatusPending)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}
