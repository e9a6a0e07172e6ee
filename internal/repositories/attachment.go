package repositories

import (
	"errors"

	"gorm.io/gorm"

	"projectvote/internal/models"
	"projectvote/pkg/apperrors"
	"projectvote/pkg/db/postgres"
)

func AttachmentByID(attachmentID int) (*models.Attachment, error) {
	var att models.Attachment

	err := postgres.GetDB().First(&att, attachmentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrAttachmentNotFound
	} else if err != nil {
		return nil, err
	}

	return &att, nil
}

// AttachmentForToken resolves an attachment through a voting token. The
// attachment must belong to the same application as the token; a mismatch
// is reported exactly like a missing attachment so tokens leak nothing
// about other applications' files.
func AttachmentForToken(token string, attachmentID int) (*models.Attachment, error) {
	vote, err := VoteByToken(token)
	if err != nil {
		return nil, err
	}

	var att models.Attachment
	err = postgres.GetDB().
		Where("id = ? AND application_id = ?", attachmentID, vote.ApplicationID).
		First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrAttachmentNotFound
	} else if err != nil {
		return nil, err
	}

	return &att, nil
}
