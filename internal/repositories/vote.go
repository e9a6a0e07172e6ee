package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"projectvote/internal/models"
	"projectvote/pkg/apperrors"
	"projectvote/pkg/db/postgres"
)

// VoteByToken resolves a vote record through its token. Unknown and foreign
// tokens are indistinguishable to the caller: both come back as
// ErrTokenNotFound.
func VoteByToken(token string) (*models.VoteRecord, error) {
	var vote models.VoteRecord

	err := postgres.GetDB().
		Preload("Application").
		Preload("Application.Attachments").
		Where("token = ?", token).
		First(&vote).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrTokenNotFound
	} else if err != nil {
		return nil, err
	}

	return &vote, nil
}

// CastVote records the decision for the vote carrying the token. The write
// is a single guarded UPDATE so two concurrent casts of the same token
// cannot both succeed: the loser observes ErrAlreadyCast.
func CastVote(token string, decision models.VoteOption) (*models.VoteRecord, error) {
	now := time.Now()

	res := postgres.GetDB().Exec(`
		UPDATE votes
		SET vote = ?, vote_status = ?, voted_at = ?
		WHERE token = ? AND vote_status = ?
	`, decision, models.VoteCast, now, token, models.VotePending)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		// Either the token never existed or the vote is already cast.
		var vote models.VoteRecord
		err := postgres.GetDB().Where("token = ?", token).First(&vote).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTokenNotFound
		} else if err != nil {
			return nil, err
		}
		return nil, apperrors.ErrAlreadyCast
	}

	return VoteByToken(token)
}

// TallyVotes counts the cast decisions and still-pending votes for an
// application. Pure read, no side effects.
func TallyVotes(applicationID int) (models.Tally, error) {
	var tally models.Tally

	counts := []struct {
		dest  *int
		query string
		args  []interface{}
	}{
		{&tally.Approve, `SELECT COUNT(*) FROM votes WHERE application_id = ? AND vote_status = ? AND vote = ?`,
			[]interface{}{applicationID, models.VoteCast, models.VoteApprove}},
		{&tally.Reject, `SELECT COUNT(*) FROM votes WHERE application_id = ? AND vote_status = ? AND vote = ?`,
			[]interface{}{applicationID, models.VoteCast, models.VoteReject}},
		{&tally.Abstain, `SELECT COUNT(*) FROM votes WHERE application_id = ? AND vote_status = ? AND vote = ?`,
			[]interface{}{applicationID, models.VoteCast, models.VoteAbstain}},
		{&tally.Pending, `SELECT COUNT(*) FROM votes WHERE application_id = ? AND vote_status = ?`,
			[]interface{}{applicationID, models.VotePending}},
	}

	for _, c := range counts {
		if err := postgres.GetDB().Raw(c.query, c.args...).Scan(c.dest).Error; err != nil {
			return models.Tally{}, err
		}
	}

	return tally, nil
}

// PendingVoterEmails returns the board members of an application whose vote
// is still pending.
func PendingVoterEmails(applicationID int) ([]string, error) {
	var emails []string

	err := postgres.GetDB().Raw(`
		SELECT voter_email
		FROM votes
		WHERE application_id = ? AND vote_status = ?
		ORDER BY id
	`, applicationID, models.VotePending).Scan(&emails).Error
	if err != nil {
		return nil, err
	}

	return emails, nil
}

// VoterEmails returns every board member snapshotted onto the application.
func VoterEmails(applicationID int) ([]string, error) {
	var emails []string

	err := postgres.GetDB().Raw(`
		SELECT voter_email
		FROM votes
		WHERE application_id = ?
		ORDER BY id
	`, applicationID).Scan(&emails).Error
	if err != nil {
		return nil, err
	}

	return emails, nil
}
