package services

import (
	"projectvote/internal/models"
	"projectvote/internal/repositories"
	"projectvote/pkg/apperrors"
)

// VoteDetails resolves a token for the voting form. Fails with
// ErrTokenNotFound for unknown tokens and ErrAlreadyCast once the vote has
// been used.
func VoteDetails(token string) (*models.VoteRecord, error) {
	vote, err := repositories.VoteByToken(token)
	if err != nil {
		return nil, err
	}

	if vote.VoteStatus == models.VoteCast {
		return nil, apperrors.ErrAlreadyCast
	}

	return vote, nil
}

// CastVote records the decision behind the token and re-runs the outcome
// resolver. A resolver failure propagates to the caller but the cast
// itself, once persisted, stands; the resolution check simply runs again
// on the next vote.
func CastVote(token string, decision models.VoteOption) error {
	vote, err := repositories.CastVote(token, decision)
	if err != nil {
		return err
	}

	return ResolveOutcome(vote.ApplicationID)
}
