package services

import (
	log "github.com/sirupsen/logrus"

	"projectvote/internal/models"
	"projectvote/internal/notifier"
	"projectvote/internal/repositories"
)

// Decide computes the outcome of an application's voting process from its
// current tally. Approval requires a strict majority of the full board
// (> boardSize/2), abstentions count as not-approve. The decision can fall
// before every vote is in:
//
//   - a side that already holds a strict majority wins immediately, and
//   - if the approve side cannot reach a strict majority even when every
//     pending vote turns into an approval, the application is rejected
//     immediately.
//
// With all votes cast, a strict approve majority approves, everything else
// (ties, all-abstain) rejects. The second return value is false while the
// outcome still depends on pending votes.
func Decide(tally models.Tally, boardSize int) (models.ApplicationStatus, bool) {
	// Strict majority: count > boardSize/2. Integer division is exact for
	// even boards and floor for odd ones, which is the same threshold.
	majority := boardSize / 2

	if tally.Approve > majority {
		return models.StatusApproved, true
	}
	if tally.Reject > majority {
		return models.StatusRejected, true
	}
	// Also covers complete ballots: with nothing pending, an approve count
	// at or below the threshold (ties, all-abstain) rejects.
	if tally.Approve+tally.Pending <= majority {
		return models.StatusRejected, true
	}

	return models.StatusPending, false
}

// ResolveOutcome re-evaluates an application after a successful cast and
// finalizes it when the outcome is mathematically determined. The status
// transition is compare-and-set; when two near-simultaneous final votes
// race here, exactly one writer wins the transition and only that writer
// triggers the final-decision notifications.
func ResolveOutcome(applicationID int) error {
	app, err := repositories.GetApplicationByID(applicationID)
	if err != nil {
		return err
	}
	if app.Concluded() {
		return nil
	}

	tally, err := repositories.TallyVotes(applicationID)
	if err != nil {
		return err
	}

	status, decided := Decide(tally, app.BoardSize)
	if !decided {
		return nil
	}

	won, err := repositories.ConcludeApplication(applicationID, status)
	if err != nil {
		return err
	}
	if !won {
		// Another writer concluded the application first; it owns the
		// final notifications.
		return nil
	}

	log.Infof("application %d concluded: %s (approve=%d reject=%d abstain=%d pending=%d of %d)",
		applicationID, status, tally.Approve, tally.Reject, tally.Abstain, tally.Pending, app.BoardSize)

	repositories.RemoveReminder(applicationID)

	// Notifications go out only after the transition is durably written.
	concluded, err := repositories.GetApplicationByID(applicationID)
	if err != nil {
		return err
	}
	members, err := repositories.VoterEmails(applicationID)
	if err != nil {
		return err
	}
	notifier.SendFinalDecision(concluded, members)

	return nil
}
