package notifier

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"projectvote/internal/models"
)

// SendFinalDecision notifies the applicant and every board member of the
// terminal status. Fired exactly once per application, by the resolver
// writer that won the status transition, strictly after the transition is
// committed.
func SendFinalDecision(app *models.Application, boardMembers []string) {
	status := germanStatus(app.Status)

	var g errgroup.Group

	if app.Status != models.StatusRejected || sendRejection {
		g.Go(func() error {
			subject := fmt.Sprintf("Entscheidung über Ihren Antrag: %s", app.ProjectTitle)
			body := fmt.Sprintf(
				"Guten Tag %s %s,\n\nüber Ihren Antrag \"%s\" wurde entschieden: Er wurde %s.\n",
				app.FirstName, app.LastName, app.ProjectTitle, status)
			if err := mailer.Send([]string{app.ApplicantEmail}, subject, body); err != nil {
				log.Errorf("sending decision to applicant %s: %v", app.ApplicantEmail, err)
			}
			return nil
		})
	}

	subject := fmt.Sprintf("Abstimmung abgeschlossen für: %s", app.ProjectTitle)
	body := fmt.Sprintf(
		"Die Abstimmung für den Antrag \"%s\" ist abgeschlossen.\nErgebnis: %s.\n",
		app.ProjectTitle, status)

	for _, member := range boardMembers {
		member := member
		g.Go(func() error {
			if err := mailer.Send([]string{member}, subject, body); err != nil {
				log.Errorf("sending decision to board member %s: %v", member, err)
			}
			return nil
		})
	}

	_ = g.Wait()
}
