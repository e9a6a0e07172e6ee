package notifier

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"projectvote/internal/models"
)

// SendVotingLinks mails every board member their unique voting link for a
// freshly submitted application. One message per vote record, fanned out
// concurrently; individual failures are logged and do not stop the rest.
func SendVotingLinks(app *models.Application) {
	subject := fmt.Sprintf("Neuer Förderantrag: %s", app.ProjectTitle)

	var g errgroup.Group
	for _, vote := range app.Votes {
		vote := vote
		g.Go(func() error {
			body := votingLinkBody(app, &vote)
			if err := mailer.Send([]string{vote.VoterEmail}, subject, body); err != nil {
				log.Errorf("sending voting link to %s: %v", vote.VoterEmail, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func votingLinkBody(app *models.Application, vote *models.VoteRecord) string {
	var b strings.Builder

	b.WriteString("Ein neuer Förderantrag wurde eingereicht.\n\n")
	fmt.Fprintf(&b, "Antragsteller: %s %s (%s)\n", app.FirstName, app.LastName, app.Department)
	fmt.Fprintf(&b, "Projekt: %s\n", app.ProjectTitle)
	fmt.Fprintf(&b, "Beantragte Kosten: %.2f EUR\n\n", app.Costs)
	fmt.Fprintf(&b, "%s\n\n", app.ProjectDescription)
	fmt.Fprintf(&b, "Bitte stimmen Sie hier ab: %s/vote/%s\n", frontendURL, vote.Token)

	if len(app.Attachments) > 0 {
		b.WriteString("\nAnhänge:\n")
		for _, att := range app.Attachments {
			fmt.Fprintf(&b, "  %s: %s/vote/%s/attachments/%d\n",
				att.Filename, frontendURL, vote.Token, att.ID)
		}
	}

	return b.String()
}
