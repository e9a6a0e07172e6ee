package notifier

import (
	"fmt"
	"time"

	"github.com/hako/durafmt"
	log "github.com/sirupsen/logrus"

	"projectvote/internal/models"
	"projectvote/internal/repositories"
)

// CheckReminders polls the redis schedule once a minute and feeds due
// entries into taskChan. Runs for the lifetime of the process.
func CheckReminders(taskChan chan<- *models.ReminderTask) {
	for {
		time.Sleep(1 * time.Minute)

		tasks, err := repositories.DueReminders()
		if err != nil {
			log.Errorf("checking reminder schedule: %v", err)
			continue
		}

		for i := range tasks {
			taskChan <- &tasks[i]
		}
	}
}

// HandleReminder sends the reminder round for a due schedule entry and
// removes the entry afterwards.
func HandleReminder(task *models.ReminderTask) {
	if task == nil {
		return
	}

	if err := SendReminder(task.ApplicationID); err != nil {
		log.Errorf("sending reminder for application %d: %v", task.ApplicationID, err)
	}

	if err := repositories.RemoveReminderMember(task.Member); err != nil {
		log.Errorf("removing reminder entry %q: %v", task.Member, err)
	}
}

// maxReminderRounds bounds how often an application is re-mailed.
const maxReminderRounds = 3

// SendReminder re-mails the board members of an application whose vote is
// still pending. A no-op if the application has concluded in the meantime,
// everyone has voted, or the round cap is reached.
func SendReminder(applicationID int) error {
	app, err := repositories.GetApplicationByID(applicationID)
	if err != nil {
		return err
	}
	if app.Concluded() {
		return nil
	}

	rounds, err := repositories.CountReminders(applicationID)
	if err != nil {
		return err
	}
	if rounds >= maxReminderRounds {
		return nil
	}

	pending, err := repositories.PendingVoterEmails(applicationID)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	age := durafmt.Parse(time.Since(app.CreatedAt)).LimitFirstN(1).String()
	subject := fmt.Sprintf("Erinnerung: Abstimmung ausstehend für %s", app.ProjectTitle)

	sent := 0
	for _, email := range pending {
		var vote *models.VoteRecord
		for i := range app.Votes {
			if app.Votes[i].VoterEmail == email && app.Votes[i].VoteStatus == models.VotePending {
				vote = &app.Votes[i]
				break
			}
		}
		if vote == nil {
			log.Warnf("no pending vote record for %s on application %d", email, applicationID)
			continue
		}
		body := fmt.Sprintf(
			"Der Förderantrag \"%s\" wartet seit %s auf Ihre Stimme.\n\nBitte stimmen Sie hier ab: %s/vote/%s\n",
			app.ProjectTitle, age, frontendURL, vote.Token)
		if err := mailer.Send([]string{email}, subject, body); err != nil {
			log.Errorf("sending reminder to %s: %v", email, err)
		}
		sent++
	}
	if sent == 0 {
		return nil
	}

	return repositories.CreateReminderLog(applicationID, sent)
}
