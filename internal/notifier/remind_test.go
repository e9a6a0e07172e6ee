package notifier

import (
	"fmt"
	"strings"
	"testing"

	"projectvote/internal/models"
	"projectvote/internal/repositories"
	"projectvote/internal/testutil"
	"projectvote/pkg/db/postgres"
)

func setupReminders(t *testing.T) *testutil.RecordingMailer {
	t.Helper()
	testutil.SetupDB(t)
	rec := &testutil.RecordingMailer{}
	InitNotifier(rec, "http://localhost:5173", true)
	return rec
}

func seedApplication(t *testing.T, members ...string) *models.Application {
	t.Helper()
	votes := make([]models.VoteRecord, 0, len(members))
	for i, member := range members {
		votes = append(votes, models.VoteRecord{
			VoterEmail: member,
			Token:      fmt.Sprintf("remind-token-%d", i),
			VoteStatus: models.VotePending,
		})
	}
	app := &models.Application{
		FirstName:          "Max",
		LastName:           "Mustermann",
		ApplicantEmail:     "max@example.com",
		Department:         "IT",
		ProjectTitle:       "Testprojekt",
		ProjectDescription: "Beschreibung",
		Costs:              100,
		Status:             models.StatusPending,
		BoardSize:          len(members),
		Votes:              votes,
	}
	if err := repositories.CreateApplication(app); err != nil {
		t.Fatalf("create: %v", err)
	}
	return app
}

func TestReminderMailsPendingVotersOnly(t *testing.T) {
	rec := setupReminders(t)
	app := seedApplication(t, "a@example.com", "b@example.com", "c@example.com")

	if _, err := repositories.CastVote(app.Votes[0].Token, models.VoteApprove); err != nil {
		t.Fatalf("cast: %v", err)
	}

	if err := SendReminder(app.ID); err != nil {
		t.Fatalf("send reminder: %v", err)
	}

	msgs := rec.Messages()
	if len(msgs) != 2 {
		t.Fatalf("reminder mails = %d, want one per pending voter", len(msgs))
	}
	for _, msg := range msgs {
		if !strings.HasPrefix(msg.Subject, "Erinnerung") {
			t.Errorf("subject = %q, want a reminder subject", msg.Subject)
		}
		if msg.To[0] == "a@example.com" {
			t.Error("reminder sent to a voter who already cast")
		}
	}

	// Each pending voter gets their own voting link.
	for _, vote := range app.Votes[1:] {
		found := false
		for _, msg := range msgs {
			if msg.To[0] == vote.VoterEmail && strings.Contains(msg.Body, "/vote/"+vote.Token) {
				found = true
			}
		}
		if !found {
			t.Errorf("no reminder carrying %s's own token", vote.VoterEmail)
		}
	}

	var logRow models.VoteReminder
	if err := postgres.GetDB().Where("application_id = ?", app.ID).First(&logRow).Error; err != nil {
		t.Fatalf("loading reminder log: %v", err)
	}
	if logRow.Recipients != 2 {
		t.Errorf("logged recipients = %d, want 2", logRow.Recipients)
	}
	if rounds, err := repositories.CountReminders(app.ID); err != nil || rounds != 1 {
		t.Errorf("reminder rounds = %d (err %v), want 1", rounds, err)
	}
}

func TestReminderTokenMatchesRecipient(t *testing.T) {
	rec := setupReminders(t)

	// Two vote records sharing one address; only the second is still
	// pending, so the reminder must carry that record's token.
	app := seedApplication(t, "dup@example.com", "dup@example.com")
	if _, err := repositories.CastVote(app.Votes[0].Token, models.VoteReject); err != nil {
		t.Fatalf("cast: %v", err)
	}

	if err := SendReminder(app.ID); err != nil {
		t.Fatalf("send reminder: %v", err)
	}

	msgs := rec.Messages()
	if len(msgs) != 1 {
		t.Fatalf("reminder mails = %d, want 1", len(msgs))
	}
	if !strings.Contains(msgs[0].Body, "/vote/"+app.Votes[1].Token) {
		t.Errorf("reminder body carries the wrong token: %s", msgs[0].Body)
	}
	if strings.Contains(msgs[0].Body, "/vote/"+app.Votes[0].Token) {
		t.Error("reminder leaked the already-cast record's token")
	}
}

func TestReminderSilentOnConcluded(t *testing.T) {
	rec := setupReminders(t)
	app := seedApplication(t, "a@example.com", "b@example.com")

	if _, err := repositories.ConcludeApplication(app.ID, models.StatusRejected); err != nil {
		t.Fatalf("conclude: %v", err)
	}

	if err := SendReminder(app.ID); err != nil {
		t.Fatalf("send reminder: %v", err)
	}
	if n := len(rec.Messages()); n != 0 {
		t.Errorf("reminder mails on concluded application = %d, want 0", n)
	}
	if rounds, _ := repositories.CountReminders(app.ID); rounds != 0 {
		t.Errorf("reminder rounds = %d, want no log row", rounds)
	}
}

func TestReminderSilentWhenAllVoted(t *testing.T) {
	rec := setupReminders(t)
	app := seedApplication(t, "a@example.com", "b@example.com")

	for _, vote := range app.Votes {
		if _, err := repositories.CastVote(vote.Token, models.VoteAbstain); err != nil {
			t.Fatalf("cast: %v", err)
		}
	}

	if err := SendReminder(app.ID); err != nil {
		t.Fatalf("send reminder: %v", err)
	}
	if n := len(rec.Messages()); n != 0 {
		t.Errorf("reminder mails with no pending votes = %d, want 0", n)
	}
	if rounds, _ := repositories.CountReminders(app.ID); rounds != 0 {
		t.Errorf("reminder rounds = %d, want no log row", rounds)
	}
}

func TestReminderRoundCap(t *testing.T) {
	rec := setupReminders(t)
	app := seedApplication(t, "a@example.com", "b@example.com")

	for i := 0; i < maxReminderRounds+2; i++ {
		if err := SendReminder(app.ID); err != nil {
			t.Fatalf("send reminder %d: %v", i, err)
		}
	}

	if n := len(rec.Messages()); n != maxReminderRounds*2 {
		t.Errorf("reminder mails = %d, want %d", n, maxReminderRounds*2)
	}
	if rounds, _ := repositories.CountReminders(app.ID); rounds != maxReminderRounds {
		t.Errorf("reminder rounds = %d, want the cap %d", rounds, maxReminderRounds)
	}
}

func TestHandleReminderRemovesScheduleEntry(t *testing.T) {
	setupReminders(t)
	app := seedApplication(t, "a@example.com")

	// Without redis the schedule removal is a no-op; the round must still
	// be sent and logged.
	HandleReminder(&models.ReminderTask{
		ApplicationID: app.ID,
		Member:        fmt.Sprintf("remind:%d", app.ID),
	})
	if rounds, _ := repositories.CountReminders(app.ID); rounds != 1 {
		t.Errorf("reminder rounds after handling = %d, want 1", rounds)
	}

	HandleReminder(nil)
}