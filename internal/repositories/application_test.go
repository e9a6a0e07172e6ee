package repositories

import (
	"errors"
	"testing"

	"projectvote/internal/models"
	"projectvote/internal/testutil"
	"projectvote/pkg/apperrors"
)

func newTestApplication(members ...string) *models.Application {
	votes := make([]models.VoteRecord, 0, len(members))
	for i, member := range members {
		votes = append(votes, models.VoteRecord{
			VoterEmail: member,
			Token:      "token-" + member + "-" + string(rune('a'+i)),
			VoteStatus: models.VotePending,
		})
	}
	return &models.Application{
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
}

func TestConcludeApplicationCompareAndSet(t *testing.T) {
	testutil.SetupDB(t)

	app := newTestApplication("a@example.com", "b@example.com")
	if err := CreateApplication(app); err != nil {
		t.Fatalf("create: %v", err)
	}

	won, err := ConcludeApplication(app.ID, models.StatusApproved)
	if err != nil {
		t.Fatalf("first conclude: %v", err)
	}
	if !won {
		t.Fatal("first conclude lost the transition on a pending application")
	}

	// A racing second writer must observe that the transition is taken.
	won, err = ConcludeApplication(app.ID, models.StatusRejected)
	if err != nil {
		t.Fatalf("second conclude: %v", err)
	}
	if won {
		t.Error("second conclude won on a terminal application")
	}

	stored, err := GetApplicationByID(app.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Status != models.StatusApproved {
		t.Errorf("status = %s, the losing writer must not overwrite it", stored.Status)
	}
	if stored.ConcludedAt == nil {
		t.Error("concluded_at not set")
	}
}

func TestCreateApplicationDuplicateToken(t *testing.T) {
	testutil.SetupDB(t)

	first := newTestApplication("a@example.com")
	first.Votes[0].Token = "fixed-token"
	if err := CreateApplication(first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := newTestApplication("a@example.com")
	second.Votes[0].Token = "fixed-token"
	if err := CreateApplication(second); !errors.Is(err, apperrors.ErrDuplicateToken) {
		t.Errorf("create with colliding token error = %v, want ErrDuplicateToken", err)
	}
}

func TestArchiveNewestFirst(t *testing.T) {
	testutil.SetupDB(t)

	first := newTestApplication("a@example.com")
	second := newTestApplication("b@example.com")
	for _, app := range []*models.Application{first, second} {
		if err := CreateApplication(app); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	apps, err := ArchiveApplications()
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("archive size = %d, want 2", len(apps))
	}
	if apps[0].ID != second.ID || apps[1].ID != first.ID {
		t.Errorf("archive order = [%d %d], want newest first [%d %d]",
			apps[0].ID, apps[1].ID, second.ID, first.ID)
	}
	if len(apps[0].Votes) != 1 {
		t.Errorf("archive did not preload votes")
	}
}

func TestGetApplicationNotFound(t *testing.T) {
	testutil.SetupDB(t)

	if _, err := GetApplicationByID(12345); !errors.Is(err, apperrors.ErrApplicationNotFound) {
		t.Errorf("error = %v, want ErrApplicationNotFound", err)
	}
}
