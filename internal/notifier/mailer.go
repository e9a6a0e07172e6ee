// Package notifier delivers the workflow's emails. Delivery is best
// effort: the decision in the database is the authoritative state and a
// failed send is logged, never propagated into the vote or resolution
// path.
package notifier

import (
	"projectvote/internal/models"
)

// Mailer is the narrow transport contract the workflow depends on.
type Mailer interface {
	Send(to []string, subject, body string) error
}

var mailer Mailer
var frontendURL string
var sendRejection bool

// InitNotifier wires the mail transport and the settings the message
// builders need. Must be called before any Send* function.
func InitNotifier(m Mailer, frontend string, rejectionToApplicant bool) {
	mailer = m
	frontendURL = frontend
	sendRejection = rejectionToApplicant
}

var statusGerman = map[models.ApplicationStatus]string{
	models.StatusApproved: "genehmigt",
	models.StatusRejected: "abgelehnt",
}

func germanStatus(status models.ApplicationStatus) string {
	if s, ok := statusGerman[status]; ok {
		return s
	}
	return string(status)
}
