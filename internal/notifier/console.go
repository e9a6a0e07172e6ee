package notifier

import (
	"fmt"
	"strings"
)

// ConsoleMailer prints messages to stdout instead of delivering them.
// Used in development and tests.
type ConsoleMailer struct{}

func (ConsoleMailer) Send(to []string, subject, body string) error {
	fmt.Println("--- Simulated Email ---")
	fmt.Printf("To: %s\n", strings.Join(to, ", "))
	fmt.Printf("Subject: %s\n", subject)
	fmt.Println(body)
	fmt.Println("--- End ---")
	return nil
}

// NewMailerFromDriver picks the transport for the configured MAIL_DRIVER.
func NewMailerFromDriver(driver string, smtp *SMTPMailer) Mailer {
	if driver == "smtp" {
		return smtp
	}
	return ConsoleMailer{}
}
