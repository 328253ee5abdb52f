// Package mailer dispatches transactional email.
package mailer

// Mailer sends a single email. Implementations report delivery failure
// through the returned error.
type Mailer interface {
	Send(toName, toEmail, subject, textContent, htmlContent string) error
}
