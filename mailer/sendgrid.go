package mailer

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGrid sends email through the SendGrid API.
type SendGrid struct {
	apiKey      string
	fromName    string
	fromAddress string
}

func NewSendGrid(apiKey, fromName, fromAddress string) *SendGrid {
	return &SendGrid{apiKey: apiKey, fromName: fromName, fromAddress: fromAddress}
}

func (s *SendGrid) Send(toName, toEmail, subject, textContent, htmlContent string) error {
	if s.apiKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not set in environment variables")
	}

	from := mail.NewEmail(s.fromName, s.fromAddress)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, textContent, htmlContent)
	client := sendgrid.NewSendClient(s.apiKey)

	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}

	if response.StatusCode >= 400 {
		log.Printf("SendGrid API Error: Status Code %d, Body: %s", response.StatusCode, response.Body)
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	log.Printf("Email sent successfully to %s. Status Code: %d", toEmail, response.StatusCode)
	return nil
}
