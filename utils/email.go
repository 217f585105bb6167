package utils

import (
	"errors"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendMail delivers a transactional email through SendGrid. Returns whether
// the message was accepted upstream.
func SendMail(to string, subject string, html string) (bool, error) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return false, errors.New("SENDGRID_API_KEY is not configured")
	}

	fromAddress := os.Getenv("EMAIL_FROM")
	if fromAddress == "" {
		fromAddress = "noreply@dinereserve.com"
	}

	from := mail.NewEmail("DineReserve", fromAddress)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, "", html)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return false, err
	}

	return response.StatusCode >= 200 && response.StatusCode < 300, nil
}
