package service

import (
	"context"
	"fmt"
	"html"

	"cro-sprint-backend/internal/logger"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const confirmationSubject = "Confirm your signup"

// mailSender is the subset of the SendGrid client used here
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

// NewEmailService returns a SendGrid-backed email service, or a service that
// only logs confirmation links when apiKey is empty
func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	if apiKey == "" {
		return &logEmailService{}
	}
	return &sendGridEmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendSignupConfirmation(ctx context.Context, email, name, confirmURL string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(name, email)

	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + name
	}
	plain := fmt.Sprintf("%s,\n\nFollow this link to confirm your account:\n\n%s\n", greeting, confirmURL)
	// name is user supplied
	body := fmt.Sprintf(`<p>%s,</p><p>Follow this link to confirm your account:</p><p><a href="%s">Confirm your email</a></p>`,
		html.EscapeString(greeting), html.EscapeString(confirmURL))

	message := mail.NewSingleEmail(from, confirmationSubject, to, plain, body)

	logger.ExternalServiceCall("sendgrid", "send_signup_confirmation", "to", email)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send_signup_confirmation", err)
	if err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	return nil
}

type logEmailService struct{}

func (s *logEmailService) SendSignupConfirmation(ctx context.Context, email, name, confirmURL string) error {
	logger.InfoContext(ctx, "Email delivery disabled, confirmation link follows", "to", email, "confirm_url", confirmURL)
	return nil
}
