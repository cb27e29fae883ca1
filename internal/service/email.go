package service

import (
	"context"
	"fmt"
	"time"

	"pgnest-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/shopspring/decimal"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	if s.apiKey == "" {
		// No SendGrid key configured (local/dev). Log and move on.
		logger.Debug("Email suppressed, no API key", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendRegistrationApproved(ctx context.Context, email, name, pgName string) error {
	subject := fmt.Sprintf("Welcome to %s", pgName)
	body := fmt.Sprintf("Hello %s,\n\nYour registration at %s has been approved. You can now log in with your phone number to view your room and payment details.\n\nBest regards,\nThe PGNest Team", name, pgName)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendRegistrationRejected(ctx context.Context, email, name, reason string) error {
	subject := "Registration Update"
	body := fmt.Sprintf("Hello %s,\n\nUnfortunately your registration could not be approved.", name)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe PGNest Team"
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, name string, amount decimal.Decimal, month, year int) error {
	period := fmt.Sprintf("%s %d", time.Month(month), year)
	subject := fmt.Sprintf("Rent Payment Confirmed - %s", period)
	body := fmt.Sprintf("Hello %s,\n\nYour rent payment of %s for %s has been verified and approved.\n\nBest regards,\nThe PGNest Team", name, amount.StringFixed(2), period)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendPaymentRejected(ctx context.Context, email, name string, month, year int, reason string) error {
	period := fmt.Sprintf("%s %d", time.Month(month), year)
	subject := fmt.Sprintf("Rent Payment Rejected - %s", period)
	body := fmt.Sprintf("Hello %s,\n\nYour rent payment submission for %s was rejected.", name, period)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nPlease submit a new payment with a valid screenshot.\n\nBest regards,\nThe PGNest Team"
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendLeavingSettlement(ctx context.Context, email, name string, settlement decimal.Decimal) error {
	subject := "Leaving Request Settled"
	body := fmt.Sprintf("Hello %s,\n\nYour leaving request has been approved and settled for %s. We wish you all the best.\n\nBest regards,\nThe PGNest Team", name, settlement.StringFixed(2))
	return s.send(ctx, email, name, subject, body)
}
