package email

// internal/infrastructure/email/smtp_service.go
import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"kiosk-backend/pkg/logger"
)

type EmailService interface {
	SendEmail(ctx context.Context, req EmailRequest) error
	SendMemberAddedEmail(ctx context.Context, data MemberAddedData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

func NewSMTPEmailService(smtpHost string, smtpPort int, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: fmt.Sprintf("%s:%d", smtpHost, smtpPort),
		smtpFrom: from,
	}
}

func (s *smtpEmailService) SendMemberAddedEmail(ctx context.Context, data MemberAddedData) error {
	name := data.Name
	if name == "" {
		name = "there"
	}
	body := fmt.Sprintf(`Hi %s,

You have been added as a writer to the journal "%s".
You can now publish articles under it:
%s

If you were not expecting this, you can ignore this email.`, name, data.JournalName, data.JournalURL)

	return s.SendEmail(ctx, EmailRequest{
		To:      []string{data.Email},
		Subject: fmt.Sprintf("You joined %s on Kiosk", data.JournalName),
		Body:    body,
	})
}

func (s *smtpEmailService) SendEmail(ctx context.Context, req EmailRequest) error {
	if len(req.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	contentType := "text/plain; charset=UTF-8"
	if req.IsHTML {
		contentType = "text/html; charset=UTF-8"
	}
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: %s\r\n\r\n%s",
		s.smtpFrom, strings.Join(req.To, ", "), req.Subject, contentType, req.Body))

	// Gửi email qua SMTP
	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, req.To, msg); err != nil {
		logger.Error("Failed to send email", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
