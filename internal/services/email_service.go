package services

import (
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/Avinash9006/InfinityPower/internal/config"
)

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg    config.EmailConfig
	logger *logrus.Logger
}

func NewEmailService(cfg config.EmailConfig, logger *logrus.Logger) *EmailService {
	return &EmailService{cfg: cfg, logger: logger}
}

// SendInviteEmail delivers a registration invite carrying the tenant's
// single-use link.
func (s *EmailService) SendInviteEmail(to, tenantName, inviteLink string) error {
	subject := fmt.Sprintf("You're invited to join %s", tenantName)
	html := fmt.Sprintf(`
		<h2>Join %s</h2>
		<p>You have been invited to join <strong>%s</strong>.</p>
		<p><a href="%s">Accept your invite</a></p>
		<p>This link is single-use and expires soon. If you weren't expecting it, you can ignore this email.</p>
	`, tenantName, tenantName, inviteLink)

	return s.send(to, subject, html)
}

func (s *EmailService) send(to, subject, htmlBody string) error {
	from := fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, to, subject, htmlBody,
	))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, msg); err != nil {
		s.logger.WithError(err).WithField("to", to).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("Email sent")
	return nil
}
