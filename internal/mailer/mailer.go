package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/doevida/doevida-backend/pkg/config"
	"github.com/doevida/doevida-backend/pkg/logger"
)

// Mailer sends transactional email to donors.
type Mailer interface {
	SendPasswordRecovery(ctx context.Context, to, name, resetLink string) error
	SendParticipationConfirmation(ctx context.Context, to, name, campaignTitle, location string) error
}

type sender func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	cfg  config.MailConfig
	send sender
	logg *logger.Logger
}

// New builds a mailer from the mail configuration. When no SMTP host is
// configured it returns a mailer that only logs, so local development works
// without a relay.
func New(cfg config.MailConfig, logg *logger.Logger) Mailer {
	if !cfg.Enabled() {
		return &logMailer{logg: logg}
	}
	return &smtpMailer{cfg: cfg, send: smtp.SendMail, logg: logg}
}

func (m *smtpMailer) SendPasswordRecovery(ctx context.Context, to, name, resetLink string) error {
	body := renderPasswordRecovery(name, resetLink)
	return m.deliver(ctx, to, "Recuperação de senha - DoeVida", body)
}

func (m *smtpMailer) SendParticipationConfirmation(ctx context.Context, to, name, campaignTitle, location string) error {
	body := renderParticipationConfirmation(name, campaignTitle, location)
	return m.deliver(ctx, to, "Participação confirmada - DoeVida", body)
}

func (m *smtpMailer) deliver(ctx context.Context, to, subject, body string) error {
	recipient := strings.TrimSpace(to)
	if recipient == "" {
		return fmt.Errorf("recipient address is required")
	}

	msg := buildMessage(m.fromHeader(), recipient, subject, body)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := m.send(addr, auth, m.cfg.FromAddress, []string{recipient}, msg); err != nil {
		return fmt.Errorf("sending mail via %s: %w", addr, err)
	}
	if m.logg != nil {
		m.logg.Info(ctx, "email delivered")
	}
	return nil
}

func (m *smtpMailer) fromHeader() string {
	if m.cfg.FromName == "" {
		return m.cfg.FromAddress
	}
	return fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromAddress)
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// logMailer stands in when SMTP is not configured.
type logMailer struct {
	logg *logger.Logger
}

func (m *logMailer) SendPasswordRecovery(ctx context.Context, to, name, resetLink string) error {
	if m.logg != nil {
		m.logg.Info(ctx, "mail disabled, skipping password recovery email")
	}
	return nil
}

func (m *logMailer) SendParticipationConfirmation(ctx context.Context, to, name, campaignTitle, location string) error {
	if m.logg != nil {
		m.logg.Info(ctx, "mail disabled, skipping participation confirmation email")
	}
	return nil
}
