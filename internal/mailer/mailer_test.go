package mailer

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/doevida/doevida-backend/pkg/config"
)

func TestSMTPMailerBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := &smtpMailer{
		cfg: config.MailConfig{
			Host:        "smtp.example.com",
			Port:        587,
			Username:    "mailer",
			Password:    "pw",
			FromName:    "Suporte DoeVida",
			FromAddress: "no-reply@doevida.example.com",
		},
		send: func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		},
	}

	err := m.SendPasswordRecovery(context.Background(), "maria@example.com", "Maria", "https://doevida.example.com/reset-password?token=tok")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Fatalf("addr = %q", gotAddr)
	}
	if gotFrom != "no-reply@doevida.example.com" {
		t.Fatalf("from = %q", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "maria@example.com" {
		t.Fatalf("to = %v", gotTo)
	}

	msg := string(gotMsg)
	for _, want := range []string{
		"From: Suporte DoeVida <no-reply@doevida.example.com>",
		"To: maria@example.com",
		"Subject: Recuperação de senha - DoeVida",
		"https://doevida.example.com/reset-password?token=tok",
		"Olá, Maria!",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSMTPMailerRejectsEmptyRecipient(t *testing.T) {
	m := &smtpMailer{
		cfg: config.MailConfig{Host: "smtp.example.com", Port: 587},
		send: func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
			t.Fatal("send should not be called")
			return nil
		},
	}
	if err := m.SendParticipationConfirmation(context.Background(), " ", "Maria", "Campanha", "Hemocentro"); err == nil {
		t.Fatal("expected error for empty recipient")
	}
}

func TestNewReturnsLogMailerWhenDisabled(t *testing.T) {
	m := New(config.MailConfig{}, nil)
	if _, ok := m.(*logMailer); !ok {
		t.Fatalf("expected log mailer, got %T", m)
	}
	if err := m.SendPasswordRecovery(context.Background(), "maria@example.com", "Maria", "link"); err != nil {
		t.Fatalf("log mailer should never fail: %v", err)
	}
}
