// Package mail sends e-mail over SMTP.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	"gopkg.in/gomail.v2"
)

const defaultSMTPPort = 465

// SMTPConfig holds the server and sender settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// SMTPMailer implements outbound.Mailer with gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

var _ outbound.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	sender := cfg.Sender
	if sender == "" {
		sender = cfg.Username
	}
	if sender == "" {
		return nil, errors.New("smtp sender is required")
	}
	port := cfg.Port
	if port == 0 {
		port = defaultSMTPPort
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password),
		sender: sender,
	}, nil
}

// BuildMessage turns msg into a gomail message from sender.
func BuildMessage(sender string, msg outbound.MailMessage) (*gomail.Message, error) {
	if len(msg.To) == 0 {
		return nil, errors.New("mail has no recipients")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", sender)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)
	return m, nil
}

// Send blocks until the server accepts the message. gomail has no context
// support, so ctx is only checked before dialing.
func (s *SMTPMailer) Send(ctx context.Context, msg outbound.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := BuildMessage(s.sender, msg)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail to %v: %w", msg.To, err)
	}
	return nil
}
