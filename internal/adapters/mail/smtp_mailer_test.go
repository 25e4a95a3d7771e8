package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/SscSPs/propease_crm/internal/core/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	m, err := BuildMessage("crm@propease.test", outbound.MailMessage{
		To:       []string{"asha@propease.test", "ravi@propease.test"},
		Subject:  "Follow-ups due today",
		HTMLBody: "<p>3 follow-ups</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"crm@propease.test"}, m.GetHeader("From"))
	assert.Equal(t, []string{"asha@propease.test", "ravi@propease.test"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Follow-ups due today"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<p>3 follow-ups</p>")
}

func TestBuildMessage_NoRecipients(t *testing.T) {
	_, err := BuildMessage("crm@propease.test", outbound.MailMessage{Subject: "x"})
	assert.Error(t, err)
}

func TestNewSMTPMailer(t *testing.T) {
	_, err := NewSMTPMailer(SMTPConfig{})
	assert.Error(t, err)

	_, err = NewSMTPMailer(SMTPConfig{Host: "smtp.example.com"})
	assert.Error(t, err, "sender or username is required")

	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Username: "crm@propease.test"})
	require.NoError(t, err)
	assert.Equal(t, "crm@propease.test", m.sender)
	assert.Equal(t, defaultSMTPPort, m.dialer.Port)
}

func TestSend_CancelledContext(t *testing.T) {
	m, err := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Sender: "crm@propease.test"})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = m.Send(ctx, outbound.MailMessage{To: []string{"a@b.c"}})
	assert.ErrorIs(t, err, context.Canceled)
}
