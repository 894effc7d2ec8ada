// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/danielhkuo/allotdesk/models"
)

func smtpEnv() map[string]string {
	return map[string]string{
		"SMTP_HOST":       "smtp.example.com",
		"SMTP_PORT":       "465",
		"SMTP_USER":       "bot@example.com",
		"SMTP_PASS":       "hunter2",
		"MAIL_FROM_NAME":  "Secretariat",
		"MAIL_FROM_EMAIL": "bot@example.com",
	}
}

func envFunc(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadSMTPConfig(t *testing.T) {
	cfg, err := LoadSMTPConfig(envFunc(smtpEnv()))
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com", cfg.Host)
	assert.Equal(t, 465, cfg.Port)
	assert.True(t, cfg.Secure)
	assert.False(t, cfg.AllowInsecure)
	assert.Empty(t, cfg.ReplyTo)
}

func TestLoadSMTPConfig_Flags(t *testing.T) {
	env := smtpEnv()
	env["SMTP_SECURE"] = "false"
	env["SMTP_ALLOW_INSECURE"] = "true"
	env["REPLY_TO_EMAIL"] = "help@example.com"

	cfg, err := LoadSMTPConfig(envFunc(env))
	require.NoError(t, err)
	assert.False(t, cfg.Secure)
	assert.True(t, cfg.AllowInsecure)
	assert.Equal(t, "help@example.com", cfg.ReplyTo)
}

func TestLoadSMTPConfig_Missing(t *testing.T) {
	env := smtpEnv()
	delete(env, "SMTP_HOST")
	delete(env, "SMTP_PASS")

	_, err := LoadSMTPConfig(envFunc(env))
	require.Error(t, err)
	assert.Equal(t, models.KindConfiguration, models.KindOf(err))
	assert.Contains(t, err.Error(), "SMTP_HOST")
	assert.Contains(t, err.Error(), "SMTP_PASS")
	assert.NotContains(t, err.Error(), "hunter2")
}

func TestLoadSMTPConfig_BadPort(t *testing.T) {
	env := smtpEnv()
	env["SMTP_PORT"] = "smtp"

	_, err := LoadSMTPConfig(envFunc(env))
	assert.Equal(t, models.KindConfiguration, models.KindOf(err))
}

func TestSMTPMailer_SendWithoutConfig(t *testing.T) {
	m := NewSMTPMailer(envFunc(nil))
	err := m.Send(context.Background(), Message{To: "a@example.com", Subject: "hi", Text: "hi"})
	assert.Equal(t, models.KindConfiguration, models.KindOf(err))
}

func TestSMTPMailer_Check(t *testing.T) {
	assert.NoError(t, NewSMTPMailer(envFunc(smtpEnv())).Check())

	err := NewSMTPMailer(envFunc(nil)).Check()
	assert.Equal(t, models.KindConfiguration, models.KindOf(err))
}

func TestBuildMsg(t *testing.T) {
	cfg, err := LoadSMTPConfig(envFunc(smtpEnv()))
	require.NoError(t, err)
	cfg.ReplyTo = "help@example.com"

	m, err := buildMsg(cfg, Message{To: "delegate@example.com", Subject: "Allotment", Text: "body"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Allotment"}, m.GetGenHeader(mail.HeaderSubject))

	_, err = buildMsg(cfg, Message{To: "not an address", Subject: "x", Text: "x"})
	assert.Error(t, err)
}

func TestAllotmentMessage(t *testing.T) {
	ev := EventFromEnv(envFunc(map[string]string{"EVENT_NAME": "City MUN"}))
	assert.Equal(t, Event{Name: "City MUN", Year: "2026"}, ev)

	msg := AllotmentMessage(ev, Allotment{
		Email:     "asha@example.com",
		Round:     "First",
		Committee: "UNHRC",
		Portfolio: "China",
	})
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Equal(t, "City MUN 2026 - First Allotment: UNHRC (China)", msg.Subject)
	assert.True(t, strings.HasPrefix(msg.Text, "Dear Delegate,"))
	assert.Contains(t, msg.Text, "Portfolio: China")
}
