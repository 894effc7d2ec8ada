// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wneessen/go-mail"

	"github.com/danielhkuo/allotdesk/models"
)

// Message is a single outgoing email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	// Check reports a configuration error before any message is attempted.
	Check() error
}

// SMTPConfig holds the SMTP transport and sender settings.
type SMTPConfig struct {
	Host          string
	Port          int
	Secure        bool
	User          string
	Pass          string
	AllowInsecure bool
	FromName      string
	FromEmail     string
	ReplyTo       string
}

// LoadSMTPConfig reads SMTP settings through getenv. SMTP_SECURE defaults
// to true and SMTP_ALLOW_INSECURE to false; REPLY_TO_EMAIL is optional.
func LoadSMTPConfig(getenv func(string) string) (SMTPConfig, error) {
	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := SMTPConfig{
		Host:      req("SMTP_HOST"),
		User:      req("SMTP_USER"),
		Pass:      req("SMTP_PASS"),
		FromName:  req("MAIL_FROM_NAME"),
		FromEmail: req("MAIL_FROM_EMAIL"),
		ReplyTo:   strings.TrimSpace(getenv("REPLY_TO_EMAIL")),
	}
	port := req("SMTP_PORT")
	if len(missing) > 0 {
		return SMTPConfig{}, models.ConfigError("missing env: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.Port, err = strconv.Atoi(port); err != nil || cfg.Port <= 0 {
		return SMTPConfig{}, models.ConfigError("invalid SMTP_PORT %q", port)
	}
	cfg.Secure = boolEnv(getenv("SMTP_SECURE"), true)
	cfg.AllowInsecure = boolEnv(getenv("SMTP_ALLOW_INSECURE"), false)
	return cfg, nil
}

func boolEnv(v string, def bool) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v == "true"
}

// SMTPMailer sends through an SMTP server. Settings are read on every send,
// so a server started without SMTP configured fails only the sends.
type SMTPMailer struct {
	getenv func(string) string
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(getenv func(string) string) *SMTPMailer {
	if getenv == nil {
		getenv = os.Getenv
	}
	return &SMTPMailer{getenv: getenv}
}

func (m *SMTPMailer) Check() error {
	_, err := LoadSMTPConfig(m.getenv)
	return err
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	cfg, err := LoadSMTPConfig(m.getenv)
	if err != nil {
		return err
	}

	out, err := buildMsg(cfg, msg)
	if err != nil {
		return models.ValidationError("%v", err)
	}

	client, err := mail.NewClient(cfg.Host, clientOptions(cfg)...)
	if err != nil {
		return models.ConfigError("smtp client: %v", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return models.UpstreamError("smtp send failed", err)
	}
	return nil
}

func clientOptions(cfg SMTPConfig) []mail.Option {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.AllowInsecure {
		opts = append(opts, mail.WithTLSConfig(&tls.Config{
			ServerName:         cfg.Host,
			InsecureSkipVerify: true,
		}))
	}
	return opts
}

func buildMsg(cfg SMTPConfig, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(cfg.FromName, cfg.FromEmail); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if cfg.ReplyTo != "" {
		if err := m.ReplyTo(cfg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}
