package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/glamconnect/internal/config"
	"github.com/BruksfildServices01/glamconnect/internal/domain/account"
)

// New returns an SMTP mailer when SMTP is configured and a no-op one otherwise.
func New(cfg config.SMTPConfig, log *zap.Logger) account.Mailer {
	if !cfg.Enabled() {
		log.Info("smtp not configured, account mail disabled")
		return Noop{}
	}
	return NewSMTP(cfg, log)
}

// ======================================================
// SMTP
// ======================================================

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTP struct {
	from   string
	dialer sender
	log    *zap.Logger
}

func NewSMTP(cfg config.SMTPConfig, log *zap.Logger) *SMTP {
	return &SMTP{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		log:    log.Named("mailer"),
	}
}

func (s *SMTP) Enabled() bool { return true }

func (s *SMTP) SendVerification(ctx context.Context, to, name, link string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to GlamConnect. Confirm your email address by opening the link below:</p>"+
			"<p><a href=\"%s\">%s</a></p><p>The link expires in 24 hours.</p>",
		name, link, link,
	)
	text := fmt.Sprintf("Hi %s,\n\nConfirm your email address: %s\n\nThe link expires in 24 hours.", name, link)

	return s.send(ctx, to, "Verify your GlamConnect account", body, text)
}

func (s *SMTP) SendPasswordReset(ctx context.Context, to, name, token string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Use this code to reset your GlamConnect password:</p><p><b>%s</b></p>"+
			"<p>If you did not ask for a reset you can ignore this message.</p>",
		name, token,
	)
	text := fmt.Sprintf("Hi %s,\n\nPassword reset code: %s", name, token)

	return s.send(ctx, to, "Reset your GlamConnect password", body, text)
}

func (s *SMTP) send(ctx context.Context, to, subject, html, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	m.AddAlternative("text/plain", text)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Warn("send mail failed", zap.String("subject", subject), zap.Error(err))
		return err
	}
	return nil
}

// ======================================================
// Noop
// ======================================================

type Noop struct{}

func (Noop) Enabled() bool { return false }

func (Noop) SendVerification(context.Context, string, string, string) error { return nil }

func (Noop) SendPasswordReset(context.Context, string, string, string) error { return nil }
