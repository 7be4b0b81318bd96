package sms

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/config"
)

// Notifier sends short text messages to customers.
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}

func New(cfg config.TwilioConfig, log *zap.Logger) Notifier {
	if !cfg.Enabled() {
		log.Info("twilio not configured, booking sms disabled")
		return Noop{}
	}
	return NewTwilio(cfg, log)
}

type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type Twilio struct {
	from string
	api  messageAPI
	log  *zap.Logger
}

func NewTwilio(cfg config.TwilioConfig, log *zap.Logger) *Twilio {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &Twilio{
		from: cfg.From,
		api:  client.Api,
		log:  log.Named("sms"),
	}
}

func (t *Twilio) Send(ctx context.Context, to, body string) error {
	if to == "" {
		return fmt.Errorf("sms: empty recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		t.log.Debug("sms sent", zap.String("sid", *resp.Sid))
	}
	return nil
}

type Noop struct{}

func (Noop) Send(context.Context, string, string) error { return nil }

// BookingConfirmation is the text sent when a booking is created.
func BookingConfirmation(name, serviceName, date, hm string) string {
	if serviceName == "" {
		return fmt.Sprintf("Hi %s, your GlamConnect booking on %s at %s is received and pending confirmation.", name, date, hm)
	}
	return fmt.Sprintf("Hi %s, your GlamConnect booking for %s on %s at %s is received and pending confirmation.", name, serviceName, date, hm)
}
