package account

import "context"

// Mailer delivers account mail. Implementations report whether a message was sent.
type Mailer interface {
	SendVerification(ctx context.Context, to, name, link string) error
	SendPasswordReset(ctx context.Context, to, name, token string) error
	Enabled() bool
}
