package account

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/domain/session"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
)

// Settings are the token lifetimes and link settings shared by the account use cases.
type Settings struct {
	VerifyTokenTTL time.Duration
	ResetTokenTTL  time.Duration
	SessionTTL     time.Duration
	PublicBaseURL  string
	// ExposeTokens echoes verification and reset tokens in responses.
	ExposeTokens bool
}

func (s Settings) VerificationLink(token string) string {
	return s.PublicBaseURL + "/api?action=verifyEmail&token=" + token
}

// issueSession stores a fresh 256-bit session and returns the raw bearer token.
func issueSession(
	ctx context.Context,
	store session.Store,
	kind session.Kind,
	subjectID uint,
	role string,
	expires time.Time,
) (string, error) {

	token, err := domain.NewToken(domain.SessionTokenBytes)
	if err != nil {
		return "", httperr.Server("generate session token", err)
	}

	if err := store.Save(ctx, session.HashToken(token), session.Session{
		Kind:      kind,
		SubjectID: subjectID,
		Role:      role,
		ExpiresAt: expires,
	}); err != nil {
		return "", httperr.Server("save session", err)
	}

	return token, nil
}

// hashPassword reports over-long passwords as a client error.
func hashPassword(h *domain.Hasher, password string) (string, error) {
	hash, err := h.Hash(password)
	if errors.Is(err, domain.ErrPasswordTooLong) {
		return "", httperr.Validation("Password must be at most 72 bytes")
	}
	if err != nil {
		return "", httperr.Server("hash password", err)
	}
	return hash, nil
}
