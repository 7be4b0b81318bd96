package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/validators"
)

// ExternalIdentity reconciles local users with the identity provider's view.
type ExternalIdentity struct {
	users    domain.UserRepository
	provider domain.IdentityProvider
}

func NewExternalIdentity(users domain.UserRepository, provider domain.IdentityProvider) *ExternalIdentity {
	return &ExternalIdentity{users: users, provider: provider}
}

// VerifyToken asks the provider about idToken and marks the local user verified.
// The token is only checked for JWT shape; its signature is the provider's concern.
func (uc *ExternalIdentity) VerifyToken(ctx context.Context, idToken, apiKey string) (string, error) {
	idToken = strings.TrimSpace(idToken)
	apiKey = strings.TrimSpace(apiKey)
	if idToken == "" || apiKey == "" {
		return "", httperr.Validation("idToken and apiKey are required")
	}

	if _, _, err := jwt.NewParser().ParseUnverified(idToken, jwt.MapClaims{}); err != nil {
		return "", httperr.Validation("Invalid idToken")
	}

	res, err := uc.provider.Lookup(ctx, idToken, apiKey)
	if err != nil {
		return "", providerFailure(err, "Failed to validate idToken with Firebase", "Invalid Firebase response")
	}

	email := validators.NormalizeEmail(res.Email)
	if email == "" {
		return "", httperr.Validation("Email not present in token")
	}
	if !res.EmailVerified {
		return "", httperr.Forbidden("Email not verified according to Firebase").With("email", email)
	}

	if err := uc.markVerified(ctx, email); err != nil {
		return "", err
	}
	return email, nil
}

// ApplyOobCode redeems an email action code with the provider.
func (uc *ExternalIdentity) ApplyOobCode(ctx context.Context, oobCode, apiKey string) (string, error) {
	oobCode = strings.TrimSpace(oobCode)
	apiKey = strings.TrimSpace(apiKey)
	if oobCode == "" || apiKey == "" {
		return "", httperr.Validation("oobCode and apiKey are required")
	}

	email, err := uc.provider.ApplyOobCode(ctx, oobCode, apiKey)
	if err != nil {
		return "", providerFailure(err, "Failed to apply oobCode with Firebase", "Firebase did not return email")
	}

	email = validators.NormalizeEmail(email)
	if err := uc.markVerified(ctx, email); err != nil {
		return "", err
	}
	return email, nil
}

func (uc *ExternalIdentity) markVerified(ctx context.Context, email string) error {
	_, err := uc.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.NotFound("User not found").With("email", email)
	}
	if err != nil {
		return httperr.Server("lookup user", err)
	}

	if err := uc.users.MarkVerifiedByEmail(ctx, email); err != nil {
		return httperr.Server("mark verified by email", err)
	}
	return nil
}

// providerFailure maps a provider error to ExternalServiceError. A 200 answer
// that could not be used gets badPayload as its message.
func providerFailure(err error, failed, badPayload string) error {
	var perr *domain.ProviderError
	if !errors.As(err, &perr) {
		return httperr.External(failed, err)
	}

	msg := failed
	if perr.Status == http.StatusOK {
		msg = badPayload
	}

	e := httperr.External(msg, err)
	if perr.Body != nil {
		e.With("firebase_response", perr.Body)
	}
	return e
}
