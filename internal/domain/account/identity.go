package account

import (
	"context"
	"fmt"
)

// LookupResult is what the identity provider reports about an id token.
type LookupResult struct {
	Email         string
	EmailVerified bool
}

// IdentityProvider is the external service asserting email ownership.
type IdentityProvider interface {
	Lookup(ctx context.Context, idToken, apiKey string) (*LookupResult, error)
	ApplyOobCode(ctx context.Context, oobCode, apiKey string) (string, error)
}

// ProviderError carries the provider's raw answer for diagnostics.
type ProviderError struct {
	Status int
	Body   any
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("identity provider: status %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("identity provider: status %d", e.Status)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
