package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/domain/account"
)

// FirebaseClient calls the Identity Toolkit REST API. It only relays the
// provider's answer; verification itself happens on the provider side.
type FirebaseClient struct {
	baseURL       string
	http          *http.Client
	maxRetries    uint64
	retryInterval time.Duration
	log           *zap.Logger
}

type Option func(*FirebaseClient)

func WithHTTPClient(c *http.Client) Option {
	return func(f *FirebaseClient) { f.http = c }
}

func WithRetryInterval(d time.Duration) Option {
	return func(f *FirebaseClient) { f.retryInterval = d }
}

func NewFirebaseClient(
	baseURL string,
	timeout time.Duration,
	maxRetries uint64,
	log *zap.Logger,
	opts ...Option,
) *FirebaseClient {
	c := &FirebaseClient{
		baseURL:       baseURL,
		http:          &http.Client{Timeout: timeout},
		maxRetries:    maxRetries,
		retryInterval: 250 * time.Millisecond,
		log:           log.Named("firebase"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ======================================================
// accounts:lookup
// ======================================================

type lookupResponse struct {
	Users []struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
	} `json:"users"`
}

func (c *FirebaseClient) Lookup(ctx context.Context, idToken, apiKey string) (*account.LookupResult, error) {
	status, raw, err := c.post(ctx, "accounts:lookup", apiKey, map[string]string{"idToken": idToken})
	if err != nil {
		return nil, err
	}

	var out lookupResponse
	if err := json.Unmarshal(raw, &out); err != nil || len(out.Users) == 0 || out.Users[0].Email == "" {
		return nil, &account.ProviderError{
			Status: status,
			Body:   decodeBody(raw),
			Err:    errors.New("no user in lookup response"),
		}
	}

	return &account.LookupResult{
		Email:         out.Users[0].Email,
		EmailVerified: out.Users[0].EmailVerified,
	}, nil
}

// ======================================================
// accounts:update (oobCode)
// ======================================================

type oobResponse struct {
	Email       string `json:"email"`
	RequestType string `json:"requestType"`
}

func (c *FirebaseClient) ApplyOobCode(ctx context.Context, oobCode, apiKey string) (string, error) {
	status, raw, err := c.post(ctx, "accounts:update", apiKey, map[string]string{"oobCode": oobCode})
	if err != nil {
		return "", err
	}

	var out oobResponse
	if err := json.Unmarshal(raw, &out); err != nil || out.Email == "" {
		return "", &account.ProviderError{
			Status: status,
			Body:   decodeBody(raw),
			Err:    errors.New("no email in oobCode response"),
		}
	}
	return out.Email, nil
}

// ======================================================
// Transport
// ======================================================

// post retries transport failures and 5xx answers with exponential backoff.
// Any other non-200 answer is returned at once as a ProviderError.
func (c *FirebaseClient) post(ctx context.Context, method, apiKey string, body any) (int, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", c.baseURL, method, url.QueryEscape(apiKey))

	var (
		status int
		raw    []byte
	)

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.log.Warn("identity provider unreachable", zap.String("method", method), zap.Error(err))
			return &account.ProviderError{Err: err}
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		raw, err = io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return &account.ProviderError{Status: status, Err: err}
		}

		if status == http.StatusOK {
			return nil
		}

		perr := &account.ProviderError{Status: status, Body: decodeBody(raw)}
		if status >= http.StatusInternalServerError {
			c.log.Warn("identity provider error", zap.String("method", method), zap.Int("status", status))
			return perr
		}
		return backoff.Permanent(perr)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval

	err = backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx))
	if err != nil {
		return status, raw, err
	}
	return status, raw, nil
}

// decodeBody returns the JSON document when raw parses, the text otherwise.
func decodeBody(raw []byte) any {
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return v
	}
	return string(raw)
}

var _ account.IdentityProvider = (*FirebaseClient)(nil)
