package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/testutil"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
)

type mockMailer struct {
	mock.Mock
	enabled bool
}

func (m *mockMailer) Enabled() bool { return m.enabled }

func (m *mockMailer) SendVerification(ctx context.Context, to, name, link string) error {
	return m.Called(ctx, to, name, link).Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, name, token string) error {
	return m.Called(ctx, to, name, token).Error(0)
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Lookup(ctx context.Context, idToken, apiKey string) (*domain.LookupResult, error) {
	args := m.Called(ctx, idToken, apiKey)
	res, _ := args.Get(0).(*domain.LookupResult)
	return res, args.Error(1)
}

func (m *mockProvider) ApplyOobCode(ctx context.Context, oobCode, apiKey string) (string, error) {
	args := m.Called(ctx, oobCode, apiKey)
	return args.String(0), args.Error(1)
}

var testNow = time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

var testSettings = Settings{
	VerifyTokenTTL: 24 * time.Hour,
	ResetTokenTTL:  time.Hour,
	SessionTTL:     24 * time.Hour,
	PublicBaseURL:  "http://localhost:8080",
	ExposeTokens:   true,
}

type fixture struct {
	store  *testutil.Store
	hasher *domain.Hasher
	mailer *mockMailer
	clock  *timezone.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	store.Now = func() time.Time { return testNow }
	return &fixture{
		store:  store,
		hasher: domain.NewHasher(bcrypt.MinCost),
		mailer: &mockMailer{},
		clock:  timezone.FixedClock(testNow),
	}
}

func (f *fixture) register() *Register {
	return NewRegister(f.store.Users(), f.hasher, f.mailer, f.clock, testSettings, zap.NewNop())
}

func (f *fixture) login() *Login {
	return NewLogin(f.store.Users(), f.hasher, f.store.Sessions(), f.clock, testSettings)
}

// at returns a fixture copy whose clock reads t.
func (f *fixture) at(t time.Time) *fixture {
	cp := *f
	cp.clock = timezone.FixedClock(t)
	return &cp
}

func nopLogger() *zap.Logger { return zap.NewNop() }
