package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	"github.com/BruksfildServices01/glamconnect/internal/config"
	"github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/infra/mailer"
	"github.com/BruksfildServices01/glamconnect/internal/infra/sms"
	"github.com/BruksfildServices01/glamconnect/internal/models"
	"github.com/BruksfildServices01/glamconnect/internal/platform/metrics"
	"github.com/BruksfildServices01/glamconnect/internal/testutil"
	"github.com/BruksfildServices01/glamconnect/internal/timezone"
)

// idToken only needs the JWT shape; the provider is stubbed.
const idToken = "eyJhbGciOiJSUzI1NiJ9.eyJlbWFpbCI6ImFAeC5jb20ifQ.c2ln"

type stubIdentity struct{}

func (stubIdentity) Lookup(context.Context, string, string) (*account.LookupResult, error) {
	return &account.LookupResult{Email: "a@x.com", EmailVerified: true}, nil
}

func (stubIdentity) ApplyOobCode(context.Context, string, string) (string, error) {
	return "a@x.com", nil
}

type stubAuditReader struct {
	filter audit.Filter
}

func (s *stubAuditReader) List(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.filter = f
	return []models.AuditLog{{ID: 1, Action: "booking.admin_update", Entity: "booking"}}, 1, nil
}

type server struct {
	engine *gin.Engine
	store  *testutil.Store
	audit  *stubAuditReader
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := timezone.FixedClock(time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC))
	store := testutil.NewStore()
	store.Now = clock.Now

	cfg := &config.Config{
		SessionTTL:               time.Hour,
		VerifyTokenTTL:           24 * time.Hour,
		ResetTokenTTL:            time.Hour,
		BcryptCost:               4,
		ExposeVerificationTokens: true,
		PublicBaseURL:            "http://salon.test",
	}

	reader := &stubAuditReader{}
	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:    cfg,
		Log:       zap.NewNop(),
		Metrics:   metrics.New("glamconnect_test"),
		Clock:     clock,
		Users:     store.Users(),
		Admins:    store.Admins(),
		Services:  store.Services(),
		Bookings:  store.Bookings(),
		Sessions:  store.Sessions(),
		Mailer:    mailer.Noop{},
		SMS:       sms.Noop{},
		Identity:  stubIdentity{},
		AuditLogs: reader,
	})

	return &server{engine: r, store: store, audit: reader}
}

func (s *server) post(t *testing.T, token string, body gin.H) (int, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(t, req)
}

func (s *server) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

// signupVerified registers a customer, verifies the email and logs in.
func (s *server) signupVerified(t *testing.T, email string) (token string, userID uint) {
	t.Helper()
	code, body := s.post(t, "", gin.H{
		"action": "signup", "name": "Alice", "email": email,
		"contact": "+15551234567", "password": "Secret1!",
	})
	require.Equal(t, http.StatusCreated, code, body)

	verifyToken := body["verification"].(map[string]any)["token"].(string)
	code, body = s.post(t, "", gin.H{"action": "verifyEmail", "token": verifyToken})
	require.Equal(t, http.StatusOK, code, body)

	code, body = s.post(t, "", gin.H{"action": "login", "email": email, "password": "Secret1!"})
	require.Equal(t, http.StatusOK, code, body)

	user := body["user"].(map[string]any)
	return body["token"].(string), uint(user["userID"].(float64))
}

func (s *server) adminToken(t *testing.T) string {
	t.Helper()
	hash, err := account.NewHasher(4).Hash("admin123")
	require.NoError(t, err)
	s.store.AddAdmin(models.AdminUser{
		Username: "admin", Email: "admin@glam.test", PasswordHash: hash,
		Role: models.AdminRoleAdmin, IsActive: true,
	})

	code, body := s.post(t, "", gin.H{"action": "adminLogin", "email": "admin@glam.test", "password": "admin123"})
	require.Equal(t, http.StatusOK, code, body)
	return body["token"].(string)
}

func (s *server) addService(t *testing.T, name string) uint {
	t.Helper()
	svc := &models.Service{ServiceName: name, Price: decimal.RequireFromString("25.00"), IsActive: true}
	require.NoError(t, s.store.Services().Create(context.Background(), svc))
	return svc.ID
}

// ======================================================
// Accounts
// ======================================================

func TestSignupVerifyLoginFlow(t *testing.T) {
	s := newServer(t)

	code, body := s.post(t, "", gin.H{
		"action": "signup", "name": "Alice", "email": "a@x.com",
		"contact": "+15551234567", "password": "Secret1!",
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "customer", user["role"])
	assert.Equal(t, false, user["is_verified"])

	code, body = s.post(t, "", gin.H{"action": "login", "email": "a@x.com", "password": "Secret1!"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Email not verified")

	// the emailed link is a GET
	verifyToken := s.verificationToken(t, "a@x.com")
	req := httptest.NewRequest(http.MethodGet, "/api?action=verifyEmail&token="+verifyToken, nil)
	code, body = s.do(t, req)
	require.Equal(t, http.StatusOK, code, body)

	code, body = s.post(t, "", gin.H{"action": "login", "email": "a@x.com", "password": "Secret1!"})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "a@x.com", body["user"].(map[string]any)["email"])
}

func (s *server) verificationToken(t *testing.T, email string) string {
	t.Helper()
	u, err := s.store.Users().FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, u.VerifyToken)
	return *u.VerifyToken
}

func TestSignup_DuplicateEmail(t *testing.T) {
	s := newServer(t)
	s.signupVerified(t, "a@x.com")

	code, body := s.post(t, "", gin.H{
		"action": "signup", "name": "Other", "email": "A@X.com",
		"contact": "123", "password": "pw",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, body["success"])
}

func TestSignupAndReset_PasswordTooLong(t *testing.T) {
	s := newServer(t)
	long := strings.Repeat("a", 80)

	code, body := s.post(t, "", gin.H{
		"action": "signup", "name": "Alice", "email": "a@x.com",
		"contact": "+15551234567", "password": long,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at most 72 bytes", body["message"])

	s.signupVerified(t, "a@x.com")
	code, body = s.post(t, "", gin.H{"action": "requestPasswordReset", "email": "a@x.com"})
	require.Equal(t, http.StatusOK, code, body)
	token := body["reset"].(map[string]any)["token"].(string)

	code, body = s.post(t, "", gin.H{"action": "resetPassword", "token": token, "newPassword": long})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Password must be at most 72 bytes", body["message"])
}

func TestServiceFields_NullIsActiveIgnored(t *testing.T) {
	s := newServer(t)
	adminToken := s.adminToken(t)

	code, body := s.post(t, adminToken, gin.H{"action": "createService", "service_name": "Facial", "is_active": nil})
	require.Equal(t, http.StatusCreated, code, body)

	code, body = s.post(t, adminToken, gin.H{
		"action": "updateService", "id": body["serviceID"], "description": "Deep clean", "is_active": nil,
	})
	require.Equal(t, http.StatusOK, code, body)

	_, body = s.post(t, "", gin.H{"action": "getServices"})
	svc := body["services"].([]any)[0].(map[string]any)
	assert.Equal(t, "Deep clean", svc["description"])
	assert.Equal(t, true, svc["is_active"])
}

func TestGetOnlyAllowsVerifyEmail(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api?action=getServices", nil)
	code, body := s.do(t, req)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid action", body["message"])
}

func TestFirebaseActions(t *testing.T) {
	s := newServer(t)
	s.signupVerified(t, "a@x.com")

	code, body := s.post(t, "", gin.H{"action": "verifyFirebaseToken", "idToken": idToken, "apiKey": "k"})
	assert.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "a@x.com", body["email"])

	code, body = s.post(t, "", gin.H{"action": "applyOobCode", "oobCode": "oob", "apiKey": "k"})
	assert.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Email verified and user updated", body["message"])
}

// ======================================================
// Bookings
// ======================================================

func TestCreateAndListBookings(t *testing.T) {
	s := newServer(t)
	token, userID := s.signupVerified(t, "a@x.com")
	serviceID := s.addService(t, "Haircut")

	code, body := s.post(t, token, gin.H{
		"action": "createBooking", "userID": userID, "serviceId": serviceID,
		"date": "2025-12-01", "time": "10:00",
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.Greater(t, body["bookingID"].(float64), float64(0))

	code, body = s.post(t, token, gin.H{"action": "getBookings", "userID": userID})
	require.Equal(t, http.StatusOK, code, body)

	rows := body["bookings"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "2025-12-01", row["date"])
	assert.Equal(t, "pending", row["status"])
	assert.Equal(t, "Haircut", row["service_name"])
}

func TestCreateBooking_StringIDs(t *testing.T) {
	s := newServer(t)
	token, userID := s.signupVerified(t, "a@x.com")
	serviceID := s.addService(t, "Nails")

	code, body := s.post(t, token, gin.H{
		"action": "createBooking", "userID": json.Number(uintString(userID)),
		"serviceId": uintString(serviceID), "date": "2025-12-01", "time": "10:00:00",
	})
	assert.Equal(t, http.StatusCreated, code, body)
}

func uintString(v uint) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}

func TestBookingActionsRequireSession(t *testing.T) {
	s := newServer(t)

	code, body := s.post(t, "", gin.H{"action": "createBooking", "serviceId": 1, "date": "2025-12-01", "time": "10:00"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authentication required", body["message"])

	code, body = s.post(t, "not-a-session", gin.H{"action": "getBookings"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid or expired session", body["message"])
}

func TestGetBookings_OtherUserForbidden(t *testing.T) {
	s := newServer(t)
	token, _ := s.signupVerified(t, "a@x.com")
	_, otherID := s.signupVerified(t, "b@x.com")

	code, body := s.post(t, token, gin.H{"action": "getBookings", "userID": otherID})

	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Not authorized to view these bookings", body["message"])
}

func TestAdminOverridesOwnership(t *testing.T) {
	s := newServer(t)
	ownerToken, ownerID := s.signupVerified(t, "a@x.com")
	otherToken, _ := s.signupVerified(t, "b@x.com")
	adminToken := s.adminToken(t)
	serviceID := s.addService(t, "Haircut")

	code, body := s.post(t, ownerToken, gin.H{
		"action": "createBooking", "userID": ownerID, "serviceId": serviceID,
		"date": "2025-12-01", "time": "10:00",
	})
	require.Equal(t, http.StatusCreated, code, body)
	bookingID := uint(body["bookingID"].(float64))

	code, body = s.post(t, otherToken, gin.H{
		"action": "updateBooking", "bookingID": bookingID,
		"date": "2025-12-02", "time": "11:00", "notes": "mine now",
	})
	assert.Equal(t, http.StatusForbidden, code, body)

	code, _ = s.post(t, otherToken, gin.H{"action": "adminUpdateBooking", "bookingID": bookingID, "status": "confirmed"})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = s.post(t, adminToken, gin.H{"action": "adminUpdateBooking", "bookingID": bookingID, "status": "confirmed"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Booking updated by admin", body["message"])

	b, ok := s.store.Booking(bookingID)
	require.True(t, ok)
	assert.Equal(t, "confirmed", string(b.Status))

	// admins see every booking
	code, body = s.post(t, adminToken, gin.H{"action": "getBookings"})
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["bookings"].([]any), 1)

	code, _ = s.post(t, adminToken, gin.H{"action": "adminDeleteBooking", "bookingID": bookingID})
	assert.Equal(t, http.StatusOK, code)
	_, ok = s.store.Booking(bookingID)
	assert.False(t, ok)
}

// ======================================================
// Catalog
// ======================================================

func TestServiceCatalogAdminFlow(t *testing.T) {
	s := newServer(t)
	adminToken := s.adminToken(t)

	code, body := s.post(t, adminToken, gin.H{"action": "createService", "service_name": "Facial", "price": "40.50"})
	require.Equal(t, http.StatusCreated, code, body)
	serviceID := body["serviceID"]

	code, body = s.post(t, adminToken, gin.H{"action": "updateService", "id": serviceID, "is_active": "0"})
	require.Equal(t, http.StatusOK, code, body)

	code, body = s.post(t, "", gin.H{"action": "getServices"})
	require.Equal(t, http.StatusOK, code)
	services := body["services"].([]any)
	require.Len(t, services, 1)
	assert.Equal(t, "Facial", services[0].(map[string]any)["service_name"])
	assert.Equal(t, false, services[0].(map[string]any)["is_active"])

	code, body = s.post(t, adminToken, gin.H{"action": "uploadServiceImage", "id": serviceID, "image": "aGk="})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Image storage not configured", body["message"])

	code, _ = s.post(t, adminToken, gin.H{"action": "deleteService", "id": serviceID})
	require.Equal(t, http.StatusOK, code)

	_, body = s.post(t, "", gin.H{"action": "getServices"})
	assert.Empty(t, body["services"])
}

func TestCustomerCannotManageServices(t *testing.T) {
	s := newServer(t)
	token, _ := s.signupVerified(t, "a@x.com")

	code, body := s.post(t, token, gin.H{"action": "createService", "service_name": "Facial"})

	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Admin access required", body["message"])
}

func TestGetAuditLogs(t *testing.T) {
	s := newServer(t)
	adminToken := s.adminToken(t)

	code, body := s.post(t, adminToken, gin.H{
		"action": "getAuditLogs", "filterAction": "booking.admin_update",
		"from": "2025-11-01", "page": "2",
	})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, "booking.admin_update", s.audit.filter.Action)
	require.NotNil(t, s.audit.filter.From)

	code, _ = s.post(t, adminToken, gin.H{"action": "getAuditLogs", "from": "yesterday"})
	assert.Equal(t, http.StatusBadRequest, code)
}

// ======================================================
// Envelope
// ======================================================

func TestEnvelopeErrors(t *testing.T) {
	s := newServer(t)

	code, body := s.post(t, "", gin.H{"action": "dropTables"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid action", body["message"])

	req := httptest.NewRequest(http.MethodPost, "/api.php", bytes.NewBufferString("{not json"))
	code, body = s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid JSON body", body["message"])
}

func TestCORSPreflight(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)
	s.post(t, "", gin.H{"action": "getServices"})

	code, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `glamconnect_test_actions_total{action="getServices",status="200"} 1`)
}
