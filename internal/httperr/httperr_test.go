package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestKind_Status(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:  http.StatusBadRequest,
		KindConflict:    http.StatusConflict,
		KindAuth:        http.StatusUnauthorized,
		KindForbidden:   http.StatusForbidden,
		KindNotFound:    http.StatusNotFound,
		KindExpired:     http.StatusGone,
		KindExternal:    http.StatusBadRequest,
		KindServer:      http.StatusInternalServerError,
		KindUnavailable: http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestKindOf_UnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("booking update: %w", Forbidden("Not authorized to update this booking"))

	assert.Equal(t, KindForbidden, KindOf(err))
	assert.True(t, Is(err, KindForbidden))
	assert.Equal(t, KindServer, KindOf(errors.New("boom")))
	assert.False(t, Is(nil, KindServer))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))

	assert.False(t, IsUniqueViolation(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(nil))
}

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api", nil)

	Respond(c, zap.NewNop(), err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestRespond_HidesServerErrorText(t *testing.T) {
	w, body := respond(t, errors.New("Error 1146: Table 'glamconnect_db.bookings' doesn't exist"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Internal server error", body["message"])
}

func TestRespond_ExternalErrorCarriesDetails(t *testing.T) {
	err := External("Failed to validate idToken with Firebase", errors.New("status 400")).
		With("firebase_response", map[string]any{"error": "INVALID_ID_TOKEN"})

	w, body := respond(t, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Failed to validate idToken with Firebase", body["message"])
	assert.Contains(t, body, "firebase_response")
}

func TestRespond_ExpiredToken(t *testing.T) {
	w, body := respond(t, Expired("Token expired"))

	assert.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "Token expired", body["message"])
}
