package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

type Kind string

const (
	KindCustomer Kind = "customer"
	KindAdmin    Kind = "admin"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	Kind      Kind
	SubjectID uint
	Role      string
	ExpiresAt time.Time
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Kind == KindAdmin
}

func (s *Session) IsCustomer() bool {
	return s != nil && s.Kind == KindCustomer
}

// Store keeps sessions keyed by the hash of their bearer token; raw tokens are never stored.
type Store interface {
	Save(ctx context.Context, tokenHash string, s Session) error
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, tokenHash string) (*Session, error)
}

func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
