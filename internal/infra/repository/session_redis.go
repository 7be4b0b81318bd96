package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/session"
)

const sessionKeyPrefix = "session:"

type SessionRedisRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewSessionRedisRepository(client *redis.Client) *SessionRedisRepository {
	return &SessionRedisRepository{client: client, now: time.Now}
}

type redisSession struct {
	Kind      string    `json:"kind"`
	SubjectID uint      `json:"subject_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *SessionRedisRepository) Save(ctx context.Context, tokenHash string, s domain.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	payload, err := json.Marshal(redisSession{
		Kind:      string(s.Kind),
		SubjectID: s.SubjectID,
		Role:      s.Role,
		ExpiresAt: s.ExpiresAt.UTC(),
	})
	if err != nil {
		return err
	}

	return r.client.Set(ctx, sessionKeyPrefix+tokenHash, payload, ttl).Err()
}

func (r *SessionRedisRepository) Get(ctx context.Context, tokenHash string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKeyPrefix+tokenHash).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rs redisSession
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, err
	}
	if !rs.ExpiresAt.After(r.now()) {
		return nil, domain.ErrNotFound
	}

	return &domain.Session{
		Kind:      domain.Kind(rs.Kind),
		SubjectID: rs.SubjectID,
		Role:      rs.Role,
		ExpiresAt: rs.ExpiresAt,
	}, nil
}

var _ domain.Store = (*SessionRedisRepository)(nil)
