package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/domain/session"
)

const (
	ContextSession      = "session"
	ContextSessionError = "sessionError"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionMiddleware resolves an optional bearer token. It never rejects a
// request; the dispatcher decides per action whether a session is required.
func SessionMiddleware(store session.Store, log *zap.Logger) gin.HandlerFunc {
	log = log.Named("session")

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.Set(ContextSessionError, ErrInvalidSession)
			c.Next()
			return
		}

		sess, err := store.Get(c.Request.Context(), session.HashToken(strings.TrimSpace(parts[1])))
		switch {
		case errors.Is(err, session.ErrNotFound):
			c.Set(ContextSessionError, ErrInvalidSession)
		case err != nil:
			log.Error("session lookup failed", zap.Error(err))
			c.Set(ContextSessionError, err)
		default:
			c.Set(ContextSession, sess)
		}

		c.Next()
	}
}

// SessionFrom returns the resolved session, or nil with the lookup error if any.
func SessionFrom(c *gin.Context) (*session.Session, error) {
	if v, ok := c.Get(ContextSession); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess, nil
		}
	}
	if v, ok := c.Get(ContextSessionError); ok {
		if err, ok := v.(error); ok {
			return nil, err
		}
	}
	return nil, nil
}
