package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure and fixes the HTTP status it is reported with.
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindForbidden
	KindNotFound
	KindExpired
	KindExternal
	// KindUnavailable is a 500 whose message is safe to show.
	KindUnavailable
)

func (k Kind) Status() int {
	switch k {
	case KindValidation, KindExternal:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindExpired:
		return "expired"
	case KindExternal:
		return "external"
	case KindUnavailable:
		return "unavailable"
	default:
		return "server"
	}
}

// Error is the only error type whose Message is shown to API clients.
type Error struct {
	Kind    Kind
	Message string
	// Details are merged into the response envelope.
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) With(key string, value any) *Error {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error { return New(KindValidation, message) }
func Conflict(message string) *Error   { return New(KindConflict, message) }
func Auth(message string) *Error       { return New(KindAuth, message) }
func Forbidden(message string) *Error  { return New(KindForbidden, message) }
func NotFound(message string) *Error   { return New(KindNotFound, message) }
func Expired(message string) *Error    { return New(KindExpired, message) }

func Unavailable(message string) *Error { return New(KindUnavailable, message) }

func External(message string, cause error) *Error {
	return &Error{Kind: KindExternal, Message: message, Err: cause}
}

// Server wraps an internal failure; its cause is logged, never returned to clients.
func Server(message string, cause error) *Error {
	return &Error{Kind: KindServer, Message: message, Err: cause}
}

func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindServer
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
