package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/domain/session"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/middleware"
	"github.com/BruksfildServices01/glamconnect/internal/platform/metrics"
)

// MaxBodyBytes bounds a request body; image uploads are the largest.
const MaxBodyBytes = 12 << 20

// Access is the session an action requires.
type Access int

const (
	AccessPublic Access = iota
	AccessCustomer
	AccessAdmin
	// AccessSession accepts either a customer or an admin session.
	AccessSession
)

// Request is one decoded action call.
type Request struct {
	Action  string
	Body    []byte
	Session *session.Session
}

// Bind decodes the raw body into dst.
func (r *Request) Bind(dst any) error {
	return binding.JSON.BindBody(r.Body, dst)
}

type ActionFunc func(c *gin.Context, req *Request)

type action struct {
	access     Access
	allowQuery bool
	handle     ActionFunc
}

// ======================================================
// DISPATCHER
// ======================================================

// Dispatcher routes {"action": ...} envelopes to handlers.
type Dispatcher struct {
	actions map[string]action
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewDispatcher(m *metrics.Metrics, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		actions: map[string]action{},
		metrics: m,
		log:     log.Named("dispatcher"),
	}
}

func (d *Dispatcher) Register(name string, access Access, fn ActionFunc) {
	d.actions[name] = action{access: access, handle: fn}
}

// AllowQuery makes an action reachable by GET with its fields in the query string.
func (d *Dispatcher) AllowQuery(name string) {
	if a, ok := d.actions[name]; ok {
		a.allowQuery = true
		d.actions[name] = a
	}
}

// HandlePost serves POST /api.
func (d *Dispatcher) HandlePost(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "Request body too large", nil)
			return
		}
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	var envelope struct {
		Action string `json:"action"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &envelope); err != nil {
			httperr.BadRequest(c, "Invalid JSON body")
			return
		}
	}

	d.dispatch(c, envelope.Action, body, false)
}

// HandleGet serves GET /api?action=...; only actions marked with AllowQuery answer.
func (d *Dispatcher) HandleGet(c *gin.Context) {
	fields := map[string]string{}
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	body, err := json.Marshal(fields)
	if err != nil {
		httperr.Internal(c)
		return
	}

	d.dispatch(c, c.Query("action"), body, true)
}

func (d *Dispatcher) dispatch(c *gin.Context, name string, body []byte, viaQuery bool) {
	start := time.Now()

	a, ok := d.actions[name]
	if !ok || (viaQuery && !a.allowQuery) {
		httperr.BadRequest(c, "Invalid action")
		d.observe("unknown", c, start)
		return
	}

	c.Set(middleware.ContextAction, name)
	defer d.observe(name, c, start)

	sess, ok := d.authorize(c, a.access)
	if !ok {
		return
	}

	a.handle(c, &Request{Action: name, Body: body, Session: sess})
}

// authorize writes the failure response itself and reports whether to continue.
func (d *Dispatcher) authorize(c *gin.Context, access Access) (*session.Session, bool) {
	sess, err := middleware.SessionFrom(c)

	if access == AccessPublic {
		return sess, true
	}

	if sess == nil {
		if err != nil && !errors.Is(err, middleware.ErrInvalidSession) {
			httperr.Internal(c)
			return nil, false
		}
		if err != nil {
			httperr.Unauthorized(c, "Invalid or expired session")
			return nil, false
		}
		httperr.Unauthorized(c, "Authentication required")
		return nil, false
	}

	switch access {
	case AccessCustomer:
		if !sess.IsCustomer() {
			httperr.ForbiddenResponse(c, "Customer session required")
			return nil, false
		}
	case AccessAdmin:
		if !sess.IsAdmin() {
			httperr.ForbiddenResponse(c, "Admin access required")
			return nil, false
		}
	}

	return sess, true
}

func (d *Dispatcher) observe(name string, c *gin.Context, start time.Time) {
	if d.metrics == nil {
		return
	}
	d.metrics.Observe(name, c.Writer.Status(), time.Since(start))
}
