package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/audit"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/httpresp"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	reader AuditReader
	log    *zap.Logger
}

func NewAuditLogsHandler(reader AuditReader, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{reader: reader, log: log.Named("audit_logs")}
}

func (h *AuditLogsHandler) Routes(d *Dispatcher) {
	d.Register("getAuditLogs", AccessAdmin, h.List)
}

// "action" is taken by the envelope, so the filter uses filterAction.
type auditLogsRequest struct {
	FilterAction string   `json:"filterAction"`
	Entity       string   `json:"entity"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	Page         FlexUint `json:"page"`
	Limit        FlexUint `json:"limit"`
}

func (h *AuditLogsHandler) List(c *gin.Context, req *Request) {
	var in auditLogsRequest
	if err := req.Bind(&in); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	f := audit.Filter{
		Action: in.FilterAction,
		Entity: in.Entity,
		Page:   int(in.Page),
		Limit:  int(in.Limit),
	}

	// --------------------------------------------------
	// Optional date range (YYYY-MM-DD, inclusive)
	// --------------------------------------------------

	if in.From != "" {
		from, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			httperr.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		f.From = &from
	}
	if in.To != "" {
		to, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			httperr.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		f.To = &to
	}

	logs, total, err := h.reader.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Server("list audit logs", err))
		return
	}

	page, limit := f.Page, f.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	httpresp.OK(c, "", gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
