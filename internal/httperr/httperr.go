package httperr

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/glamconnect/internal/httpresp"
)

const genericServerMessage = "Internal server error"

// Write sends a failure envelope.
func Write(c *gin.Context, status int, message string, extra gin.H) {
	httpresp.Fail(c, status, message, extra)
}

func BadRequest(c *gin.Context, message string) {
	Write(c, KindValidation.Status(), message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, KindAuth.Status(), message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	Write(c, KindForbidden.Status(), message, nil)
}

func Internal(c *gin.Context) {
	Write(c, KindServer.Status(), genericServerMessage, nil)
}

// Respond maps err to the envelope. Server errors are logged and replaced by a generic message.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	e, ok := As(err)
	if !ok || e.Kind == KindServer {
		log.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("action", c.GetString("action")),
			zap.Error(err),
		)
		Internal(c)
		return
	}

	if e.Kind == KindExternal && e.Err != nil {
		log.Warn("upstream call failed", zap.String("action", c.GetString("action")), zap.Error(e.Err))
	}

	var extra gin.H
	if len(e.Details) > 0 {
		extra = gin.H{}
		for k, v := range e.Details {
			extra[k] = v
		}
	}
	Write(c, e.Kind.Status(), e.Message, extra)
}
