package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuditAction names a security-relevant operation.
type AuditAction string

const (
	AuditActionSignMessage    AuditAction = "message.sign"
	AuditActionSignForm       AuditAction = "form.sign"
	AuditActionDecodeResponse AuditAction = "response.decode"
)

// AuditLog creates an audit middleware that records every successful
// signing or decoding operation as a structured log event.
func AuditLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}

		action := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		event := log.Info().
			Str("audit_action", string(action)).
			Str("request_id", c.GetString(CtxRequestID)).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status())
		if subject := c.GetString(CtxSubject); subject != "" {
			event = event.Str("subject", subject)
		}
		if kind := c.Param("kind"); kind != "" {
			event = event.Str("kind", kind)
		}
		event.Msg("audit")
	}
}

func mapRouteToAction(route, method string) AuditAction {
	if method != http.MethodPost {
		return ""
	}
	switch route {
	case "/api/v1/messages/:kind":
		return AuditActionSignMessage
	case "/api/v1/forms":
		return AuditActionSignForm
	case "/api/v1/responses/:kind":
		return AuditActionDecodeResponse
	}
	return ""
}
