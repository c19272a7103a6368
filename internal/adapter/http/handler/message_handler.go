package handler

import (
	"errors"
	"net/http"

	"ecommerce-connect/internal/adapter/http/dto"
	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/core/ports"
	"ecommerce-connect/pkg/apperror"
	"ecommerce-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles structured message signing.
type MessageHandler struct {
	svc ports.MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(svc ports.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Sign handles POST /api/v1/messages/:kind.
func (h *MessageHandler) Sign(c *gin.Context) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	dto.SanitizeStruct(&req)

	signed, err := h.svc.Sign(c.Request.Context(), req.ToTransaction(kind))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.XML(c, signed)
}

// bindError maps a body read or binding failure to an API error.
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.ErrPayloadTooLarge()
	}
	return apperror.Validation(err.Error())
}
