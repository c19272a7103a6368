package handler

import (
	"time"

	"ecommerce-connect/internal/adapter/http/dto"
	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/core/ports"
	"ecommerce-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

// FormHandler handles legacy payment form signing.
type FormHandler struct {
	svc   ports.FormService
	clock func() time.Time
}

// NewFormHandler creates a new FormHandler. clock stamps the purchase
// time of each form; nil means time.Now.
func NewFormHandler(svc ports.FormService, clock func() time.Time) *FormHandler {
	if clock == nil {
		clock = time.Now
	}
	return &FormHandler{svc: svc, clock: clock}
}

// Sign handles POST /api/v1/forms.
func (h *FormHandler) Sign(c *gin.Context) {
	var req dto.FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	dto.SanitizeStruct(&req)

	form := domain.NewPaymentForm(h.clock, req.Fields())
	signed, err := h.svc.Sign(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewFormResponse(signed))
}
