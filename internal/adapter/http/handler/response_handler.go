package handler

import (
	"io"

	"ecommerce-connect/internal/adapter/http/dto"
	"ecommerce-connect/internal/core/domain"
	"ecommerce-connect/internal/core/ports"
	"ecommerce-connect/pkg/apperror"
	"ecommerce-connect/pkg/response"

	"github.com/gin-gonic/gin"
)

// ResponseHandler decodes gateway replies posted back by callers.
type ResponseHandler struct {
	decoder ports.ResponseDecoder
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(decoder ports.ResponseDecoder) *ResponseHandler {
	return &ResponseHandler{decoder: decoder}
}

// Decode handles POST /api/v1/responses/:kind. The body is the raw XML
// reply as received from the gateway.
func (h *ResponseHandler) Decode(c *gin.Context) {
	kind, err := domain.ParseKind(c.Param("kind"))
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, bindError(err))
		return
	}

	decoded, err := h.decoder.Decode(c.Request.Context(), kind, payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewDecodedResponse(decoded))
}
