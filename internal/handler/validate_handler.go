package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/schema"
	"invoiceqc/internal/service"
)

// ValidateHandler handles JSON batch validation.
type ValidateHandler struct {
	pipeline *service.Pipeline
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(pipeline *service.Pipeline) *ValidateHandler {
	return &ValidateHandler{pipeline: pipeline}
}

type validateRequest struct {
	Invoices []domain.Invoice `json:"invoices"`
}

// ValidateJSON handles POST /validate-json. The body is checked against the
// request schema before decoding; any mismatch is a hard 400.
func (h *ValidateHandler) ValidateJSON(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequestBody, err))
		return
	}

	if err := schema.CheckValidateRequest(body); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequestBody, err))
		return
	}

	var req validateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", domain.ErrInvalidRequestBody, err))
		return
	}

	log.Info().
		Str("request_id", c.GetString("request_id")).
		Int("invoices", len(req.Invoices)).
		Msg("validation request received")

	report := h.pipeline.Validate(req.Invoices)
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: report})
}
