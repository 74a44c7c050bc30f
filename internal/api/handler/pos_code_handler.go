package handler

import (
	"github.com/gin-gonic/gin"

	"police-personnel/internal/service"
	"police-personnel/pkg/response"
)

// PosCodeHandler position-code lookup
type PosCodeHandler struct {
	posCodeSvc service.PosCodeService
}

// NewPosCodeHandler creates a PosCodeHandler
func NewPosCodeHandler(posCodeSvc service.PosCodeService) *PosCodeHandler {
	return &PosCodeHandler{posCodeSvc: posCodeSvc}
}

// ListPosCodes
// GET /api/v1/pos-code
func (h *PosCodeHandler) ListPosCodes(c *gin.Context) {
	codes, err := h.posCodeSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, codes, len(codes))
}
