package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"police-personnel/internal/dto"
	"police-personnel/internal/service"
	"police-personnel/pkg/response"
)

// ExportHandler workbook export
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportPersonnel downloads the filtered personnel list as xlsx
// GET /api/v1/personnel/export?q=&rank=&unit=
func (h *ExportHandler) ExportPersonnel(c *gin.Context) {
	var req dto.PersonnelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportPersonnel(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
