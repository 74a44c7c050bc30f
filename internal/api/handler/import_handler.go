package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"police-personnel/internal/api/middleware"
	"police-personnel/internal/dto"
	"police-personnel/internal/service"
	"police-personnel/internal/workbook"
	"police-personnel/pkg/response"
)

// ImportHandler spreadsheet import endpoints
type ImportHandler struct {
	importSvc service.ImportService
	maxBytes  int64
}

// NewImportHandler creates an ImportHandler. Uploads above maxBytes are rejected.
func NewImportHandler(importSvc service.ImportService, maxBytes int64) *ImportHandler {
	return &ImportHandler{importSvc: importSvc, maxBytes: maxBytes}
}

// Preview reads the uploaded workbook and returns every row with its validation result
// POST /api/v1/personnel/import/preview  (multipart field "file")
func (h *ImportHandler) Preview(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "file too large")
			return
		}
		response.BadRequest(c, response.CodeInvalidParams, "file is required")
		return
	}
	if fh.Size > h.maxBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "file too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "cannot open upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "cannot read upload")
		return
	}

	result, err := h.importSvc.Preview(c.Request.Context(), fh.Filename, data)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	response.OK(c, result)
}

// Commit stores the reviewed rows one at a time and reports the tally
// POST /api/v1/personnel/import/commit
func (h *ImportHandler) Commit(c *gin.Context) {
	var req dto.ImportCommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "request body too large")
			return
		}
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.importSvc.Commit(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleImportError(c, err)
		return
	}

	response.OK(c, result)
}

// Template downloads the import template
// GET /api/v1/personnel/import/template
func (h *ImportHandler) Template(c *gin.Context) {
	buf, filename, err := h.importSvc.Template()
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ImportHandler) handleImportError(c *gin.Context, err error) {
	var parseErr *workbook.ParseError
	switch {
	case errors.Is(err, service.ErrImportEmpty):
		response.BadRequest(c, 14001, "no data rows found in file")
	case errors.As(err, &parseErr):
		response.BadRequest(c, 14002, parseErr.Error())
	default:
		response.InternalError(c)
	}
}
