package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"police-personnel/internal/dto"
	"police-personnel/internal/service"
	"police-personnel/pkg/response"
)

// PersonnelHandler personnel record endpoints
type PersonnelHandler struct {
	personnelSvc service.PersonnelService
}

// NewPersonnelHandler creates a PersonnelHandler
func NewPersonnelHandler(personnelSvc service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{personnelSvc: personnelSvc}
}

// ListPersonnel seniority order, optional q / rank / unit filters
// GET /api/v1/personnel
func (h *PersonnelHandler) ListPersonnel(c *gin.Context) {
	var req dto.PersonnelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	list, err := h.personnelSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, list, len(list))
}

// GetPersonnel
// GET /api/v1/personnel/:id
func (h *PersonnelHandler) GetPersonnel(c *gin.Context) {
	p, err := h.personnelSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handlePersonnelError(c, err)
		return
	}

	response.OK(c, p)
}

// CreatePersonnel
// POST /api/v1/personnel
func (h *PersonnelHandler) CreatePersonnel(c *gin.Context) {
	var req dto.PersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	p, err := h.personnelSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handlePersonnelError(c, err)
		return
	}

	response.Created(c, p)
}

// UpdatePersonnel full replacement of the record's fields
// PUT /api/v1/personnel/:id
func (h *PersonnelHandler) UpdatePersonnel(c *gin.Context) {
	var req dto.PersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	p, err := h.personnelSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handlePersonnelError(c, err)
		return
	}

	response.OK(c, p)
}

// DeletePersonnel
// DELETE /api/v1/personnel/:id
func (h *PersonnelHandler) DeletePersonnel(c *gin.Context) {
	if err := h.personnelSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handlePersonnelError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *PersonnelHandler) handlePersonnelError(c *gin.Context, err error) {
	var dateErr *service.DateError
	switch {
	case errors.Is(err, service.ErrPersonnelNotFound):
		response.NotFound(c, 13001, "personnel not found")
	case errors.Is(err, service.ErrPositionRequired):
		response.BadRequest(c, 13002, err.Error())
	case errors.Is(err, service.ErrNationalIDInvalid):
		response.BadRequest(c, 13003, err.Error())
	case errors.Is(err, service.ErrNationalIDDigits):
		response.BadRequest(c, 13008, "national ID must contain digits only")
	case errors.Is(err, service.ErrNationalIDExists):
		response.BadRequest(c, 13004, "national ID already exists")
	case errors.Is(err, service.ErrPosCodeNotFound):
		response.BadRequest(c, 13005, "pos code not found")
	case errors.Is(err, service.ErrPersonnelConflict):
		response.Error(c, http.StatusConflict, 13007, "record was modified by another request, reload and retry")
	case errors.As(err, &dateErr):
		response.ErrorWithDetails(c, http.StatusBadRequest, 13006, "invalid date", gin.H{"field": dateErr.Field, "value": dateErr.Value})
	default:
		response.InternalError(c)
	}
}
