package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"police-personnel/internal/dto"
	"police-personnel/internal/service"
	"police-personnel/pkg/response"
)

// UserHandler account administration, admin only
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers newest first
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, users, len(users))
}

// GetUser
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// CreateUser
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.Created(c, user)
}

// UpdateUser
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// DeleteUser also ends every session of the account
// DELETE /api/v1/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	case errors.Is(err, service.ErrUsernameExists):
		response.BadRequest(c, 12002, "username already exists")
	case errors.Is(err, service.ErrEmailExists):
		response.BadRequest(c, 12003, "email already exists")
	case errors.Is(err, service.ErrUsernameImmutable):
		response.BadRequest(c, 12004, "username cannot be changed")
	case errors.Is(err, service.ErrUserSelfDelete):
		response.BadRequest(c, 12005, "cannot delete your own account")
	case errors.Is(err, service.ErrUserSelfRoleChange):
		response.BadRequest(c, 12006, "cannot change your own role")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, 12007, "invalid role")
	default:
		response.InternalError(c)
	}
}
