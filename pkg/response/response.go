package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Business codes. 0 is success; the leading digits group the module.
const (
	CodeOK             = 0
	CodeInvalidParams  = 10001
	CodeUnauthorized   = 10002
	CodeForbidden      = 10003
	CodeTooManyRequest = 10004
	CodeBodyTooLarge   = 10005
	CodeInternal       = 50000
)

// Response envelope for every JSON reply
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// ListData list payload with its length
type ListData struct {
	List  interface{} `json:"list"`
	Total int         `json:"total"`
}

// ── success ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

// OKList 200 with a list payload
func OKList(c *gin.Context, list interface{}, total int) {
	OK(c, ListData{List: list, Total: total})
}

// ── errors ──

// Error generic error reply
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails error reply carrying structured details
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message string, details interface{}) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
