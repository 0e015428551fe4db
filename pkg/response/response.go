package response

import (
	"errors"
	"net/http"

	"marketplace_api/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status:  http.StatusOK,
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage writes a 200 envelope with a custom message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status:  http.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status:  http.StatusCreated,
		Success: true,
		Message: "created",
		Data:    data,
	})
}

// Error writes an error envelope with the given HTTP status.
func Error(c *gin.Context, httpCode int, msg string) {
	c.JSON(httpCode, Response{
		Status:  httpCode,
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

// HandleError maps a domain error onto the status table and writes it.
func HandleError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Error(c, http.StatusNotFound, "record not found")
		return
	}
	Error(c, StatusOf(err), err.Error())
}

// StatusOf resolves the HTTP status for a domain error kind.
func StatusOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindBadRequest:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.KindNotAcceptable:
		return http.StatusNotAcceptable
	case apperrors.KindGone:
		return http.StatusGone
	case apperrors.KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusServiceUnavailable
	}
}
