package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError represents a custom application error. Status is the HTTP status
// to respond with; Code is a stable machine-readable identifier clients can
// branch on. Business-rule rejections are terminal and surfaced verbatim;
// only upstream/transport failures (502) are safe to retry.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "validation",
		Message: message,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewInternalError(message string) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Code:    "internal",
		Message: message,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "bad_request",
		Message: message,
	}
}

// Business-rule error constructors
func NewInvalidTripError(message string) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Code:    "invalid_trip",
		Message: message,
	}
}

func NewCapacityExceededError() *AppError {
	return &AppError{
		Status:  http.StatusConflict,
		Code:    "capacity_exceeded",
		Message: "item weight exceeds the trip's remaining capacity",
	}
}

func NewIllegalTransitionError(status, action string) *AppError {
	return &AppError{
		Status:  http.StatusConflict,
		Code:    "illegal_transition",
		Message: fmt.Sprintf("action %q is not allowed for a request in status %q", action, status),
	}
}

func NewDuplicatePaymentError() *AppError {
	return &AppError{
		Status:  http.StatusConflict,
		Code:    "duplicate_payment",
		Message: "the communication fee for this request has already been paid",
	}
}

func NewNotEligibleError(message string) *AppError {
	return &AppError{
		Status:  http.StatusUnprocessableEntity,
		Code:    "not_eligible",
		Message: message,
	}
}

func NewChannelLockedError() *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Code:    "channel_locked",
		Message: "chat is locked until the communication fee is paid",
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Status:  http.StatusForbidden,
		Code:    "unauthorized",
		Message: message,
	}
}

func NewInvalidCredentialsError() *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Code:    "invalid_credentials",
		Message: "invalid email or password",
	}
}

func NewUnauthenticatedError() *AppError {
	return &AppError{
		Status:  http.StatusUnauthorized,
		Code:    "unauthenticated",
		Message: "a valid session token is required",
	}
}

// NewUpstreamError marks a transient failure reaching an external
// collaborator (payment processor). Retryable, unlike business rejections.
func NewUpstreamError(message string) *AppError {
	return &AppError{
		Status:  http.StatusBadGateway,
		Code:    "upstream_unavailable",
		Message: message,
	}
}

// HandleError sends an appropriate HTTP response for an error
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{"error": gin.H{"code": appErr.Code, "message": appErr.Message}})
		return
	}

	// Default to internal server error
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"code": "internal", "message": "Internal server error"}})
}

// HandleSuccess sends a success response
func HandleSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}
