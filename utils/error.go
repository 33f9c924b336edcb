package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes returned by the service layer. Handlers map these to HTTP
// statuses; nothing else about transport leaks below the handler layer.
const (
	CodeUnauthenticated   = "UNAUTHENTICATED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInvalidState      = "INVALID_STATE"
	CodeUnavailable       = "UNAVAILABLE"
	CodeAlreadyRated      = "ALREADY_RATED"
	CodeDuplicateProfile  = "DUPLICATE_PROFILE"
	CodeConflict          = "CONFLICT"
	CodeUnexpected        = "UNEXPECTED"
)

// ServiceError is the typed failure every service operation returns.
type ServiceError struct {
	Code    string
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func Unauthenticated(msg string) error {
	return &ServiceError{Code: CodeUnauthenticated, Message: msg}
}

func Forbidden(msg string) error {
	return &ServiceError{Code: CodeForbidden, Message: msg}
}

func NotFound(msg string) error {
	return &ServiceError{Code: CodeNotFound, Message: msg}
}

func InvalidInput(msg string) error {
	return &ServiceError{Code: CodeInvalidInput, Message: msg}
}

func InvalidTransition(msg string) error {
	return &ServiceError{Code: CodeInvalidTransition, Message: msg}
}

func InvalidState(msg string) error {
	return &ServiceError{Code: CodeInvalidState, Message: msg}
}

func Unavailable(msg string) error {
	return &ServiceError{Code: CodeUnavailable, Message: msg}
}

func AlreadyRated(msg string) error {
	return &ServiceError{Code: CodeAlreadyRated, Message: msg}
}

func DuplicateProfile(msg string) error {
	return &ServiceError{Code: CodeDuplicateProfile, Message: msg}
}

func Conflict(msg string) error {
	return &ServiceError{Code: CodeConflict, Message: msg}
}

func Unexpected(msg string, err error) error {
	return &ServiceError{Code: CodeUnexpected, Message: msg, Err: err}
}

// ErrorCode extracts the taxonomy code from an error chain.
// Untyped errors count as unexpected failures.
func ErrorCode(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeUnexpected
}

// HTTPStatus maps a service error to the status the HTTP layer should emit.
func HTTPStatus(err error) int {
	switch ErrorCode(err) {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidInput, CodeInvalidTransition, CodeInvalidState, CodeUnavailable:
		return http.StatusBadRequest
	case CodeAlreadyRated, CodeDuplicateProfile, CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// JSONServiceError maps a service error onto the wire.
func JSONServiceError(c *gin.Context, err error) {
	var se *ServiceError
	if !errors.As(err, &se) {
		se = &ServiceError{Code: CodeUnexpected, Message: "Server error", Err: err}
	}
	status := HTTPStatus(se)
	if status == http.StatusInternalServerError {
		GetLogger().Error("Service failure", zap.String("code", se.Code), zap.Error(se))
		// Opaque message for unexpected failures.
		c.JSON(status, ErrorResponse{Message: "Server error"})
		return
	}
	GetLogger().Warn("Request rejected", zap.String("code", se.Code), zap.String("message", se.Message))
	c.JSON(status, ErrorResponse{Message: se.Message})
}
