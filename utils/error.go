package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Kind classifies an AppError for the transport layer.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindInvalidArgument     Kind = "invalid_argument"
	KindConflict            Kind = "conflict"
	KindExternalUnavailable Kind = "external_unavailable"
	KindInternal            Kind = "internal"
)

// AppError carries a stable machine-readable reason next to a human message.
type AppError struct {
	Kind    Kind
	Reason  string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Reason, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any AppError of the same Kind, so callers can test with the
// sentinel values below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Reason == "" && t.Kind == e.Kind
}

var (
	ErrNotFound            = &AppError{Kind: KindNotFound}
	ErrInvalidArgument     = &AppError{Kind: KindInvalidArgument}
	ErrConflict            = &AppError{Kind: KindConflict}
	ErrExternalUnavailable = &AppError{Kind: KindExternalUnavailable}
)

func NotFound(reason, msg string) error {
	return &AppError{Kind: KindNotFound, Reason: reason, Message: msg}
}

func InvalidArgument(reason, msg string, err error) error {
	return &AppError{Kind: KindInvalidArgument, Reason: reason, Message: msg, Err: err}
}

func Conflict(reason, msg string, err error) error {
	return &AppError{Kind: KindConflict, Reason: reason, Message: msg, Err: err}
}

func ExternalUnavailable(reason, msg string, err error) error {
	return &AppError{Kind: KindExternalUnavailable, Reason: reason, Message: msg, Err: err}
}

// Internal wraps an unexpected failure. Its message is logged, never returned
// to clients.
func Internal(msg string, err error) error {
	return &AppError{Kind: KindInternal, Reason: "internal", Message: msg, Err: err}
}

// StatusCode maps an error to the HTTP status the API responds with.
func StatusCode(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindExternalUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:  "An unexpected error occurred. Please try again later.",
					Reason: "internal",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response. Internal failures are
// logged with full detail but answered with a generic message.
func JSONError(c *gin.Context, logger *zap.Logger, err error) {
	status := StatusCode(err)
	var appErr *AppError
	if status == http.StatusInternalServerError || !errors.As(err, &appErr) {
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error", Reason: "internal"})
		return
	}
	logger.Warn(appErr.Message, zap.String("reason", appErr.Reason), zap.Error(appErr.Err))
	c.JSON(status, ErrorResponse{Error: appErr.Message, Reason: appErr.Reason})
}
