package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/healthdash/internal/infra/gateway"
	apperrors "github.com/yanqian/healthdash/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps the dashboard error taxonomy onto HTTP statuses.
func fromDomainError(err error) *HTTPError {
	var (
		reqErr       *gateway.RequestError
		transportErr *gateway.TransportError
	)
	message := apperrors.Message(err)
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		return NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, message, err)
	case apperrors.IsCode(err, apperrors.CodeNotAuthenticated):
		return NewHTTPError(http.StatusUnauthorized, apperrors.CodeNotAuthenticated, message, err)
	case apperrors.IsCode(err, apperrors.CodeNoReport):
		return NewHTTPError(http.StatusConflict, apperrors.CodeNoReport, message, err)
	case errors.As(err, &reqErr):
		return NewHTTPError(http.StatusBadGateway, "backend_error", reqErr.Message, err)
	case errors.As(err, &transportErr):
		return NewHTTPError(http.StatusServiceUnavailable, "backend_unavailable", "health service unreachable", err)
	case apperrors.IsCode(err, apperrors.CodeExportFailed):
		return NewHTTPError(http.StatusInternalServerError, apperrors.CodeExportFailed, message, err)
	case apperrors.IsCode(err, apperrors.CodeSessionStore):
		return NewHTTPError(http.StatusInternalServerError, apperrors.CodeSessionStore, message, err)
	default:
		return asHTTPError(err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func abortWithDomainError(c *gin.Context, err error) {
	abortWithError(c, fromDomainError(err))
}

func abortInvalidBody(c *gin.Context, err error) {
	abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", err.Error(), err))
}
