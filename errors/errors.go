package errors

import (
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ValidationError       ErrorType = "VALIDATION_ERROR"
	MethodNotAllowedError ErrorType = "METHOD_NOT_ALLOWED"
	ConfigurationError    ErrorType = "CONFIGURATION_ERROR"
	DeliveryError         ErrorType = "DELIVERY_ERROR"
	ServerError           ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType         `json:"type"`
	Message    string            `json:"message"`
	Detail     string            `json:"detail,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
	Payload    interface{}       `json:"payload,omitempty"`
	HTTPStatus int               `json:"-"`
	Raw        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status associated with the error.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// ValidationFailed reports missing or invalid submission fields. The fields
// map carries one message per offending field so the form can highlight them.
func ValidationFailed(message string, fields map[string]string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Fields:     fields,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MethodNotAllowed is returned for any request that is not a POST.
func MethodNotAllowed() *AppError {
	return &AppError{
		Type:       MethodNotAllowedError,
		Message:    "Method not allowed",
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

// MissingConfig enumerates the configuration keys absent from the
// environment. Only key names are exposed, never their values.
func MissingConfig(keys []string) *AppError {
	return &AppError{
		Type:       ConfigurationError,
		Message:    fmt.Sprintf("Missing env: %s", strings.Join(keys, ", ")),
		HTTPStatus: http.StatusInternalServerError,
	}
}

// DeliveryFailed reports a provider rejection, timeout, or transport fault.
// The payload is the provider's diagnostic response (or a synthesized
// description for transport faults) and is propagated to the caller.
func DeliveryFailed(payload interface{}) *AppError {
	return &AppError{
		Type:       DeliveryError,
		Message:    "Resend error",
		Payload:    payload,
		HTTPStatus: http.StatusBadGateway,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case MethodNotAllowedError:
		return http.StatusMethodNotAllowed
	case DeliveryError:
		return http.StatusBadGateway
	case ConfigurationError, ServerError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
