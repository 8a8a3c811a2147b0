package models

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Sentinel errors identifying each kind of failure returned by the client.
// Use errors.Is to branch on the kind and errors.As to reach the details.
var (
	// ErrValidation indicates a caller supplied descriptor is missing a field or is malformed.
	ErrValidation = errors.New("paypal: validation error")

	// ErrBusiness indicates PayPal reported a failure with a diagnosable code.
	ErrBusiness = errors.New("paypal: business failure")

	// ErrRedirect indicates the buyer must be sent back to PayPal.
	ErrRedirect = errors.New("paypal: redirect required")

	// ErrTransport indicates PayPal could not be reached or replied with an unrecognised shape.
	ErrTransport = errors.New("paypal: transport failure")

	// ErrConfiguration indicates a required credential or endpoint is missing.
	ErrConfiguration = errors.New("paypal: configuration error")
)

// ValidationError is raised before any network call when a descriptor is
// missing a required field or has an invalid shape.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError returns a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// BusinessError is a failure PayPal explicitly reported.
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// Is matches ErrBusiness
func (e *BusinessError) Is(target error) bool {
	return target == ErrBusiness
}

// RedirectError is a BusinessError whose resolution requires sending the
// buyer back into PayPal with Token.
type RedirectError struct {
	BusinessError
	Token       string
	RedirectURL string
}

func (e *RedirectError) Error() string {
	return e.Message
}

// Is matches ErrRedirect and ErrBusiness
func (e *RedirectError) Is(target error) bool {
	return target == ErrRedirect || target == ErrBusiness
}

// Unwrap exposes the embedded BusinessError to errors.As.
func (e *RedirectError) Unwrap() error {
	return &e.BusinessError
}

// TransportError carries a generic message safe to show to end users. The
// underlying cause is kept for logging only.
type TransportError struct {
	Message string
	Cause   error
}

// NewTransportError wraps cause with a stack trace behind message.
func NewTransportError(message string, cause error) *TransportError {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &TransportError{Message: message, Cause: cause}
}

func (e *TransportError) Error() string {
	return e.Message
}

// Is matches ErrTransport
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ConfigurationError lists the required configuration fields that are
// missing or invalid.
type ConfigurationError struct {
	Fields []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid paypal configuration: [%s]", strings.Join(e.Fields, ", "))
}

// Is matches ErrConfiguration
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
