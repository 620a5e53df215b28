package api

import "fmt"

// ErrorKind classifies request failures
type ErrorKind string

const (
	// KindTransport is a network-level failure, no response was received
	KindTransport ErrorKind = "transport"
	// KindServer is a non-2xx response carrying a server-supplied message
	KindServer ErrorKind = "server"
	// KindValidation is a client-side validation failure, no request was made
	KindValidation ErrorKind = "validation"
	// KindNotFound marks an empty or missing resource payload
	KindNotFound ErrorKind = "not_found"
)

// RequestError is a structured request failure. Message is user-facing and
// rendered verbatim by the views.
type RequestError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
	Internal   error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Internal.Error())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error
func (e *RequestError) Unwrap() error {
	return e.Internal
}

// NewTransportError creates a transport-level request error
func NewTransportError(message string, internal error) *RequestError {
	return &RequestError{Kind: KindTransport, Message: message, Internal: internal}
}

// NewServerError creates an error for a non-2xx response
func NewServerError(statusCode int, message string) *RequestError {
	return &RequestError{Kind: KindServer, Message: message, StatusCode: statusCode}
}

// NewValidationError creates a client-side validation error
func NewValidationError(message string) *RequestError {
	return &RequestError{Kind: KindValidation, Message: message}
}

// NewNotFoundError marks a resource that came back empty
func NewNotFoundError(message string) *RequestError {
	return &RequestError{Kind: KindNotFound, Message: message}
}

// UserMessage extracts the displayable message from any error, falling back
// to the error text itself
func UserMessage(err error) string {
	if reqErr, ok := err.(*RequestError); ok {
		return reqErr.Message
	}
	return err.Error()
}
