package llm

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a provider-neutral failure from a backend call.
type Error struct {
	Type        ErrorType
	Message     string
	Retryable   bool
	StatusCode  int
	ProviderErr error // Original backend-specific error, logged but never surfaced
}

// ErrorType represents the category of error.
type ErrorType string

const (
	ErrorTypeAuth               ErrorType = "auth"
	ErrorTypeRateLimit          ErrorType = "rate_limit"
	ErrorTypeServiceUnavailable ErrorType = "service_unavailable"
	ErrorTypeInvalidRequest     ErrorType = "invalid_request"
	ErrorTypeStream             ErrorType = "stream"
	ErrorTypeBackend            ErrorType = "backend"
	ErrorTypeNetwork            ErrorType = "network"
	ErrorTypeUnknown            ErrorType = "unknown"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying backend error.
func (e *Error) Unwrap() error {
	return e.ProviderErr
}

// IsAuthError checks if an error is an authentication failure.
func IsAuthError(err error) bool {
	return errorTypeIs(err, ErrorTypeAuth)
}

// IsRateLimitError checks if an error is a rate limit error.
func IsRateLimitError(err error) bool {
	return errorTypeIs(err, ErrorTypeRateLimit)
}

// IsStreamError checks if an error was classified as a malformed-stream
// failure. The distinction exists for diagnostics only; both stream and
// backend failures are terminal.
func IsStreamError(err error) bool {
	return errorTypeIs(err, ErrorTypeStream)
}

// IsBackendError checks if an error is a terminal backend failure of any
// kind (stream-shaped or otherwise).
func IsBackendError(err error) bool {
	return errorTypeIs(err, ErrorTypeBackend) || errorTypeIs(err, ErrorTypeStream)
}

func errorTypeIs(err error, t ErrorType) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type == t
	}
	return false
}

// NewBackendError wraps a terminal backend failure into the single opaque
// error surfaced to callers. The original error is retained for logging but
// does not appear in the message.
func NewBackendError(provider string, providerErr error) *Error {
	errType := ErrorTypeBackend
	if looksLikeStreamError(providerErr) {
		errType = ErrorTypeStream
	}
	return &Error{
		Type:        errType,
		Message:     fmt.Sprintf("failed to get response from %s", provider),
		Retryable:   false,
		ProviderErr: providerErr,
	}
}

// looksLikeStreamError reports whether an error is stream/chunk-shaped:
// a failure while consuming the response body rather than setting up the
// call.
func looksLikeStreamError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "stream") || strings.Contains(msg, "chunk")
}

// TemperatureRejected reports whether an error indicates the model rejected
// the requested temperature. Backends signal this only through error-message
// wording, so the match rule is deliberately isolated here as a swappable
// predicate rather than inlined at the retry site: when a backend changes
// its phrasing, this is the one place to update.
var TemperatureRejected = func(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "temperature") && strings.Contains(msg, "does not support")
}
