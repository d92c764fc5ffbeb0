package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewBackendError(t *testing.T) {
	original := errors.New("connection reset by peer")
	err := NewBackendError("openai", original)

	if err.Error() != "failed to get response from openai" {
		t.Errorf("Expected opaque message, got %q", err.Error())
	}
	if !errors.Is(err, original) {
		t.Error("Expected wrapped error to unwrap to original")
	}
	if err.Type != ErrorTypeBackend {
		t.Errorf("Expected backend error type, got %s", err.Type)
	}
}

func TestNewBackendErrorClassifiesStreamErrors(t *testing.T) {
	err := NewBackendError("anthropic", errors.New("unexpected end of stream"))
	if err.Type != ErrorTypeStream {
		t.Errorf("Expected stream error type, got %s", err.Type)
	}
	if !IsStreamError(err) {
		t.Error("Expected IsStreamError to return true")
	}
	if !IsBackendError(err) {
		t.Error("Stream errors are still backend failures")
	}

	chunkErr := NewBackendError("openai", errors.New("malformed chunk received"))
	if chunkErr.Type != ErrorTypeStream {
		t.Errorf("Expected stream error type for chunk error, got %s", chunkErr.Type)
	}
}

func TestIsAuthError(t *testing.T) {
	authErr := &Error{Type: ErrorTypeAuth, Message: "unauthorized"}
	if !IsAuthError(authErr) {
		t.Error("Expected IsAuthError to return true for auth error")
	}
	if IsAuthError(NewBackendError("openai", nil)) {
		t.Error("Expected IsAuthError to return false for backend error")
	}
	if IsAuthError(errors.New("plain")) {
		t.Error("Expected IsAuthError to return false for plain error")
	}
}

func TestIsRateLimitError(t *testing.T) {
	rlErr := &Error{Type: ErrorTypeRateLimit, Message: "slow down"}
	if !IsRateLimitError(rlErr) {
		t.Error("Expected IsRateLimitError to return true for rate limit error")
	}
	if IsRateLimitError(NewBackendError("openai", nil)) {
		t.Error("Expected IsRateLimitError to return false for backend error")
	}
}

func TestErrorTypeSurvivesWrapping(t *testing.T) {
	inner := &Error{Type: ErrorTypeAuth, Message: "unauthorized"}
	wrapped := fmt.Errorf("request failed: %w", inner)
	if !IsAuthError(wrapped) {
		t.Error("Expected classification to see through fmt.Errorf wrapping")
	}
}

func TestTemperatureRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "typical rejection message",
			err:  errors.New("model does not support temperature=0.2"),
			want: true,
		},
		{
			name: "capitalized wording",
			err:  errors.New("This model does not support Temperature overrides"),
			want: true,
		},
		{
			name: "temperature mentioned without rejection phrasing",
			err:  errors.New("temperature must be between 0 and 2"),
			want: false,
		},
		{
			name: "unrelated unsupported parameter",
			err:  errors.New("model does not support tool calls"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TemperatureRejected(tt.err); got != tt.want {
				t.Errorf("TemperatureRejected(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
