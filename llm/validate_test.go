package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantValid bool
		wantError string
	}{
		{name: "ok", status: 200, wantValid: true},
		{name: "unauthorized", status: 401, body: `{"error":"bad key"}`, wantError: "Invalid API key"},
		{name: "rate limited", status: 429, wantError: "Rate limit exceeded"},
		{name: "server error", status: 500, wantError: "Service temporarily unavailable. Please try again later."},
		{name: "bad gateway", status: 502, wantError: "Service temporarily unavailable. Please try again later."},
		{name: "other status with body", status: 403, body: "forbidden by policy", wantError: "forbidden by policy"},
		{name: "other status empty body", status: 418, wantError: "Unknown error occurred"},
		{name: "other status whitespace body", status: 403, body: "  \n", wantError: "Unknown error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyStatus(tt.status, tt.body)
			if got.Valid != tt.wantValid {
				t.Errorf("ClassifyStatus(%d).Valid = %v, want %v", tt.status, got.Valid, tt.wantValid)
			}
			if got.Error != tt.wantError {
				t.Errorf("ClassifyStatus(%d).Error = %q, want %q", tt.status, got.Error, tt.wantError)
			}
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	got := NetworkFailure(errors.New("dial tcp: connection refused"))
	if got.Valid {
		t.Error("Expected invalid result for network failure")
	}
	if got.Error != "dial tcp: connection refused" {
		t.Errorf("Expected exception message surfaced, got %q", got.Error)
	}

	if NetworkFailure(nil).Error != "Network error occurred" {
		t.Error("Expected generic message when there is no error text")
	}
}

func TestProbeEndpoint(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	result := ProbeEndpoint(context.Background(), nil, server.URL, map[string]string{
		"Authorization": "Bearer test-key",
	})
	if !result.Valid {
		t.Fatalf("Expected valid result, got %+v", result)
	}
	if seenAuth != "Bearer test-key" {
		t.Errorf("Expected auth header forwarded, got %q", seenAuth)
	}
}

func TestProbeEndpointUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	result := ProbeEndpoint(context.Background(), nil, server.URL, nil)
	if result.Valid {
		t.Error("Expected invalid result")
	}
	if result.Error != "Invalid API key" {
		t.Errorf("Expected invalid key message, got %q", result.Error)
	}
}

func TestProbeEndpointNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close() // probe hits a dead endpoint

	result := ProbeEndpoint(context.Background(), nil, server.URL, nil)
	if result.Valid {
		t.Error("Expected invalid result")
	}
	if result.Error == "" {
		t.Error("Expected a non-empty error message")
	}
}
