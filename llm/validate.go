package llm

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// KeyValidation is the typed outcome of an API key probe. Validation never
// fails with an error value; every outcome, including network failure, is
// expressed here.
type KeyValidation struct {
	Valid bool
	Error string
}

// Messages for the fixed validation outcomes.
const (
	msgInvalidKey         = "Invalid API key"
	msgRateLimited        = "Rate limit exceeded"
	msgServiceUnavailable = "Service temporarily unavailable. Please try again later."
	msgUnknownError       = "Unknown error occurred"
	msgNetworkError       = "Network error occurred"
)

// probeTimeout bounds the validation probe; it is a UI-facing check and
// should fail fast.
const probeTimeout = 15 * time.Second

// ClassifyStatus maps a probe response to a validation outcome. The status
// code is the sole signal: 200 is valid, 401 an invalid key, 429 rate
// limiting, >=500 a transient service problem. Any other non-OK status
// surfaces the response body text, or a generic message when the body is
// empty.
func ClassifyStatus(status int, body string) KeyValidation {
	switch {
	case status == http.StatusOK:
		return KeyValidation{Valid: true}
	case status == http.StatusUnauthorized:
		return KeyValidation{Error: msgInvalidKey}
	case status == http.StatusTooManyRequests:
		return KeyValidation{Error: msgRateLimited}
	case status >= http.StatusInternalServerError:
		return KeyValidation{Error: msgServiceUnavailable}
	default:
		body = strings.TrimSpace(body)
		if body == "" {
			return KeyValidation{Error: msgUnknownError}
		}
		return KeyValidation{Error: body}
	}
}

// NetworkFailure classifies a failed probe transport. The error text is
// surfaced directly; a blank message falls back to a generic one.
func NetworkFailure(err error) KeyValidation {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return KeyValidation{Error: msgNetworkError}
	}
	return KeyValidation{Error: err.Error()}
}

// ProbeEndpoint performs the authenticated GET used by adapters to validate
// credentials: a request against the backend's model-listing endpoint with
// backend-specific headers, classified purely by status code.
func ProbeEndpoint(ctx context.Context, client *http.Client, endpoint string, headers map[string]string) KeyValidation {
	if client == nil {
		client = &http.Client{Timeout: probeTimeout}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NetworkFailure(err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return NetworkFailure(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return ClassifyStatus(resp.StatusCode, string(body))
}
