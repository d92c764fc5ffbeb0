package openrouter

import (
	"net/http"
)

// attributionTransport injects OpenRouter's optional attribution headers
// identifying the calling application into every request.
type attributionTransport struct {
	base     http.RoundTripper
	siteURL  string
	siteName string
}

// RoundTrip implements http.RoundTripper. The request is cloned before
// mutation, per the RoundTripper contract.
func (t *attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if t.siteURL != "" {
		cloned.Header.Set("HTTP-Referer", t.siteURL)
	}
	if t.siteName != "" {
		cloned.Header.Set("X-Title", t.siteName)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(cloned)
}
