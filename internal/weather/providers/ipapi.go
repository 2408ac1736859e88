package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"
)

const ipapiURL = "https://ipapi.co/json/"

// IPAPILocator implements weather.Locator using ipapi.co.
type IPAPILocator struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewIPAPILocator(client *http.Client) *IPAPILocator {
	return &IPAPILocator{
		baseURL: ipapiURL,
		client:  client,
		circuit: newBreaker("ipapi"),
	}
}

// WithBaseURL points the locator at a different endpoint (tests, proxies).
func (l *IPAPILocator) WithBaseURL(u string) *IPAPILocator {
	l.baseURL = u
	return l
}

// Locate returns the city for the caller's public IP. The city is optional in
// the response, so an empty string with a nil error is a valid answer.
func (l *IPAPILocator) Locate(ctx context.Context) (string, error) {
	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, l.baseURL, nil)
	}

	resp, err := doRequest(ctx, l.client, l.circuit, buildRequest)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
	}

	var payload struct {
		City   string `json:"city"`
		Error  bool   `json:"error"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode ipapi response: %w", err)
	}
	if payload.Error {
		return "", fmt.Errorf("ipapi lookup failed: %s", payload.Reason)
	}

	return strings.TrimSpace(payload.City), nil
}
