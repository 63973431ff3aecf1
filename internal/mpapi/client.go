// Package mpapi is a minimal client for the Materials Project HTTP API,
// covering the single endpoint this tool needs: the Pourbaix entries of one
// element's chemical system in water.
//
// Example usage:
//
//	client, err := mpapi.NewClient("")
//	if err != nil {
//	    // no key in the environment
//	}
//	entries, err := client.PourbaixEntries(ctx, "Fe")
package mpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"

	"github.com/karelplanken/pourbaix/internal/ctxlog"
	"github.com/karelplanken/pourbaix/internal/pourbaix"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.materialsproject.org"

// apiKeyEnv is the environment variable consulted when no key is passed in.
const apiKeyEnv = "MP_API_KEY"

// Client talks to the materials database. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host. Used by tests and
// for self-hosted mirrors.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client, for custom timeouts or
// transports.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client authenticated with the given API key. An empty
// key falls back to the MP_API_KEY environment variable; if that is empty too,
// ErrMissingAPIKey is returned.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		httpClient: &http.Client{},
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// entriesEnvelope is the response wrapper around the entry payload.
type entriesEnvelope struct {
	Data []pourbaix.Entry `json:"data"`
}

// Chemsys returns the dash-joined, alphabetically sorted chemical system of
// an element in water, e.g. "Fe-H-O" for iron or "H-O-Zn" for zinc.
func Chemsys(element string) string {
	symbols := []string{element, "H", "O"}
	sort.Strings(symbols)
	return strings.Join(symbols, "-")
}

// PourbaixEntries fetches every Pourbaix entry of the element's chemical
// system in water.
func (c *Client) PourbaixEntries(ctx context.Context, element string) ([]pourbaix.Entry, error) {
	logger := ctxlog.FromContext(ctx)

	query := url.Values{}
	query.Set("chemsys", Chemsys(element))
	endpoint := fmt.Sprintf("%s/pourbaix_entries/?%s", c.baseURL, query.Encode())

	logger.Debug("Requesting Pourbaix entries.", "element", element, "url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", element, err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries for %s: %w", element, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decoding
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &AuthError{Status: resp.StatusCode}
	case http.StatusBadRequest, http.StatusNotFound:
		return nil, &LookupError{Element: element, Status: resp.StatusCode}
	default:
		return nil, &StatusError{Status: resp.StatusCode}
	}

	var envelope entriesEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode entries for %s: %w", element, err)
	}

	logger.Debug("Received Pourbaix entries.", "element", element, "count", len(envelope.Data))
	return envelope.Data, nil
}
