// Package salesforce provides a thin client for the subset of the
// Salesforce REST, Tooling and Bulk APIs that the MCP tools need.
package salesforce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

const (
	// DefaultAPIVersion is the Salesforce API version used when none is configured.
	DefaultAPIVersion = "59.0"

	defaultBulkPollInterval = 2 * time.Second

	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json; charset=UTF-8"
)

// Client is an authenticated handle to a single Salesforce org. It is
// immutable after construction and safe for concurrent use.
type Client struct {
	hc               *http.Client
	instanceURL      string
	sessionID        string
	apiVersion       string
	bulkPollInterval time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithAPIVersion overrides the Salesforce API version, e.g. "59.0".
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = strings.TrimPrefix(version, "v")
	}
}

// WithBulkPollInterval sets how often bulk batch status is polled.
func WithBulkPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.bulkPollInterval = d
	}
}

// NewClient constructs a Client from an instance URL and a session id (an
// OAuth access token or the session id returned by Login). No network call
// is made; the token is assumed valid.
func NewClient(instanceURL, sessionID string, opts ...Option) *Client {
	c := &Client{
		hc:               &http.Client{},
		instanceURL:      strings.TrimSuffix(instanceURL, "/"),
		sessionID:        sessionID,
		apiVersion:       DefaultAPIVersion,
		bulkPollInterval: defaultBulkPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InstanceURL returns the org's instance URL.
func (c *Client) InstanceURL() string {
	return c.instanceURL
}

// APIVersion returns the API version the client talks to.
func (c *Client) APIVersion() string {
	return c.apiVersion
}

// restURL builds a URL under /services/data/vNN.N/.
func (c *Client) restURL(path string) string {
	return fmt.Sprintf("%s/services/data/v%s/%s", c.instanceURL, c.apiVersion, strings.TrimPrefix(path, "/"))
}

// toolingURL builds a URL under the Tooling API base.
func (c *Client) toolingURL(action string) string {
	return c.restURL("tooling/" + strings.TrimPrefix(action, "/"))
}

// apexURL builds a URL under the Apex REST base.
func (c *Client) apexURL(action string) string {
	return fmt.Sprintf("%s/services/apexrest/%s", c.instanceURL, strings.TrimPrefix(action, "/"))
}

// bulkURL builds a URL under the Bulk API 1.0 base.
func (c *Client) bulkURL(path string) string {
	return fmt.Sprintf("%s/services/async/%s/%s", c.instanceURL, c.apiVersion, strings.TrimPrefix(path, "/"))
}

// do performs a JSON request against the given absolute URL and returns the
// raw response body. Responses outside 2xx are decoded into an *APIError.
func (c *Client) do(ctx context.Context, method, rawURL string, params neturl.Values, body any, headers map[string]string) ([]byte, int, error) {
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + params.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.sessionID)
	// Bulk API 1.0 ignores the Authorization header and wants the session
	// id in its own header; setting both keeps one request path.
	req.Header.Set("X-SFDC-Session", c.sessionID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set(contentTypeHeader, contentTypeJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, resp.StatusCode, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, resp.StatusCode, nil
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, params neturl.Values, out any) error {
	body, _, err := c.do(ctx, http.MethodGet, rawURL, params, nil, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
