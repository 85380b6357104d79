package salesforce

import (
	"context"
	"encoding/json"
	neturl "net/url"
)

// rawResult wraps a passthrough response so empty bodies (204 responses)
// still serialize to something meaningful for the caller.
func rawResult(body []byte, status int) (json.RawMessage, error) {
	if len(body) == 0 {
		ack, err := json.Marshal(map[string]int{"status": status})
		return ack, err
	}
	return json.RawMessage(body), nil
}

// ToolingExecute performs a raw Tooling API request. Action is the path
// under the Tooling base, e.g. "sobjects/CustomField" or "query/?q=...".
func (c *Client) ToolingExecute(ctx context.Context, method, action string, data any) (json.RawMessage, error) {
	body, status, err := c.do(ctx, method, c.toolingURL(action), nil, data, nil)
	if err != nil {
		return nil, err
	}
	return rawResult(body, status)
}

// ToolingQuery runs a SOQL query against the Tooling API.
func (c *Client) ToolingQuery(ctx context.Context, soql string) (*QueryResult, error) {
	params := neturl.Values{}
	params.Set("q", soql)

	var result QueryResult
	if err := c.getJSON(ctx, c.toolingURL("query/"), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ApexExecute performs a raw Apex REST request against /services/apexrest.
func (c *Client) ApexExecute(ctx context.Context, method, action string, data any) (json.RawMessage, error) {
	body, status, err := c.do(ctx, method, c.apexURL(action), nil, data, nil)
	if err != nil {
		return nil, err
	}
	return rawResult(body, status)
}

// Restful performs a raw REST data API request. Path is relative to the
// /services/data/vNN.N/ base.
func (c *Client) Restful(ctx context.Context, method, path string, params neturl.Values, data any) (json.RawMessage, error) {
	body, status, err := c.do(ctx, method, c.restURL(path), params, data, nil)
	if err != nil {
		return nil, err
	}
	return rawResult(body, status)
}
