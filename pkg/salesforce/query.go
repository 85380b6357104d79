package salesforce

import (
	"context"
	"fmt"
	neturl "net/url"
)

// QueryResult is the response of a SOQL query. Records are kept as raw maps
// so that nested relationship fields survive untouched.
type QueryResult struct {
	TotalSize      int              `json:"totalSize"`
	Done           bool             `json:"done"`
	NextRecordsURL string           `json:"nextRecordsUrl,omitempty"`
	Records        []map[string]any `json:"records"`
}

// SearchResult is the response of a SOSL search.
type SearchResult struct {
	SearchRecords []map[string]any `json:"searchRecords"`
}

// Query runs a SOQL query and follows nextRecordsUrl until all pages are
// collected, mirroring the query-all behavior callers expect.
func (c *Client) Query(ctx context.Context, soql string) (*QueryResult, error) {
	params := neturl.Values{}
	params.Set("q", soql)

	var page QueryResult
	if err := c.getJSON(ctx, c.restURL("query/"), params, &page); err != nil {
		return nil, err
	}

	result := &QueryResult{
		TotalSize: page.TotalSize,
		Done:      true,
		Records:   page.Records,
	}

	for !page.Done && page.NextRecordsURL != "" {
		next := c.instanceURL + page.NextRecordsURL
		page = QueryResult{}
		if err := c.getJSON(ctx, next, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch next query page: %w", err)
		}
		result.Records = append(result.Records, page.Records...)
	}

	return result, nil
}

// Search runs a SOSL search, e.g. "FIND {John Smith} IN ALL FIELDS".
func (c *Client) Search(ctx context.Context, sosl string) (*SearchResult, error) {
	params := neturl.Values{}
	params.Set("q", sosl)

	var result SearchResult
	if err := c.getJSON(ctx, c.restURL("search/"), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
