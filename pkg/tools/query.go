package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/smn2gnt/MCP-Salesforce/pkg/observability/logging"
)

type soqlQueryInput struct {
	Query string `json:"query,omitempty" jsonschema:"The SOQL query to execute"`
}

type soslSearchInput struct {
	Search string `json:"search,omitempty" jsonschema:"The SOSL search to execute (e.g., 'FIND {John Smith} IN ALL FIELDS')"`
}

func (s *Service) runSoqlQuery(ctx context.Context, _ *mcp.CallToolRequest, in soqlQueryInput) (*mcp.CallToolResult, any, error) {
	if in.Query == "" {
		return errorResult("missing 'query' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	result, err := client.Query(ctx, in.Query)
	if err != nil {
		logging.FromContext(ctx).Error("soql query failed", zap.Error(err))
		return errorResult("error executing query: %s", err.Error()), nil, nil
	}

	return jsonResult("SOQL Query Results", result), nil, nil
}

func (s *Service) runSoslSearch(ctx context.Context, _ *mcp.CallToolRequest, in soslSearchInput) (*mcp.CallToolResult, any, error) {
	if in.Search == "" {
		return errorResult("missing 'search' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	result, err := client.Search(ctx, in.Search)
	if err != nil {
		logging.FromContext(ctx).Error("sosl search failed", zap.Error(err))
		return errorResult("error executing search: %s", err.Error()), nil, nil
	}

	return jsonResult("SOSL Search Results", result), nil, nil
}
