package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/smn2gnt/MCP-Salesforce/pkg/salesforce"
)

type bulkRecordsInput struct {
	ObjectName string           `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject (e.g., 'Account', 'Contact')"`
	Records    []map[string]any `json:"records,omitempty" jsonschema:"The records to process, up to 10000 per call"`
}

type bulkDeleteInput struct {
	ObjectName string   `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject (e.g., 'Account', 'Contact')"`
	RecordIDs  []string `json:"record_ids,omitempty" jsonschema:"The record IDs to delete, up to 10000 per call"`
}

func (s *Service) bulkCreateRecords(ctx context.Context, _ *mcp.CallToolRequest, in bulkRecordsInput) (*mcp.CallToolResult, any, error) {
	return s.runBulk(ctx, in.ObjectName, salesforce.BulkOperationInsert, in.Records, "Bulk Create Results")
}

func (s *Service) bulkUpdateRecords(ctx context.Context, _ *mcp.CallToolRequest, in bulkRecordsInput) (*mcp.CallToolResult, any, error) {
	for i, rec := range in.Records {
		if id, ok := rec["Id"].(string); !ok || id == "" {
			return errorResult("record at index %d is missing the required 'Id' field", i), nil, nil
		}
	}
	return s.runBulk(ctx, in.ObjectName, salesforce.BulkOperationUpdate, in.Records, "Bulk Update Results")
}

func (s *Service) bulkDeleteRecords(ctx context.Context, _ *mcp.CallToolRequest, in bulkDeleteInput) (*mcp.CallToolResult, any, error) {
	records := make([]map[string]any, len(in.RecordIDs))
	for i, id := range in.RecordIDs {
		records[i] = map[string]any{"Id": id}
	}
	return s.runBulk(ctx, in.ObjectName, salesforce.BulkOperationDelete, records, "Bulk Delete Results")
}

func (s *Service) runBulk(ctx context.Context, objectName, operation string, records []map[string]any, label string) (*mcp.CallToolResult, any, error) {
	if objectName == "" || len(records) == 0 {
		return errorResult("missing 'object_name' or records argument"), nil, nil
	}
	if len(records) > salesforce.MaxBulkRecords {
		return errorResult("too many records: %d exceeds the limit of %d per call", len(records), salesforce.MaxBulkRecords), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	results, err := client.BulkOperation(ctx, objectName, operation, records)
	if err != nil {
		return errorResult("bulk %s failed: %s", operation, err.Error()), nil, nil
	}

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}

	return jsonResult(fmt.Sprintf("%s (%d/%d succeeded)", label, succeeded, len(results)), results), nil, nil
}
