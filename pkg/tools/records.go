package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type getRecordInput struct {
	ObjectName string `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject (e.g., 'Account', 'Contact')"`
	RecordID   string `json:"record_id,omitempty" jsonschema:"The 15 or 18 character Salesforce record ID"`
}

type createRecordInput struct {
	ObjectName string         `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject (e.g., 'Account', 'Contact')"`
	Data       map[string]any `json:"data,omitempty" jsonschema:"Field names and values for the new record"`
}

type updateRecordInput struct {
	ObjectName string         `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject (e.g., 'Account', 'Contact')"`
	RecordID   string         `json:"record_id,omitempty" jsonschema:"The 15 or 18 character Salesforce record ID"`
	Data       map[string]any `json:"data,omitempty" jsonschema:"Field names and values to update"`
}

func (s *Service) getRecord(ctx context.Context, _ *mcp.CallToolRequest, in getRecordInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" || in.RecordID == "" {
		return errorResult("missing 'object_name' or 'record_id' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	record, err := client.GetRecord(ctx, in.ObjectName, in.RecordID)
	if err != nil {
		return errorResult("error retrieving record: %s", err.Error()), nil, nil
	}

	return jsonResult(fmt.Sprintf("%s Record", in.ObjectName), record), nil, nil
}

func (s *Service) createRecord(ctx context.Context, _ *mcp.CallToolRequest, in createRecordInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" || len(in.Data) == 0 {
		return errorResult("missing 'object_name' or 'data' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	result, err := client.CreateRecord(ctx, in.ObjectName, in.Data)
	if err != nil {
		return errorResult("error creating record: %s", err.Error()), nil, nil
	}

	return jsonResult("Create Record Result", result), nil, nil
}

func (s *Service) updateRecord(ctx context.Context, _ *mcp.CallToolRequest, in updateRecordInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" || in.RecordID == "" || len(in.Data) == 0 {
		return errorResult("missing 'object_name', 'record_id' or 'data' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	status, err := client.UpdateRecord(ctx, in.ObjectName, in.RecordID, in.Data)
	if err != nil {
		return errorResult("error updating record: %s", err.Error()), nil, nil
	}

	return jsonResult("Update Record Result", map[string]any{"status_code": status, "success": true}), nil, nil
}

func (s *Service) deleteRecord(ctx context.Context, _ *mcp.CallToolRequest, in getRecordInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" || in.RecordID == "" {
		return errorResult("missing 'object_name' or 'record_id' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	status, err := client.DeleteRecord(ctx, in.ObjectName, in.RecordID)
	if err != nil {
		return errorResult("error deleting record: %s", err.Error()), nil, nil
	}

	return jsonResult("Delete Record Result", map[string]any{"status_code": status, "success": true}), nil, nil
}
