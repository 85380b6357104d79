package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/smn2gnt/MCP-Salesforce/pkg/salesforce"
)

type objectNameInput struct {
	ObjectName string `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject (e.g., 'Account', 'Contact')"`
}

type fieldDetailsInput struct {
	ObjectName string `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject (e.g., 'Account', 'Contact')"`
	FieldName  string `json:"field_name,omitempty" jsonschema:"The API name of the field (e.g., 'GLN__c', 'Name', 'Email')"`
}

type emptyInput struct{}

func (s *Service) getObjectFields(ctx context.Context, _ *mcp.CallToolRequest, in objectNameInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" {
		return errorResult("missing 'object_name' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	fields, _, err := s.objectFields(ctx, client, in.ObjectName)
	if err != nil {
		return errorResult("error describing %s: %s", in.ObjectName, err.Error()), nil, nil
	}

	return jsonResult(fmt.Sprintf("%s Metadata", in.ObjectName), fields), nil, nil
}

// fieldDetails is the full per-field payload of get_field_details.
type fieldDetails struct {
	Name                string                     `json:"name"`
	Label               string                     `json:"label"`
	Type                string                     `json:"type"`
	Length              int                        `json:"length"`
	Required            bool                       `json:"required"`
	Unique              bool                       `json:"unique"`
	ExternalID          bool                       `json:"external_id"`
	Updateable          bool                       `json:"updateable"`
	Createable          bool                       `json:"createable"`
	Custom              bool                       `json:"custom"`
	Calculated          bool                       `json:"calculated"`
	DefaultedOnCreate   bool                       `json:"defaulted_on_create"`
	DependencyFollowing bool                       `json:"dependency_following"`
	PicklistValues      []salesforce.PicklistValue `json:"picklist_values"`
	ReferencedTo        []string                   `json:"referenced_to"`
	RelationshipName    string                     `json:"relationship_name"`
}

func (s *Service) getFieldDetails(ctx context.Context, _ *mcp.CallToolRequest, in fieldDetailsInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" || in.FieldName == "" {
		return errorResult("missing 'object_name' or 'field_name' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	describe, err := client.Describe(ctx, in.ObjectName)
	if err != nil {
		return errorResult("failed to get field details: %s", err.Error()), nil, nil
	}

	for _, f := range describe.Fields {
		if !strings.EqualFold(f.Name, in.FieldName) {
			continue
		}
		details := fieldDetails{
			Name:                f.Name,
			Label:               f.Label,
			Type:                f.Type,
			Length:              f.Length,
			Required:            !f.Nillable,
			Unique:              f.Unique,
			ExternalID:          f.ExternalID,
			Updateable:          f.Updateable,
			Createable:          f.Createable,
			Custom:              f.Custom,
			Calculated:          f.Calculated,
			DefaultedOnCreate:   f.DefaultedOnCreate,
			DependencyFollowing: f.DependentPicklist,
			PicklistValues:      f.PicklistValues,
			ReferencedTo:        f.ReferenceTo,
			RelationshipName:    f.RelationshipName,
		}
		return jsonResult(fmt.Sprintf("Field Details for %s.%s", in.ObjectName, f.Name), details), nil, nil
	}

	// Help the caller recover from a near-miss by listing similar names.
	var similar []string
	for _, f := range describe.Fields {
		if strings.Contains(strings.ToLower(f.Name), strings.ToLower(in.FieldName)) {
			similar = append(similar, f.Name)
			if len(similar) == 10 {
				break
			}
		}
	}

	return jsonResult("Field lookup failed", map[string]any{
		"error":          fmt.Sprintf("Field '%s' not found in object '%s'", in.FieldName, in.ObjectName),
		"similar_fields": similar,
	}), nil, nil
}

func (s *Service) listSObjects(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	global, err := client.DescribeGlobal(ctx)
	if err != nil {
		return errorResult("error listing sobjects: %s", err.Error()), nil, nil
	}

	names := make([]string, len(global.SObjects))
	for i, o := range global.SObjects {
		names[i] = o.Name
	}

	return jsonResult("Available SObjects", names), nil, nil
}

func (s *Service) getRecordTypes(ctx context.Context, _ *mcp.CallToolRequest, in objectNameInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" {
		return errorResult("missing 'object_name' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	soql := fmt.Sprintf("SELECT Id, Name, DeveloperName, Description, IsActive FROM RecordType WHERE SobjectType = '%s'", in.ObjectName)
	result, err := client.Query(ctx, soql)
	if err != nil {
		return errorResult("error getting record types: %s", err.Error()), nil, nil
	}

	return jsonResult(fmt.Sprintf("%s Record Types", in.ObjectName), result), nil, nil
}

func (s *Service) getUserPermissions(ctx context.Context, _ *mcp.CallToolRequest, in objectNameInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" {
		return errorResult("missing 'object_name' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	describe, err := client.Describe(ctx, in.ObjectName)
	if err != nil {
		return errorResult("error getting user permissions: %s", err.Error()), nil, nil
	}

	fieldPerms := make([]map[string]any, len(describe.Fields))
	for i, f := range describe.Fields {
		fieldPerms[i] = map[string]any{
			"name":       f.Name,
			"label":      f.Label,
			"createable": f.Createable,
			"updateable": f.Updateable,
			"nillable":   f.Nillable,
			"filterable": f.Filterable,
			"sortable":   f.Sortable,
		}
	}

	permissions := map[string]any{
		"object_permissions": map[string]bool{
			"createable":   describe.Createable,
			"deletable":    describe.Deletable,
			"queryable":    describe.Queryable,
			"updateable":   describe.Updateable,
			"retrieveable": describe.Retrieveable,
		},
		"field_permissions": fieldPerms,
	}

	return jsonResult(fmt.Sprintf("%s User Permissions", in.ObjectName), permissions), nil, nil
}

func (s *Service) clearMetadataCache(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	n := s.ClearMetadataCache()
	return textResult("Cleared cached field metadata for %d object(s).", n), nil, nil
}
