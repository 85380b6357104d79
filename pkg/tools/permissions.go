package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type setFieldPermissionsInput struct {
	ObjectName        string `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject"`
	FieldName         string `json:"field_name,omitempty" jsonschema:"The API name of the custom field (with __c suffix)"`
	PermissionSetName string `json:"permission_set_name,omitempty" jsonschema:"The API name of the permission set or profile (defaults to 'System Administrator')"`
	Readable          *bool  `json:"readable,omitempty" jsonschema:"Whether the field is readable (default true)"`
	Editable          *bool  `json:"editable,omitempty" jsonschema:"Whether the field is editable (default true)"`
}

type getFieldPermissionsInput struct {
	ObjectName string `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject"`
	FieldName  string `json:"field_name,omitempty" jsonschema:"The API name of the field"`
}

// fieldPermission is one row of get_field_permissions output.
type fieldPermission struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Readable bool   `json:"readable"`
	Editable bool   `json:"editable"`
	ID       string `json:"id"`
}

func (s *Service) setFieldPermissions(ctx context.Context, _ *mcp.CallToolRequest, in setFieldPermissionsInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" || in.FieldName == "" {
		return errorResult("missing 'object_name' or 'field_name' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	permSetName := in.PermissionSetName
	if permSetName == "" {
		permSetName = "System Administrator"
	}
	readable, editable := true, true
	if in.Readable != nil {
		readable = *in.Readable
	}
	if in.Editable != nil {
		editable = *in.Editable
	}

	permQuery, err := client.ToolingQuery(ctx, fmt.Sprintf(
		"SELECT Id, Name, IsOwnedByProfile FROM PermissionSet WHERE Name = '%s'", permSetName))
	if err != nil {
		return errorResult("error setting field permissions: %s", err.Error()), nil, nil
	}
	if len(permQuery.Records) == 0 {
		return errorResult("permission set/profile '%s' not found", permSetName), nil, nil
	}
	permSetID, _ := permQuery.Records[0]["Id"].(string)
	isProfile, _ := permQuery.Records[0]["IsOwnedByProfile"].(bool)

	qualifiedField := fmt.Sprintf("%s.%s", in.ObjectName, in.FieldName)
	existing, err := client.ToolingQuery(ctx, fmt.Sprintf(
		"SELECT Id FROM FieldPermissions WHERE ParentId = '%s' AND Field = '%s'", permSetID, qualifiedField))
	if err != nil {
		return errorResult("error setting field permissions: %s", err.Error()), nil, nil
	}

	permission := map[string]any{
		"ParentId":        permSetID,
		"SobjectType":     in.ObjectName,
		"Field":           qualifiedField,
		"PermissionsRead": readable,
		"PermissionsEdit": editable,
	}

	var (
		result json.RawMessage
		action string
	)
	if len(existing.Records) > 0 {
		permID, _ := existing.Records[0]["Id"].(string)
		result, err = client.ToolingExecute(ctx, "PATCH", "sobjects/FieldPermissions/"+permID, permission)
		action = "updated"
	} else {
		result, err = client.ToolingExecute(ctx, "POST", "sobjects/FieldPermissions", permission)
		action = "created"
	}
	if err != nil {
		return errorResult("error setting field permissions: %s", err.Error()), nil, nil
	}

	permType := "permission set"
	if isProfile {
		permType = "profile"
	}

	return textResult("Field permissions %s successfully!\nField: %s\n%s: %s\nReadable: %t\nEditable: %t\nResult: %s",
		action, qualifiedField, permType, permSetName, readable, editable, string(result)), nil, nil
}

func (s *Service) getFieldPermissions(ctx context.Context, _ *mcp.CallToolRequest, in getFieldPermissionsInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" || in.FieldName == "" {
		return errorResult("missing 'object_name' or 'field_name' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	qualifiedField := fmt.Sprintf("%s.%s", in.ObjectName, in.FieldName)
	perms, err := client.ToolingQuery(ctx, fmt.Sprintf(
		"SELECT Id, ParentId, Parent.Name, Parent.IsOwnedByProfile, PermissionsRead, PermissionsEdit, Field FROM FieldPermissions WHERE Field = '%s'",
		qualifiedField))
	if err != nil {
		return errorResult("error getting field permissions: %s", err.Error()), nil, nil
	}
	if len(perms.Records) == 0 {
		return textResult("No field permissions found for %s", qualifiedField), nil, nil
	}

	list := make([]fieldPermission, 0, len(perms.Records))
	for _, rec := range perms.Records {
		parent, _ := rec["Parent"].(map[string]any)
		name, _ := parent["Name"].(string)
		ownedByProfile, _ := parent["IsOwnedByProfile"].(bool)
		permType := "Permission Set"
		if ownedByProfile {
			permType = "Profile"
		}
		readable, _ := rec["PermissionsRead"].(bool)
		editable, _ := rec["PermissionsEdit"].(bool)
		parentID, _ := rec["ParentId"].(string)
		list = append(list, fieldPermission{
			Name:     name,
			Type:     permType,
			Readable: readable,
			Editable: editable,
			ID:       parentID,
		})
	}

	return jsonResult(fmt.Sprintf("Field Permissions for %s", qualifiedField), list), nil, nil
}
