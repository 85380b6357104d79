package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type createCustomFieldInput struct {
	ObjectName string `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject (e.g., 'Account', 'MyCustomObject__c')" validate:"required"`
	FieldName  string `json:"field_name,omitempty" jsonschema:"The name for the new custom field (the __c suffix is added when absent)" validate:"required"`
	FieldType  string `json:"field_type,omitempty" jsonschema:"The type of field to create (Text, Number, Date, DateTime, Checkbox, Picklist, Email, Phone, Url, TextArea, LongTextArea)" validate:"required,oneof=Text Number Date DateTime Checkbox Picklist Email Phone Url TextArea LongTextArea"`
	FieldLabel string `json:"field_label,omitempty" jsonschema:"The display label for the field" validate:"required"`
	Length     *int   `json:"length,omitempty" jsonschema:"Length for Text fields (default 255)" validate:"omitempty,min=1,max=255"`
	Precision  *int   `json:"precision,omitempty" jsonschema:"Precision for Number fields (default 18)" validate:"omitempty,min=1,max=18"`
	Scale      *int   `json:"scale,omitempty" jsonschema:"Scale for Number fields (default 0)" validate:"omitempty,min=0,max=17"`
	Required   bool   `json:"required,omitempty" jsonschema:"Whether the field is required (default false)"`
	Unique     bool   `json:"unique,omitempty" jsonschema:"Whether the field should be unique (default false)"`
	ExternalID bool   `json:"external_id,omitempty" jsonschema:"Whether the field is an external ID (default false)"`
}

type updateCustomFieldInput struct {
	ObjectName string  `json:"object_name,omitempty" jsonschema:"The API name of the Salesforce SObject"`
	FieldName  string  `json:"field_name,omitempty" jsonschema:"The API name of the custom field (with __c suffix)"`
	FieldLabel *string `json:"field_label,omitempty" jsonschema:"New display label for the field"`
	Required   *bool   `json:"required,omitempty" jsonschema:"Whether the field is required"`
	Unique     *bool   `json:"unique,omitempty" jsonschema:"Whether the field should be unique"`
	ExternalID *bool   `json:"external_id,omitempty" jsonschema:"Whether the field is an external ID"`
}

// customFieldAPIName appends the __c suffix unless the name already carries it.
func customFieldAPIName(name string) string {
	if strings.HasSuffix(name, "__c") {
		return name
	}
	return name + "__c"
}

func (s *Service) createCustomField(ctx context.Context, _ *mcp.CallToolRequest, in createCustomFieldInput) (*mcp.CallToolResult, any, error) {
	if err := s.validate.Struct(in); err != nil {
		return errorResult("invalid custom field definition: %s", err.Error()), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	metadata := map[string]any{
		"type":       in.FieldType,
		"label":      in.FieldLabel,
		"required":   in.Required,
		"unique":     in.Unique,
		"externalId": in.ExternalID,
	}
	switch in.FieldType {
	case "Text":
		length := 255
		if in.Length != nil {
			length = *in.Length
		}
		metadata["length"] = length
	case "Number":
		precision, scale := 18, 0
		if in.Precision != nil {
			precision = *in.Precision
		}
		if in.Scale != nil {
			scale = *in.Scale
		}
		metadata["precision"] = precision
		metadata["scale"] = scale
	}

	definition := map[string]any{
		"FullName": fmt.Sprintf("%s.%s", in.ObjectName, customFieldAPIName(in.FieldName)),
		"Metadata": metadata,
	}

	result, err := client.ToolingExecute(ctx, "POST", "sobjects/CustomField", definition)
	if err != nil {
		return errorResult("error creating custom field: %s", err.Error()), nil, nil
	}

	return jsonResult("Create Custom Field Result", json.RawMessage(result)), nil, nil
}

func (s *Service) updateCustomField(ctx context.Context, _ *mcp.CallToolRequest, in updateCustomFieldInput) (*mcp.CallToolResult, any, error) {
	if in.ObjectName == "" || in.FieldName == "" {
		return errorResult("missing 'object_name' or 'field_name' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	update := map[string]any{}
	if in.FieldLabel != nil {
		update["Label"] = *in.FieldLabel
	}
	if in.Required != nil {
		update["Required"] = *in.Required
	}
	if in.Unique != nil {
		update["Unique"] = *in.Unique
	}
	if in.ExternalID != nil {
		update["ExternalId"] = *in.ExternalID
	}
	if len(update) == 0 {
		return errorResult("no update fields provided"), nil, nil
	}

	developerName := strings.TrimSuffix(in.FieldName, "__c")
	soql := fmt.Sprintf("SELECT Id FROM CustomField WHERE TableEnumOrId = '%s' AND DeveloperName = '%s'", in.ObjectName, developerName)
	lookup, err := client.ToolingQuery(ctx, soql)
	if err != nil {
		return errorResult("error locating custom field: %s", err.Error()), nil, nil
	}
	if len(lookup.Records) == 0 {
		return errorResult("custom field %s not found on %s", in.FieldName, in.ObjectName), nil, nil
	}
	fieldID, _ := lookup.Records[0]["Id"].(string)

	result, err := client.ToolingExecute(ctx, "PATCH", "sobjects/CustomField/"+fieldID, update)
	if err != nil {
		return errorResult("error updating custom field: %s", err.Error()), nil, nil
	}

	return jsonResult("Update Custom Field Result", json.RawMessage(result)), nil, nil
}
