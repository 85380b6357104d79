package tools

import (
	"context"
	"encoding/json"
	"fmt"
	neturl "net/url"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/smn2gnt/MCP-Salesforce/pkg/observability/logging"
)

// passthroughArgs is the argument shape shared by the Tooling and Apex
// escape-hatch tools. They exist for capabilities the fixed tool set does
// not cover, so the payload stays an opaque mapping.
type passthroughArgs struct {
	Action string         `json:"action"`
	Method string         `json:"method"`
	Data   map[string]any `json:"data"`
}

// restfulArgs is the argument shape of the raw REST tool, which addresses
// endpoints by path and additionally carries query parameters.
type restfulArgs struct {
	Path   string         `json:"path"`
	Method string         `json:"method"`
	Params map[string]any `json:"params"`
	Data   map[string]any `json:"data"`
}

func httpMethodSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "The HTTP method (default: 'GET').",
		Enum:        []any{"GET", "POST", "PATCH", "DELETE"},
		Default:     json.RawMessage(`"GET"`),
	}
}

func passthroughSchema(actionDescription string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"action": {
				Type:        "string",
				Description: actionDescription,
			},
			"method": httpMethodSchema(),
			"data": {
				Type:                 "object",
				Description:          "Data for POST/PATCH requests.",
				AdditionalProperties: &jsonschema.Schema{},
			},
		},
		Required: []string{"action"},
	}
}

func restfulSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {
				Type:        "string",
				Description: "The path of the REST API endpoint (e.g., 'sobjects/Account/describe').",
			},
			"method": httpMethodSchema(),
			"params": {
				Type:                 "object",
				Description:          "Query parameters for the request.",
				AdditionalProperties: &jsonschema.Schema{},
			},
			"data": {
				Type:                 "object",
				Description:          "Data for POST/PATCH requests.",
				AdditionalProperties: &jsonschema.Schema{},
			},
		},
		Required: []string{"path"},
	}
}

func decodePassthroughArgs(req *mcp.CallToolRequest) (passthroughArgs, *mcp.CallToolResult) {
	var args passthroughArgs
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return args, errorResult("invalid arguments: %s", err.Error())
		}
	}
	if args.Action == "" {
		return args, errorResult("missing 'action' argument")
	}
	if args.Method == "" {
		args.Method = "GET"
	}
	return args, nil
}

func decodeRestfulArgs(req *mcp.CallToolRequest) (restfulArgs, *mcp.CallToolResult) {
	var args restfulArgs
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
			return args, errorResult("invalid arguments: %s", err.Error())
		}
	}
	if args.Path == "" {
		return args, errorResult("missing 'path' argument")
	}
	if args.Method == "" {
		args.Method = "GET"
	}
	return args, nil
}

func (s *Service) runToolingExecute(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, errResult := decodePassthroughArgs(req)
	if errResult != nil {
		return errResult, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil
	}

	var data any
	if args.Data != nil {
		data = args.Data
	}
	result, err := client.ToolingExecute(ctx, args.Method, args.Action, data)
	if err != nil {
		logging.FromContext(ctx).Error("Tooling API request failed", zap.Error(err))
		return errorResult("tooling API request failed: %s", err.Error()), nil
	}

	return jsonResult("Tooling Execute Result", json.RawMessage(result)), nil
}

func (s *Service) runApexExecute(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, errResult := decodePassthroughArgs(req)
	if errResult != nil {
		return errResult, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil
	}

	var data any
	if args.Data != nil {
		data = args.Data
	}
	result, err := client.ApexExecute(ctx, args.Method, args.Action, data)
	if err != nil {
		logging.FromContext(ctx).Error("Apex REST request failed", zap.Error(err))
		return errorResult("apex REST request failed: %s", err.Error()), nil
	}

	return jsonResult("Apex Execute Result", json.RawMessage(result)), nil
}

func (s *Service) runRestful(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, errResult := decodeRestfulArgs(req)
	if errResult != nil {
		return errResult, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil
	}

	var params neturl.Values
	if len(args.Params) > 0 {
		params = neturl.Values{}
		for k, v := range args.Params {
			params.Set(k, fmt.Sprintf("%v", v))
		}
	}
	var data any
	if args.Data != nil {
		data = args.Data
	}
	result, err := client.Restful(ctx, args.Method, args.Path, params, data)
	if err != nil {
		logging.FromContext(ctx).Error("REST API request failed", zap.Error(err))
		return errorResult("REST API request failed: %s", err.Error()), nil
	}

	return jsonResult("RESTful Result", json.RawMessage(result)), nil
}
