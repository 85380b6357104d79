// Package tools implements the MCP tool surface over the Salesforce client:
// one handler per tool, each validating its arguments, making one client
// call, and serializing the outcome as text.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/smn2gnt/MCP-Salesforce/pkg/config"
	"github.com/smn2gnt/MCP-Salesforce/pkg/salesforce"
)

// ErrNotConnected is reported by every tool while no Salesforce session is
// available. The process keeps serving so the failure stays inspectable.
var ErrNotConnected = errors.New("salesforce connection not established")

// Service owns the Salesforce session handle and the field-metadata memo.
// It is created once per process and shared by all tool handlers.
type Service struct {
	mu           sync.RWMutex
	client       *salesforce.Client
	connectErr   error
	describeMemo map[string][]fieldSummary

	validate *validator.Validate
	logger   *zap.Logger
}

// NewService creates a Service with no session. Connect establishes one.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		describeMemo: make(map[string][]fieldSummary),
		validate:     validator.New(),
		logger:       logger,
	}
}

// Connect resolves the session from the given credentials and records the
// outcome. A failure is remembered, not fatal: subsequent tool calls answer
// with a "not connected" error until a later Connect succeeds.
func (s *Service) Connect(ctx context.Context, creds *config.Credentials, opts ...salesforce.Option) error {
	client, err := creds.Connect(ctx, opts...)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.client = nil
		s.connectErr = err
		s.logger.Error("salesforce connection failed", zap.Error(err))
		return err
	}

	s.client = client
	s.connectErr = nil
	s.logger.Info("connected to salesforce",
		zap.String("instance_url", client.InstanceURL()),
		zap.String("api_version", client.APIVersion()))
	return nil
}

// RecordConnectError records a connection failure that happened before a
// client could be built, e.g. missing credentials.
func (s *Service) RecordConnectError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = nil
	s.connectErr = err
}

// SetClient installs an already-constructed client. Used by tests and by
// callers that manage their own session.
func (s *Service) SetClient(client *salesforce.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
	s.connectErr = nil
}

// clientOrErr returns the session handle, or the reason there is none.
func (s *Service) clientOrErr() (*salesforce.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.client == nil {
		if s.connectErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotConnected, s.connectErr)
		}
		return nil, ErrNotConnected
	}
	return s.client, nil
}

// objectFields returns the shaped field list for an object, serving from
// the memo when present. The second return reports a memo hit.
func (s *Service) objectFields(ctx context.Context, client *salesforce.Client, objectName string) ([]fieldSummary, bool, error) {
	s.mu.RLock()
	fields, ok := s.describeMemo[objectName]
	s.mu.RUnlock()
	if ok {
		return fields, true, nil
	}

	describe, err := client.Describe(ctx, objectName)
	if err != nil {
		return nil, false, err
	}

	fields = make([]fieldSummary, len(describe.Fields))
	for i, f := range describe.Fields {
		fields[i] = fieldSummary{
			Label:          f.Label,
			Name:           f.Name,
			Updateable:     f.Updateable,
			Type:           f.Type,
			Length:         f.Length,
			PicklistValues: f.PicklistValues,
		}
	}

	s.mu.Lock()
	s.describeMemo[objectName] = fields
	s.mu.Unlock()
	return fields, false, nil
}

// ClearMetadataCache empties the field-metadata memo and returns the number
// of objects it held.
func (s *Service) ClearMetadataCache() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.describeMemo)
	s.describeMemo = make(map[string][]fieldSummary)
	return n
}

// fieldSummary is the filtered per-field payload of get_object_fields, and
// the value type of the field-metadata memo.
type fieldSummary struct {
	Label          string                     `json:"label"`
	Name           string                     `json:"name"`
	Updateable     bool                       `json:"updateable"`
	Type           string                     `json:"type"`
	Length         int                        `json:"length"`
	PicklistValues []salesforce.PicklistValue `json:"picklistValues"`
}

// textResult wraps plain text in a successful tool result.
func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// errorResult wraps a message in an error tool result. Handlers return
// these instead of Go errors so no failure crosses the dispatch boundary.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

// jsonResult pretty-prints v under a short label, matching the
// "<label> (JSON):" shape callers rely on.
func jsonResult(label string, v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("failed to serialize %s: %s", label, err.Error())
	}
	return textResult("%s (JSON):\n%s", label, data)
}
