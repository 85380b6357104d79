package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type listReportsInput struct {
	FolderID string `json:"folder_id,omitempty" jsonschema:"Optional folder ID to filter reports by"`
}

type listUsersInput struct {
	IncludeInactive bool `json:"include_inactive,omitempty" jsonschema:"Whether to include inactive users (default false)"`
	Limit           int  `json:"limit,omitempty" jsonschema:"Maximum number of users to return (default 100)"`
}

func (s *Service) listReports(ctx context.Context, _ *mcp.CallToolRequest, in listReportsInput) (*mcp.CallToolResult, any, error) {
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	soql := "SELECT Id, Name, DeveloperName, FolderName, Description, LastRunDate FROM Report"
	if in.FolderID != "" {
		soql += fmt.Sprintf(" WHERE FolderId = '%s'", in.FolderID)
	}
	soql += " ORDER BY FolderName, Name"

	reports, err := client.Query(ctx, soql)
	if err != nil {
		return errorResult("error listing reports: %s", err.Error()), nil, nil
	}

	folders, err := client.Query(ctx, "SELECT Id, Name, DeveloperName, Type FROM Folder WHERE Type = 'Report' ORDER BY Name")
	if err != nil {
		return errorResult("error listing reports: %s", err.Error()), nil, nil
	}

	return jsonResult("Reports and Folders", map[string]any{
		"reports":       reports.Records,
		"folders":       folders.Records,
		"total_reports": len(reports.Records),
		"total_folders": len(folders.Records),
	}), nil, nil
}

func (s *Service) listUsers(ctx context.Context, _ *mcp.CallToolRequest, in listUsersInput) (*mcp.CallToolResult, any, error) {
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	limit := in.Limit
	if limit <= 0 {
		limit = 100
	}
	activeFilter := ""
	if !in.IncludeInactive {
		activeFilter = " WHERE IsActive = TRUE"
	}

	soql := fmt.Sprintf("SELECT Id, Username, FirstName, LastName, Email, IsActive, Profile.Name, UserRole.Name, LastLoginDate, CreatedDate FROM User%s ORDER BY LastName, FirstName LIMIT %d",
		activeFilter, limit)
	users, err := client.Query(ctx, soql)
	if err != nil {
		return errorResult("error listing users: %s", err.Error()), nil, nil
	}

	count, err := client.Query(ctx, "SELECT COUNT() FROM User"+activeFilter)
	if err != nil {
		return errorResult("error listing users: %s", err.Error()), nil, nil
	}

	return jsonResult("Users List", map[string]any{
		"users":            users.Records,
		"total_count":      count.TotalSize,
		"returned_count":   len(users.Records),
		"include_inactive": in.IncludeInactive,
		"limit":            limit,
	}), nil, nil
}

func (s *Service) getOrgLimits(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	raw, err := client.Restful(ctx, "GET", "limits", nil, nil)
	if err != nil {
		return errorResult("error getting organization limits: %s", err.Error()), nil, nil
	}
	var limits map[string]struct {
		Max       float64 `json:"Max"`
		Remaining float64 `json:"Remaining"`
	}
	if err := json.Unmarshal(raw, &limits); err != nil {
		return errorResult("error getting organization limits: %s", err.Error()), nil, nil
	}

	orgInfo, err := client.Query(ctx, "SELECT Id, Name, OrganizationType, IsSandbox, InstanceName FROM Organization")
	if err != nil {
		return errorResult("error getting organization limits: %s", err.Error()), nil, nil
	}
	organization := map[string]any{}
	if len(orgInfo.Records) > 0 {
		organization = orgInfo.Records[0]
	}

	api := limits["DailyApiRequests"]
	storage := limits["DataStorageMB"]

	return jsonResult("Organization Limits and Info", map[string]any{
		"organization": organization,
		"limits":       json.RawMessage(raw),
		"summary": map[string]any{
			"api_requests_used":         api.Max - api.Remaining,
			"api_requests_remaining":    api.Remaining,
			"api_requests_limit":        api.Max,
			"data_storage_used_mb":      storage.Max - storage.Remaining,
			"data_storage_remaining_mb": storage.Remaining,
			"data_storage_limit_mb":     storage.Max,
		},
	}), nil, nil
}
