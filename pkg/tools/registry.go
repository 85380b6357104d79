package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll attaches every Salesforce tool to the server. Typed tools get
// their input schema inferred from the handler's argument struct; the
// escape-hatch tools carry hand-built schemas because their payloads are
// open-ended.
func (s *Service) RegisterAll(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "run_soql_query",
		Description: "Executes a SOQL query against Salesforce",
	}, s.runSoqlQuery)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "run_sosl_search",
		Description: "Executes a SOSL search against Salesforce",
	}, s.runSoslSearch)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_object_fields",
		Description: "Retrieves field Names, labels and types for a specific Salesforce object",
	}, s.getObjectFields)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_field_details",
		Description: "Retrieves detailed metadata for a specific field of a Salesforce object, including external ID, unique, required settings.",
	}, s.getFieldDetails)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_sobjects",
		Description: "Retrieves a list of all available Salesforce SObjects (standard and custom).",
	}, s.listSObjects)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_record_types",
		Description: "Retrieves all record types for a specific SObject.",
	}, s.getRecordTypes)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_user_permissions",
		Description: "Retrieves current user's permissions for a specific SObject including field-level security.",
	}, s.getUserPermissions)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "clear_metadata_cache",
		Description: "Clears the cached object field metadata so the next describe hits Salesforce again.",
	}, s.clearMetadataCache)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_record",
		Description: "Retrieves a specific record by ID",
	}, s.getRecord)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_record",
		Description: "Creates a new record",
	}, s.createRecord)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_record",
		Description: "Updates an existing record",
	}, s.updateRecord)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "delete_record",
		Description: "Deletes a record",
	}, s.deleteRecord)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "bulk_create_records",
		Description: "Creates multiple records of a specified SObject type in bulk.",
	}, s.bulkCreateRecords)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "bulk_update_records",
		Description: "Updates multiple records of a specified SObject type in bulk. Each record must have an 'Id' field.",
	}, s.bulkUpdateRecords)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "bulk_delete_records",
		Description: "Deletes multiple records of a specified SObject type in bulk, given their IDs.",
	}, s.bulkDeleteRecords)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_custom_field",
		Description: "Creates a new custom field on a specified SObject using Tooling API.",
	}, s.createCustomField)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "update_custom_field",
		Description: "Updates settings of an existing custom field using Tooling API.",
	}, s.updateCustomField)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "set_field_permissions",
		Description: "Sets field-level security permissions for a custom field on profiles or permission sets.",
	}, s.setFieldPermissions)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_field_permissions",
		Description: "Retrieves field-level security permissions for a custom field across all profiles and permission sets.",
	}, s.getFieldPermissions)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "export_data_csv",
		Description: "Export SOQL query results to CSV format",
	}, s.exportDataCSV)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_reports",
		Description: "Get all available reports and folders in the organization",
	}, s.listReports)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_users",
		Description: "Get all users with their profiles, roles, and status",
	}, s.listUsers)
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "get_org_limits",
		Description: "Get current API usage limits and organizational features",
	}, s.getOrgLimits)

	srv.AddTool(&mcp.Tool{
		Name:        "tooling_execute",
		Description: "Executes a Tooling API request",
		InputSchema: passthroughSchema("The Tooling API endpoint to call, relative to /services/data/vXX.X/tooling/ (e.g., 'sobjects/CustomField')."),
	}, s.runToolingExecute)
	srv.AddTool(&mcp.Tool{
		Name:        "apex_execute",
		Description: "Executes an Apex REST request",
		InputSchema: passthroughSchema("The Apex REST endpoint to call, relative to /services/apexrest/ (e.g., '/MyApexClass')."),
	}, s.runApexExecute)
	srv.AddTool(&mcp.Tool{
		Name:        "restful",
		Description: "Makes a direct REST API call to Salesforce",
		InputSchema: restfulSchema(),
	}, s.runRestful)
}
