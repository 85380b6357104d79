package tools

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type exportDataCSVInput struct {
	Query    string `json:"query,omitempty" jsonschema:"The SOQL query whose results are exported"`
	Filename string `json:"filename,omitempty" jsonschema:"Optional filename for the CSV file (default: 'export.csv')"`
}

const csvPreviewLimit = 500

// selectedFields extracts the projected field names from a SOQL query so the
// CSV columns come out in the order the caller wrote them. Relationship paths
// like Account.Name are kept verbatim. Parenthesized groups are skipped so a
// parent-child subquery counts as one column and its inner FROM does not end
// the scan; whitespace of any kind (including newlines) separates keywords.
func selectedFields(soql string) []string {
	trimmed := strings.TrimSpace(soql)
	if len(trimmed) < 7 || !strings.EqualFold(trimmed[:6], "SELECT") || !isSOQLSpace(trimmed[6]) {
		return nil
	}
	clause := trimmed[7:]

	fromIdx := -1
	depth := 0
	for i := 0; i < len(clause); i++ {
		switch clause[i] {
		case '(':
			depth++
		case ')':
			depth--
		case 'f', 'F':
			if depth > 0 || i == 0 || !isSOQLSpace(clause[i-1]) {
				continue
			}
			if i+4 <= len(clause) && strings.EqualFold(clause[i:i+4], "FROM") &&
				(i+4 == len(clause) || isSOQLSpace(clause[i+4])) {
				fromIdx = i
			}
		}
		if fromIdx >= 0 {
			break
		}
	}
	if fromIdx < 0 {
		return nil
	}

	var fields []string
	depth = 0
	start := 0
	appendField := func(raw string) {
		if f := strings.Join(strings.Fields(raw), " "); f != "" {
			fields = append(fields, f)
		}
	}
	for i := 0; i < fromIdx; i++ {
		switch clause[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				appendField(clause[start:i])
				start = i + 1
			}
		}
	}
	appendField(clause[start:fromIdx])
	return fields
}

func isSOQLSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// recordValue resolves a possibly dotted field path against a query row,
// following nested relationship objects.
func recordValue(record map[string]any, field string) string {
	var current any = record
	for _, part := range strings.Split(field, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current, ok = m[part]
		if !ok {
			// Field keys in query rows keep their server-side casing.
			for k, v := range m {
				if strings.EqualFold(k, part) {
					current, ok = v, true
					break
				}
			}
			if !ok {
				return ""
			}
		}
	}
	if current == nil {
		return ""
	}
	if s, ok := current.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", current)
}

func (s *Service) exportDataCSV(ctx context.Context, _ *mcp.CallToolRequest, in exportDataCSVInput) (*mcp.CallToolResult, any, error) {
	if in.Query == "" {
		return errorResult("missing 'query' argument"), nil, nil
	}
	client, err := s.clientOrErr()
	if err != nil {
		return errorResult("%s", err.Error()), nil, nil
	}

	filename := in.Filename
	if filename == "" {
		filename = "export.csv"
	}

	result, err := client.Query(ctx, in.Query)
	if err != nil {
		return errorResult("error exporting data to CSV: %s", err.Error()), nil, nil
	}
	if len(result.Records) == 0 {
		return textResult("No records found for the query. CSV file not created."), nil, nil
	}

	fields := selectedFields(in.Query)
	if len(fields) == 0 {
		for k := range result.Records[0] {
			if k != "attributes" {
				fields = append(fields, k)
			}
		}
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return errorResult("error exporting data to CSV: %s", err.Error()), nil, nil
	}
	row := make([]string, len(fields))
	for _, record := range result.Records {
		for i, f := range fields {
			row[i] = recordValue(record, f)
		}
		if err := w.Write(row); err != nil {
			return errorResult("error exporting data to CSV: %s", err.Error()), nil, nil
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errorResult("error exporting data to CSV: %s", err.Error()), nil, nil
	}

	content := buf.String()
	preview := content
	suffix := ""
	if len(preview) > csvPreviewLimit {
		preview = preview[:csvPreviewLimit]
		suffix = "..."
	}

	return textResult("CSV Export completed successfully!\n\nFilename: %s\nRecords exported: %d\nFields: %s\n\nCSV Content Preview (first %d chars):\n%s%s",
		filename, len(result.Records), strings.Join(fields, ", "), csvPreviewLimit, preview, suffix), nil, nil
}
