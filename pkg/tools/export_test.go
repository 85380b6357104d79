package tools

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectedFields(t *testing.T) {
	tt := []struct {
		name     string
		soql     string
		expected []string
	}{
		{
			name:     "simple select",
			soql:     "SELECT Id, Name FROM Account",
			expected: []string{"Id", "Name"},
		},
		{
			name:     "lowercase keywords",
			soql:     "select Id, Name from Account where Name != null",
			expected: []string{"Id", "Name"},
		},
		{
			name:     "relationship fields",
			soql:     "SELECT Id, Account.Name, Owner.Email FROM Contact",
			expected: []string{"Id", "Account.Name", "Owner.Email"},
		},
		{
			name:     "multi-line query",
			soql:     "SELECT Id,\n\tName,\n\tOwner.Email\nFROM Account\nWHERE Name != null",
			expected: []string{"Id", "Name", "Owner.Email"},
		},
		{
			name:     "parent-child subquery is one column",
			soql:     "SELECT Id, (SELECT Name FROM Contacts) FROM Account",
			expected: []string{"Id", "(SELECT Name FROM Contacts)"},
		},
		{
			name:     "aggregate with parenthesized argument",
			soql:     "SELECT COUNT(Id), StageName FROM Opportunity GROUP BY StageName",
			expected: []string{"COUNT(Id)", "StageName"},
		},
		{
			name:     "not a select",
			soql:     "FIND {Smith} IN ALL FIELDS",
			expected: nil,
		},
		{
			name:     "select with no from",
			soql:     "SELECT Id, Name",
			expected: nil,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, selectedFields(tc.soql))
		})
	}
}

func TestRecordValueFollowsRelationshipPath(t *testing.T) {
	record := map[string]any{
		"Id": "003A",
		"Account": map[string]any{
			"Name": "Acme",
		},
		"Amount": float64(12.5),
		"Closed": nil,
	}

	assert.Equal(t, "003A", recordValue(record, "Id"))
	assert.Equal(t, "Acme", recordValue(record, "Account.Name"))
	assert.Equal(t, "12.5", recordValue(record, "Amount"))
	assert.Equal(t, "", recordValue(record, "Closed"))
	assert.Equal(t, "", recordValue(record, "Account.Missing"))
}

func TestExportDataCSVHeaderFollowsSelectOrder(t *testing.T) {
	s := connectedService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"totalSize": 2,
			"done": true,
			"records": [
				{"attributes": {"type": "Account"}, "Name": "Acme", "Id": "001A"},
				{"attributes": {"type": "Account"}, "Name": "Globex", "Id": "001B"}
			]
		}`))
	}))

	res, _, err := s.exportDataCSV(context.Background(), nil, exportDataCSVInput{
		Query: "SELECT Id, Name FROM Account",
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	text := resultText(t, res)
	assert.Contains(t, text, "Filename: export.csv")
	assert.Contains(t, text, "Records exported: 2")

	// Column order comes from the SELECT clause, not map iteration order.
	assert.Contains(t, text, "Id,Name\n001A,Acme\n001B,Globex\n")
}

func TestExportDataCSVCustomFilename(t *testing.T) {
	s := connectedService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalSize": 1, "done": true, "records": [{"Id": "001A"}]}`))
	}))

	res, _, err := s.exportDataCSV(context.Background(), nil, exportDataCSVInput{
		Query:    "SELECT Id FROM Account",
		Filename: "accounts.csv",
	})
	require.NoError(t, err)
	assert.Contains(t, resultText(t, res), "Filename: accounts.csv")
}

func TestExportDataCSVNoRecords(t *testing.T) {
	s := connectedService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalSize": 0, "done": true, "records": []}`))
	}))

	res, _, err := s.exportDataCSV(context.Background(), nil, exportDataCSVInput{
		Query: "SELECT Id FROM Account WHERE Name = 'Nobody'",
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "No records found")
}

func TestExportDataCSVTruncatesPreview(t *testing.T) {
	var rows []string
	for i := 0; i < 100; i++ {
		rows = append(rows, `{"Id": "001AAAAAAAAAAAAAAA", "Name": "A very long account name for padding"}`)
	}
	s := connectedService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalSize": 100, "done": true, "records": [` + strings.Join(rows, ",") + `]}`))
	}))

	res, _, err := s.exportDataCSV(context.Background(), nil, exportDataCSVInput{
		Query: "SELECT Id, Name FROM Account",
	})
	require.NoError(t, err)

	text := resultText(t, res)
	assert.Contains(t, text, "Records exported: 100")
	assert.True(t, strings.HasSuffix(text, "..."), "long content should be truncated with an ellipsis")
}
