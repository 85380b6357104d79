package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFieldAPIName(t *testing.T) {
	tt := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "bare name gets suffix", in: "Score", expected: "Score__c"},
		{name: "suffixed name untouched", in: "Score__c", expected: "Score__c"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, customFieldAPIName(tc.in))
		})
	}
}

func TestCreateCustomFieldTextDefaults(t *testing.T) {
	var definition map[string]any
	s := connectedService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/services/data/v59.0/tooling/sobjects/CustomField", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&definition))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "00N000000000001", "success": true}`))
	}))

	res, _, err := s.createCustomField(context.Background(), nil, createCustomFieldInput{
		ObjectName: "Account",
		FieldName:  "Score",
		FieldType:  "Text",
		FieldLabel: "Score",
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	assert.Equal(t, "Account.Score__c", definition["FullName"])
	metadata := definition["Metadata"].(map[string]any)
	assert.Equal(t, "Text", metadata["type"])
	assert.Equal(t, float64(255), metadata["length"], "Text fields default to length 255")
	assert.Equal(t, false, metadata["required"])
}

func TestCreateCustomFieldNumberDefaults(t *testing.T) {
	var definition map[string]any
	s := connectedService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&definition))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "00N000000000002", "success": true}`))
	}))

	res, _, err := s.createCustomField(context.Background(), nil, createCustomFieldInput{
		ObjectName: "Account",
		FieldName:  "Revenue",
		FieldType:  "Number",
		FieldLabel: "Revenue",
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	metadata := definition["Metadata"].(map[string]any)
	assert.Equal(t, float64(18), metadata["precision"])
	assert.Equal(t, float64(0), metadata["scale"])
	assert.NotContains(t, metadata, "length")
}

func TestCreateCustomFieldRejectsUnknownType(t *testing.T) {
	s := NewService(nil)

	res, _, err := s.createCustomField(context.Background(), nil, createCustomFieldInput{
		ObjectName: "Account",
		FieldName:  "Score",
		FieldType:  "Blob",
		FieldLabel: "Score",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid custom field definition")
}

func TestCreateCustomFieldRequiresCoreArguments(t *testing.T) {
	s := NewService(nil)

	res, _, err := s.createCustomField(context.Background(), nil, createCustomFieldInput{
		ObjectName: "Account",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestUpdateCustomFieldLooksUpIdThenPatches(t *testing.T) {
	var patched map[string]any
	var patchPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/services/data/v59.0/tooling/query/", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		assert.Contains(t, q, "TableEnumOrId = 'Account'")
		assert.Contains(t, q, "DeveloperName = 'Score'")
		_, _ = w.Write([]byte(`{"totalSize": 1, "done": true, "records": [{"Id": "00N000000000001"}]}`))
	})
	mux.HandleFunc("/services/data/v59.0/tooling/sobjects/CustomField/00N000000000001", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		patchPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
		w.WriteHeader(http.StatusNoContent)
	})
	s := connectedService(t, mux)

	label := "New Label"
	required := true
	res, _, err := s.updateCustomField(context.Background(), nil, updateCustomFieldInput{
		ObjectName: "Account",
		FieldName:  "Score__c",
		FieldLabel: &label,
		Required:   &required,
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	assert.Equal(t, "/services/data/v59.0/tooling/sobjects/CustomField/00N000000000001", patchPath)
	assert.Equal(t, "New Label", patched["Label"])
	assert.Equal(t, true, patched["Required"])
	assert.NotContains(t, patched, "Unique")
}

func TestUpdateCustomFieldNotFound(t *testing.T) {
	s := connectedService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalSize": 0, "done": true, "records": []}`))
	}))

	label := "New Label"
	res, _, err := s.updateCustomField(context.Background(), nil, updateCustomFieldInput{
		ObjectName: "Account",
		FieldName:  "Nope__c",
		FieldLabel: &label,
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "custom field Nope__c not found on Account")
}

func TestUpdateCustomFieldNoFields(t *testing.T) {
	s := connectedService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made when there is nothing to update")
	}))

	res, _, err := s.updateCustomField(context.Background(), nil, updateCustomFieldInput{
		ObjectName: "Account",
		FieldName:  "Score__c",
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "no update fields provided")
}
