package salesforce

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolingExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/services/data/v59.0/tooling/sobjects/CustomField", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "00N000000000001", "success": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	got, err := c.ToolingExecute(context.Background(), http.MethodPost, "sobjects/CustomField", map[string]any{"FullName": "Account.Score__c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "00N000000000001", "success": true}`, string(got))
}

func TestToolingQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/data/v59.0/tooling/query/", r.URL.Path)
		assert.Equal(t, "SELECT Id FROM CustomField", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"totalSize": 1, "done": true, "records": [{"Id": "00N000000000001"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	got, err := c.ToolingQuery(context.Background(), "SELECT Id FROM CustomField")
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "00N000000000001", got.Records[0]["Id"])
}

func TestApexExecutePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/apexrest/MyService", r.URL.Path)
		_, _ = w.Write([]byte(`{"result": "ok"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	got, err := c.ApexExecute(context.Background(), http.MethodGet, "/MyService", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"result": "ok"}`, string(got))
}

func TestRestfulEmptyBodyBecomesStatusAck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	got, err := c.Restful(context.Background(), http.MethodDelete, "sobjects/Account/001000000000001", nil, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": 204}`, string(got))
}
