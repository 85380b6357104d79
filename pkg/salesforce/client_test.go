package salesforce

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("https://na1.salesforce.com/", "token")

	assert.Equal(t, "https://na1.salesforce.com", c.InstanceURL(), "trailing slash should be trimmed")
	assert.Equal(t, DefaultAPIVersion, c.APIVersion())
}

func TestWithAPIVersionStripsPrefix(t *testing.T) {
	tt := []struct {
		name     string
		version  string
		expected string
	}{
		{name: "plain version", version: "60.0", expected: "60.0"},
		{name: "v prefix", version: "v60.0", expected: "60.0"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClient("https://example.my.salesforce.com", "token", WithAPIVersion(tc.version))
			assert.Equal(t, tc.expected, c.APIVersion())
		})
	}
}

func TestDoSetsAuthHeaders(t *testing.T) {
	var gotAuth, gotSession, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSession = r.Header.Get("X-SFDC-Session")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "00D-session-id")
	_, err := c.GetRecord(context.Background(), "Account", "001000000000001")
	require.NoError(t, err)

	assert.Equal(t, "Bearer 00D-session-id", gotAuth)
	assert.Equal(t, "00D-session-id", gotSession)
	assert.Equal(t, "application/json", gotAccept)
}

func TestDoBuildsVersionedPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", WithAPIVersion("60.0"))
	_, err := c.GetRecord(context.Background(), "Contact", "003000000000001")
	require.NoError(t, err)

	assert.Equal(t, "/services/data/v60.0/sobjects/Contact/003000000000001", gotPath)
}

func TestDoDecodesStandardErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`[{"message":"Account ID: id value of incorrect type","errorCode":"MALFORMED_ID"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	_, err := c.GetRecord(context.Background(), "Account", "bogus")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "MALFORMED_ID", apiErr.Errors[0].ErrorCode)
	assert.Contains(t, err.Error(), "MALFORMED_ID: Account ID: id value of incorrect type")
}

func TestDoDecodesBulkErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"exceptionCode":"InvalidJob","exceptionMessage":"Unable to find object: Bogus__c"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	_, err := c.BulkOperation(context.Background(), "Bogus__c", BulkOperationInsert, []map[string]any{{"Name": "x"}})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "InvalidJob", apiErr.Errors[0].ErrorCode)
	assert.Equal(t, "Unable to find object: Bogus__c", apiErr.Errors[0].Message)
}

func TestDoKeepsRawBodyForUnknownErrorShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token")
	_, err := c.GetRecord(context.Background(), "Account", "001000000000001")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.Errors)
	assert.Equal(t, "upstream exploded", apiErr.Body)
	assert.Contains(t, err.Error(), "HTTP 502")
}
