package salesforce

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorDetail is a single entry from Salesforce's standard error payload.
type ErrorDetail struct {
	Message   string   `json:"message"`
	ErrorCode string   `json:"errorCode"`
	Fields    []string `json:"fields,omitempty"`
}

// APIError is a non-2xx response from any Salesforce API surface.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
	// Body holds the raw response when it did not match the standard
	// error shape.
	Body string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		if e.Body != "" {
			return fmt.Sprintf("salesforce: HTTP %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("salesforce: HTTP %d", e.StatusCode)
	}

	msgs := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		if d.ErrorCode != "" {
			msgs[i] = fmt.Sprintf("%s: %s", d.ErrorCode, d.Message)
		} else {
			msgs[i] = d.Message
		}
	}
	return fmt.Sprintf("salesforce: HTTP %d: %s", e.StatusCode, strings.Join(msgs, "; "))
}

// newAPIError decodes the standard `[{"message","errorCode"}]` payload,
// falling back to the raw body for non-conforming responses.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var details []ErrorDetail
	if err := json.Unmarshal(body, &details); err == nil && len(details) > 0 {
		apiErr.Errors = details
		return apiErr
	}

	// The Bulk API wraps its errors in a single object instead.
	var single struct {
		ExceptionCode    string `json:"exceptionCode"`
		ExceptionMessage string `json:"exceptionMessage"`
	}
	if err := json.Unmarshal(body, &single); err == nil && single.ExceptionCode != "" {
		apiErr.Errors = []ErrorDetail{{Message: single.ExceptionMessage, ErrorCode: single.ExceptionCode}}
		return apiErr
	}

	apiErr.Body = strings.TrimSpace(string(body))
	return apiErr
}
