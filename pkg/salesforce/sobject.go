package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// PicklistValue is one entry of a picklist field.
type PicklistValue struct {
	Active       bool   `json:"active"`
	DefaultValue bool   `json:"defaultValue"`
	Label        string `json:"label"`
	Value        string `json:"value"`
}

// Field is the describe metadata of a single sobject field.
type Field struct {
	Name              string          `json:"name"`
	Label             string          `json:"label"`
	Type              string          `json:"type"`
	Length            int             `json:"length"`
	Nillable          bool            `json:"nillable"`
	Unique            bool            `json:"unique"`
	ExternalID        bool            `json:"externalId"`
	Updateable        bool            `json:"updateable"`
	Createable        bool            `json:"createable"`
	Custom            bool            `json:"custom"`
	Calculated        bool            `json:"calculated"`
	DefaultedOnCreate bool            `json:"defaultedOnCreate"`
	DependentPicklist bool            `json:"dependentPicklist"`
	Filterable        bool            `json:"filterable"`
	Sortable          bool            `json:"sortable"`
	PicklistValues    []PicklistValue `json:"picklistValues"`
	ReferenceTo       []string        `json:"referenceTo"`
	RelationshipName  string          `json:"relationshipName"`
}

// ObjectDescribe is the describe metadata of an sobject.
type ObjectDescribe struct {
	Name         string  `json:"name"`
	Label        string  `json:"label"`
	Custom       bool    `json:"custom"`
	Createable   bool    `json:"createable"`
	Deletable    bool    `json:"deletable"`
	Queryable    bool    `json:"queryable"`
	Updateable   bool    `json:"updateable"`
	Retrieveable bool    `json:"retrieveable"`
	Fields       []Field `json:"fields"`
}

// GlobalSObject is one entry of the global describe.
type GlobalSObject struct {
	Name   string `json:"name"`
	Label  string `json:"label"`
	Custom bool   `json:"custom"`
}

// GlobalDescribe is the response of the global describe call.
type GlobalDescribe struct {
	SObjects []GlobalSObject `json:"sobjects"`
}

// SaveResult is the response of a record create.
type SaveResult struct {
	ID      string        `json:"id"`
	Success bool          `json:"success"`
	Errors  []ErrorDetail `json:"errors"`
}

// DescribeGlobal lists all sobjects available in the org.
func (c *Client) DescribeGlobal(ctx context.Context) (*GlobalDescribe, error) {
	var result GlobalDescribe
	if err := c.getJSON(ctx, c.restURL("sobjects/"), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Describe fetches the full describe metadata for one sobject.
func (c *Client) Describe(ctx context.Context, objectName string) (*ObjectDescribe, error) {
	var result ObjectDescribe
	if err := c.getJSON(ctx, c.restURL(fmt.Sprintf("sobjects/%s/describe/", objectName)), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRecord fetches a record by id.
func (c *Client) GetRecord(ctx context.Context, objectName, recordID string) (map[string]any, error) {
	var record map[string]any
	if err := c.getJSON(ctx, c.restURL(fmt.Sprintf("sobjects/%s/%s", objectName, recordID)), nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateRecord creates a record from a field map.
func (c *Client) CreateRecord(ctx context.Context, objectName string, data map[string]any) (*SaveResult, error) {
	body, _, err := c.do(ctx, http.MethodPost, c.restURL(fmt.Sprintf("sobjects/%s/", objectName)), nil, data, nil)
	if err != nil {
		return nil, err
	}

	var result SaveResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode create response: %w", err)
	}
	return &result, nil
}

// UpdateRecord patches a record. Salesforce answers 204 on success and the
// status code is returned for the caller's acknowledgement text.
func (c *Client) UpdateRecord(ctx context.Context, objectName, recordID string, data map[string]any) (int, error) {
	_, status, err := c.do(ctx, http.MethodPatch, c.restURL(fmt.Sprintf("sobjects/%s/%s", objectName, recordID)), nil, data, nil)
	return status, err
}

// DeleteRecord deletes a record by id.
func (c *Client) DeleteRecord(ctx context.Context, objectName, recordID string) (int, error) {
	_, status, err := c.do(ctx, http.MethodDelete, c.restURL(fmt.Sprintf("sobjects/%s/%s", objectName, recordID)), nil, nil, nil)
	return status, err
}
