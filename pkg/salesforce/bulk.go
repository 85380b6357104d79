package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Bulk API 1.0 operations.
const (
	BulkOperationInsert = "insert"
	BulkOperationUpdate = "update"
	BulkOperationDelete = "delete"
)

// MaxBulkRecords is the largest record slice accepted for a single bulk job.
const MaxBulkRecords = 10000

// BulkError is a per-record failure inside a bulk result.
type BulkError struct {
	Message    string   `json:"message"`
	StatusCode string   `json:"statusCode"`
	Fields     []string `json:"fields,omitempty"`
}

// BulkResult is the outcome for one record of a bulk job, in the same
// position as the record held in the submitted slice.
type BulkResult struct {
	ID      string      `json:"id,omitempty"`
	Success bool        `json:"success"`
	Created bool        `json:"created"`
	Errors  []BulkError `json:"errors"`
}

type bulkJob struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

type bulkBatch struct {
	ID           string `json:"id"`
	State        string `json:"state"`
	StateMessage string `json:"stateMessage"`
}

// BulkOperation submits records as a single JSON batch job and waits for the
// per-record results. Salesforce returns results in submission order, and
// that order is preserved here.
func (c *Client) BulkOperation(ctx context.Context, objectName, operation string, records []map[string]any) ([]BulkResult, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("bulk %s needs at least one record", operation)
	}
	if len(records) > MaxBulkRecords {
		return nil, fmt.Errorf("bulk %s accepts at most %d records per job, got %d", operation, MaxBulkRecords, len(records))
	}

	job, err := c.createBulkJob(ctx, objectName, operation)
	if err != nil {
		return nil, fmt.Errorf("failed to create bulk job: %w", err)
	}

	batch, err := c.addBulkBatch(ctx, job.ID, records)
	if err != nil {
		return nil, fmt.Errorf("failed to add batch to bulk job %s: %w", job.ID, err)
	}

	if err := c.closeBulkJob(ctx, job.ID); err != nil {
		return nil, fmt.Errorf("failed to close bulk job %s: %w", job.ID, err)
	}

	if err := c.waitForBatch(ctx, job.ID, batch.ID); err != nil {
		return nil, err
	}

	return c.bulkBatchResults(ctx, job.ID, batch.ID)
}

func (c *Client) createBulkJob(ctx context.Context, objectName, operation string) (*bulkJob, error) {
	payload := map[string]string{
		"operation":   operation,
		"object":      objectName,
		"contentType": "JSON",
	}

	body, _, err := c.do(ctx, http.MethodPost, c.bulkURL("job"), nil, payload, nil)
	if err != nil {
		return nil, err
	}

	var job bulkJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job response: %w", err)
	}
	return &job, nil
}

func (c *Client) addBulkBatch(ctx context.Context, jobID string, records []map[string]any) (*bulkBatch, error) {
	body, _, err := c.do(ctx, http.MethodPost, c.bulkURL(fmt.Sprintf("job/%s/batch", jobID)), nil, records, nil)
	if err != nil {
		return nil, err
	}

	var batch bulkBatch
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}
	return &batch, nil
}

func (c *Client) closeBulkJob(ctx context.Context, jobID string) error {
	_, _, err := c.do(ctx, http.MethodPost, c.bulkURL("job/"+jobID), nil, map[string]string{"state": "Closed"}, nil)
	return err
}

// waitForBatch polls batch state until it reaches a terminal state.
func (c *Client) waitForBatch(ctx context.Context, jobID, batchID string) error {
	ticker := time.NewTicker(c.bulkPollInterval)
	defer ticker.Stop()

	for {
		var batch bulkBatch
		if err := c.getJSON(ctx, c.bulkURL(fmt.Sprintf("job/%s/batch/%s", jobID, batchID)), nil, &batch); err != nil {
			return fmt.Errorf("failed to poll batch %s: %w", batchID, err)
		}

		switch batch.State {
		case "Completed":
			return nil
		case "Failed", "NotProcessed":
			return fmt.Errorf("bulk batch %s ended in state %s: %s", batchID, batch.State, batch.StateMessage)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (c *Client) bulkBatchResults(ctx context.Context, jobID, batchID string) ([]BulkResult, error) {
	var results []BulkResult
	if err := c.getJSON(ctx, c.bulkURL(fmt.Sprintf("job/%s/batch/%s/result", jobID, batchID)), nil, &results); err != nil {
		return nil, fmt.Errorf("failed to fetch batch results: %w", err)
	}
	return results, nil
}
