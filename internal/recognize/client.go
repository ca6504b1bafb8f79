// Package recognize talks to the external expression-recognition service.
// The service receives the drawn canvas plus any variable bindings collected
// from earlier rounds and answers with a list of recognized expression /
// result pairs.
package recognize

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single recognition round-trip.
const DefaultTimeout = 2 * time.Minute

// Request is the wire payload sent to the service.
type Request struct {
	// Image is the PNG-encoded canvas as a base64 data URL.
	Image string `json:"image"`
	// DictOfVars carries variable bindings from earlier assignments.
	DictOfVars map[string]string `json:"dict_of_vars"`
}

// Result is one recognized expression.
type Result struct {
	Expr   string `json:"expr"`
	Result string `json:"result"`
	// Assign marks results that bind a variable for future submissions.
	Assign bool `json:"assign"`
}

type response struct {
	Data []Result `json:"data"`
}

type serviceError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client posts drawings to the recognition service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Solve submits a PNG-encoded drawing and the current variable bindings and
// returns the recognized results in service order. A failed round never
// mutates caller state; the error is the only outcome.
func (c *Client) Solve(ctx context.Context, pngData []byte, vars map[string]string) ([]Result, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	reqBody := Request{
		Image:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData),
		DictOfVars: vars,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognition request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var svcErr serviceError
		if err := json.Unmarshal(body, &svcErr); err == nil && (svcErr.Message != "" || svcErr.Error != "") {
			return nil, fmt.Errorf("service error (%d): %s%s", resp.StatusCode, svcErr.Message, svcErr.Error)
		}
		return nil, fmt.Errorf("service error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return parsed.Data, nil
}

// SolveWithRetry retries Solve with exponential backoff. Context
// cancellation stops the retries immediately.
func (c *Client) SolveWithRetry(ctx context.Context, pngData []byte, vars map[string]string, maxRetries int) ([]Result, error) {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		results, err := c.Solve(ctx, pngData, vars)
		if err == nil {
			return results, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		backoff := time.Duration(1<<uint(i)) * time.Second
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
