package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

const (
	reportsPath = "/api/reports"

	defaultReportError = "Failed to get report"
)

// APIError is a non-200 response from the reports API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// GetReport retrieves the prosthesis usage report of the token's owner.
func (c *Client) GetReport(ctx context.Context, accessToken string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reportsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	if !json.Valid(body) {
		return nil, errors.New("failed to decode response: invalid json")
	}

	return json.RawMessage(body), nil
}

func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return defaultReportError
	}
	for _, field := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, field); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return defaultReportError
}
