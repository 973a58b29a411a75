package ragchat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Health reports the service health. A degraded service answers 503
// with the same payload; the report is returned either way, so check
// Status rather than the error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("ragchat: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("ragchat: GET /healthz: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("ragchat: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return HealthStatus{}, decodeError(resp.StatusCode, data)
	}

	var status HealthStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return HealthStatus{}, fmt.Errorf("ragchat: decode response: %w", err)
	}
	return status, nil
}
