package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const maxConnectAttempts = 3

var (
	// ErrUnreachable means the terminal did not answer within the
	// configured attempts.
	ErrUnreachable = errors.New("device unreachable")
)

// Reading is one raw attendance record as reported by the terminal.
// BiometricID is the terminal-side identifier; matching it to an
// employee is the caller's job.
type Reading struct {
	BiometricID string    `json:"biometric_id"`
	Timestamp   time.Time `json:"timestamp"`
}

// Client pulls raw attendance readings from a biometric terminal.
type Client interface {
	FetchReadings(ctx context.Context, since *time.Time) ([]Reading, error)
	Address() string
}

type httpClient struct {
	address string
	client  *http.Client
}

// NewHTTPClient creates a terminal client with a per-attempt timeout.
func NewHTTPClient(address string, timeout time.Duration) Client {
	return &httpClient{
		address: address,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *httpClient) Address() string {
	return c.address
}

type readingsResponse struct {
	Records []Reading `json:"records"`
}

// FetchReadings fetches raw records from the terminal, optionally limited
// to those after `since`. Connection attempts are bounded with
// exponential backoff (1s, 2s) before declaring the device unreachable.
func (c *httpClient) FetchReadings(ctx context.Context, since *time.Time) ([]Reading, error) {
	url := fmt.Sprintf("http://%s/api/records", c.address)
	if since != nil {
		url += "?since=" + since.UTC().Format(time.RFC3339)
	}

	var lastErr error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		readings, err := c.fetchOnce(ctx, url)
		if err == nil {
			return readings, nil
		}

		lastErr = err
		slog.Warn("Device fetch attempt failed",
			"address", c.address,
			"attempt", attempt,
			"max_attempts", maxConnectAttempts,
			"error", err,
		)

		if attempt < maxConnectAttempts {
			select {
			case <-time.After(time.Duration(1<<(attempt-1)) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("%w: %s after %d attempts: %v", ErrUnreachable, c.address, maxConnectAttempts, lastErr)
}

func (c *httpClient) fetchOnce(ctx context.Context, url string) ([]Reading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected device response status %d", resp.StatusCode)
	}

	var body readingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode device response: %w", err)
	}

	return body.Records, nil
}
