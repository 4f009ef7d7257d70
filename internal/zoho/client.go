// Package zoho implements the outbound forwarder toward the Zoho CRM
// web-to-lead form endpoint.
package zoho

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/oceaniadigital/lead-relay/pkg/logging"
)

// Config holds forwarder settings.
type Config struct {
	Endpoint string
	Timeout  time.Duration
	// StrictStatus turns non-2xx CRM responses into forward errors. Off by
	// default: the historical contract treats any completed call as success.
	StrictStatus bool
}

// Client posts URL-encoded lead payloads to the CRM endpoint.
type Client struct {
	endpoint     string
	strictStatus bool
	httpClient   *http.Client
	logger       *logging.Logger
}

// NewClient creates a forwarder. Every forward is bounded by cfg.Timeout
// (30s default) so a hung CRM endpoint cannot pin a request forever.
func NewClient(cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint:     cfg.Endpoint,
		strictStatus: cfg.StrictStatus,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// Forward posts the encoded form body and returns the CRM's status and raw
// response body. In strict mode a non-2xx status is returned as an error
// alongside the response details.
func (c *Client) Forward(ctx context.Context, formBody string) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(formBody))
	if err != nil {
		return 0, "", fmt.Errorf("zoho: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("zoho: forward lead: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("zoho: read response: %w", err)
	}

	if c.strictStatus && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return resp.StatusCode, string(body), fmt.Errorf("zoho: endpoint returned status %d", resp.StatusCode)
	}

	c.logger.Debug("lead forwarded to CRM", "status", resp.StatusCode, "endpoint", c.endpoint)
	return resp.StatusCode, string(body), nil
}
