package webpa

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kurochkinivan/webpa_collector/internal/domain"
)

const configPathFormat = "/api/v2/device/mac:%s/config"

// Client issues one-shot config reads against a WebPA/TR1D1UM endpoint.
type Client struct {
	log        *slog.Logger
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(log *slog.Logger, baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		log:     log,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchConfig performs a single synchronous GET for the given device and
// parameter path filter and returns the response body verbatim. Any
// transport failure, timeout or non-2xx status yields a RetrievalError;
// no retry is attempted.
func (c *Client) FetchConfig(ctx context.Context, deviceID, names string) ([]byte, error) {
	endpoint := c.baseURL + fmt.Sprintf(configPathFormat, normalizeDeviceID(deviceID))
	if names != "" {
		endpoint += "?names=" + url.QueryEscape(names)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &domain.RetrievalError{DeviceID: deviceID, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Authorization", "Basic "+c.token)

	c.log.DebugContext(ctx, "fetching device config",
		slog.String("device_id", deviceID),
		slog.String("names", names),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.RetrievalError{DeviceID: deviceID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RetrievalError{DeviceID: deviceID, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.RetrievalError{
			DeviceID:   deviceID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body))),
		}
	}

	c.log.DebugContext(ctx, "fetched device config",
		slog.String("device_id", deviceID),
		slog.Int("body_size", len(body)),
	)

	return body, nil
}

// FetchConfigToFile writes the raw response body to path. The body goes
// through a temp file in the same directory and is renamed into place
// only on success, so a failed fetch never leaves a partial artifact and
// never clobbers a previous one.
func (c *Client) FetchConfigToFile(ctx context.Context, deviceID, names, path string) error {
	body, err := c.FetchConfig(ctx, deviceID, names)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %q: %w", tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close %q: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move %q to %q: %w", tmp.Name(), path, err)
	}

	return nil
}

// normalizeDeviceID accepts both bare MACs and ids already carrying the
// WebPA "mac:" prefix.
func normalizeDeviceID(deviceID string) string {
	return strings.TrimPrefix(strings.TrimSpace(deviceID), "mac:")
}
