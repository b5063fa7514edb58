package jellyfin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/jellyctl/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	baseRetryDelay = 500 * time.Millisecond
)

// Client implements domain.ControlPlane against a Jellyfin server
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Jellyfin configuration API client
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated request against the Jellyfin API.
// Includes retry logic with exponential backoff for 5xx server errors.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var bodyBytes []byte
	if payload != nil {
		var err error
		bodyBytes, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Wait before retry (exponential backoff)
		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1)) // 500ms, 1s, 2s
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var reqBody io.Reader
		if bodyBytes != nil {
			reqBody = bytes.NewReader(bodyBytes)
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Emby-Token", c.apiKey)
		if bodyBytes != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		c.logger.Debug("jellyfin request", "method", method, "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error("jellyfin request failed", "error", err)
			return nil, domain.ErrServerUnreachable
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, domain.ErrAuthFailed
		}

		// Retry on 5xx server errors
		if resp.StatusCode >= 500 && resp.StatusCode < 600 {
			lastErr = &domain.APIError{Status: resp.StatusCode, Body: string(body)}
			c.logger.Warn("jellyfin server error, will retry",
				"status", resp.StatusCode,
				"body", string(body),
				"attempt", attempt,
				"maxRetries", maxRetries,
				"path", path,
			)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.logger.Error("jellyfin request error", "status", resp.StatusCode, "body", string(body))
			return nil, &domain.APIError{Status: resp.StatusCode, Body: string(body)}
		}

		return body, nil
	}

	c.logger.Error("jellyfin request failed after retries", "error", lastErr, "url", reqURL)
	return nil, lastErr
}

// SystemInfo returns server identity and doubles as the connectivity and
// auth check: /System/Info requires a valid API key.
func (c *Client) SystemInfo(ctx context.Context) (domain.ServerInfo, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/System/Info", nil, nil)
	if err != nil {
		return domain.ServerInfo{}, err
	}

	var info SystemInfoDTO
	if err := json.Unmarshal(body, &info); err != nil {
		return domain.ServerInfo{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return domain.ServerInfo{
		Name:    info.ServerName,
		Version: info.Version,
		ID:      info.ID,
	}, nil
}

// Libraries returns the server's virtual folders
func (c *Client) Libraries(ctx context.Context) ([]domain.RemoteLibrary, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/Library/VirtualFolders", nil, nil)
	if err != nil {
		return nil, err
	}

	var folders []VirtualFolderDTO
	if err := json.Unmarshal(body, &folders); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapLibraries(folders), nil
}

// CreateLibrary creates a virtual folder with a single backing path. The
// creation endpoint returns no body, so the new library's ID is obtained
// by re-listing and matching on name.
func (c *Client) CreateLibrary(ctx context.Context, name string, category domain.Category, folder string) (domain.RemoteLibrary, error) {
	query := url.Values{}
	query.Set("name", name)
	query.Set("collectionType", CollectionType(category))
	query.Set("paths", folder)
	query.Set("refreshLibrary", "false")

	if _, err := c.doRequest(ctx, http.MethodPost, "/Library/VirtualFolders", query, nil); err != nil {
		return domain.RemoteLibrary{}, err
	}

	libs, err := c.Libraries(ctx)
	if err != nil {
		return domain.RemoteLibrary{}, fmt.Errorf("library created but listing failed: %w", err)
	}
	for _, lib := range libs {
		if lib.Name == name {
			return lib, nil
		}
	}
	return domain.RemoteLibrary{}, fmt.Errorf("library %q created but not found in listing", name)
}

// UpdateLibraryOptions applies the full LibraryOptions payload to a
// library. This is an idempotent overwrite.
func (c *Client) UpdateLibraryOptions(ctx context.Context, libraryID string, opts domain.LibraryOptions) error {
	payload := UpdateLibraryOptionsRequest{
		ID:             libraryID,
		LibraryOptions: opts,
	}
	_, err := c.doRequest(ctx, http.MethodPost, "/Library/VirtualFolders/LibraryOptions", nil, payload)
	return err
}

// Tasks returns the server's scheduled tasks
func (c *Client) Tasks(ctx context.Context) ([]domain.RemoteTask, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/ScheduledTasks", nil, nil)
	if err != nil {
		return nil, err
	}

	var tasks []ScheduledTaskDTO
	if err := json.Unmarshal(body, &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapTasks(tasks), nil
}

// UpdateTaskTriggers replaces a task's trigger list. An empty list clears
// all triggers, which is how a task is disabled.
func (c *Client) UpdateTaskTriggers(ctx context.Context, taskID string, triggers []domain.TaskTrigger) error {
	if triggers == nil {
		triggers = []domain.TaskTrigger{}
	}
	path := fmt.Sprintf("/ScheduledTasks/%s/Triggers", url.PathEscape(taskID))
	_, err := c.doRequest(ctx, http.MethodPost, path, nil, triggers)
	return err
}
