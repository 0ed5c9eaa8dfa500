// Package client is a read-only HTTP client for an OpenCode server's
// session API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ctxmap/internal/types"
)

const (
	// DefaultBaseURL is the address a locally started opencode server
	// listens on unless configured otherwise.
	DefaultBaseURL = "http://127.0.0.1:4096"

	defaultUsername = "opencode"
	defaultTimeout  = 30 * time.Second
)

type Config struct {
	BaseURL  string
	Username string
	Token    string
	Timeout  time.Duration
}

type Client struct {
	baseURL  string
	username string
	token    string
	http     *http.Client
}

// RequestError reports a non-2xx response from the server.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e == nil {
		return "opencode request failed"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if strings.TrimSpace(msg) == "" {
		msg = "request failed"
	}
	return fmt.Sprintf("opencode request failed (%s %s): %s", e.Method, e.Path, msg)
}

func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid server url: %s", baseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	username := strings.TrimSpace(cfg.Username)
	if username == "" {
		username = defaultUsername
	}
	return &Client{
		baseURL:  strings.TrimRight(parsed.String(), "/"),
		username: username,
		token:    strings.TrimSpace(cfg.Token),
		http: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// ListSessions fetches every session the server knows about.
func (c *Client) ListSessions(ctx context.Context) ([]types.Session, error) {
	var sessions []types.Session
	if err := c.doJSON(ctx, http.MethodGet, "/session", &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches one session's metadata, including its working directory.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*types.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	var session types.Session
	path := "/session/" + url.PathEscape(sessionID)
	if err := c.doJSON(ctx, http.MethodGet, path, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListMessages fetches a session's full message history in order.
func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]types.Message, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}
	var messages []types.Message
	path := "/session/" + url.PathEscape(sessionID) + "/message"
	if err := c.doJSON(ctx, http.MethodGet, path, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Close releases idle connections. The client must not be used afterwards.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) doJSON(ctx context.Context, method, path string, out any) error {
	path = "/" + strings.TrimLeft(strings.TrimSpace(path), "/")
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.SetBasicAuth(c.username, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    msg,
		}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
