package mailapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/mailwatch-cli/internal/domain"
)

// Client executes authenticated calls against the mail service. Each
// logical call gets at most two attempts: a 401 on the first attempt
// forces exactly one re-login and one retry. Every other failure
// propagates immediately, so non-idempotent endpoints such as send are
// never repeated blindly.
type Client struct {
	api      API
	sessions *SessionManager
	client   *http.Client
	timeout  time.Duration
	log      *zap.SugaredLogger
}

func NewClient(api API, sessions *SessionManager, httpClient *http.Client, timeout time.Duration, log *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Client{
		api:      api.withDefaults(),
		sessions: sessions,
		client:   httpClient,
		timeout:  timeout,
		log:      log,
	}
}

// Sessions exposes the session manager so sibling request logic can
// reuse the same auth header.
func (c *Client) Sessions() *SessionManager {
	return c.sessions
}

// Do executes one logical call. A non-nil result receives the decoded
// 2xx JSON body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.ValidationError{Field: "body", Reason: err.Error()}
		}
		payload = data
	}

	if err := c.sessions.EnsureValid(ctx); err != nil {
		return err
	}

	status, data, err := c.attempt(ctx, method, path, query, payload)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		c.log.Debugw("token rejected, forcing re-login",
			"method", method,
			"path", path,
		)
		if err := c.sessions.Login(ctx); err != nil {
			return err
		}

		status, data, err = c.attempt(ctx, method, path, query, payload)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			// A fresh token the server still rejects is terminal.
			c.sessions.Clear()
			return &domain.AuthError{Reason: fmt.Sprintf("%s %s unauthorized after re-login", method, path)}
		}
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return apiError(status, data)
	}

	if result == nil || status == http.StatusNoContent {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// Get performs an authenticated GET and decodes the JSON response.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, result)
}

// Post performs an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, result)
}

// Put performs an authenticated PUT with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}, result interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, result)
}

// attempt issues a single HTTP request under the hard per-request
// timeout and returns the status code and raw body. Transport failures,
// including timeouts, come back as TransportError.
func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, payload []byte) (int, []byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.api.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, endpoint, reader)
	if err != nil {
		return 0, nil, &domain.TransportError{Op: "build " + method + " " + path, Err: err}
	}

	header, err := c.sessions.AuthHeader()
	if err != nil {
		return 0, nil, err
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &domain.TransportError{Op: method + " " + path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, &domain.TransportError{Op: "read " + method + " " + path + " response", Err: err}
	}

	return resp.StatusCode, data, nil
}

type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func apiError(status int, data []byte) error {
	apiErr := &domain.APIError{StatusCode: status}

	var body apiErrorResponse
	if json.Unmarshal(data, &body) == nil {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
