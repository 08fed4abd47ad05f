package mailapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

// SessionManager owns the login lifecycle for one mailbox: it decides
// when the token needs renewing and mints the Authorization header for
// outgoing requests. It is safe for sibling request paths sharing the
// same session.
type SessionManager struct {
	api     API
	creds   domain.Credentials
	client  *http.Client
	clock   ports.Clock
	timeout time.Duration
	log     *zap.SugaredLogger

	mu      sync.Mutex
	session domain.Session
}

func NewSessionManager(api API, creds domain.Credentials, httpClient *http.Client, clock ports.Clock, timeout time.Duration, log *zap.SugaredLogger) *SessionManager {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &SessionManager{
		api:     api.withDefaults(),
		creds:   creds,
		client:  httpClient,
		clock:   clock,
		timeout: timeout,
		log:     log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// EnsureValid logs in when no session exists or the current one is
// inside the refresh skew. Otherwise it is a no-op.
func (m *SessionManager) EnsureValid(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.ValidAt(m.clock.Now()) {
		return nil
	}
	return m.loginLocked(ctx)
}

// Login re-authenticates unconditionally, bypassing the skew check. The
// executor calls this after a 401: the server just rejected the token,
// so its local expiry is irrelevant.
func (m *SessionManager) Login(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.loginLocked(ctx)
}

func (m *SessionManager) loginLocked(ctx context.Context) error {
	payload, err := json.Marshal(loginRequest{
		Username: m.creds.Username,
		Password: m.creds.Password,
	})
	if err != nil {
		return &domain.AuthError{Reason: "encode login request", Err: err}
	}

	reqCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, m.api.BaseURL+m.api.LoginPath, bytes.NewReader(payload))
	if err != nil {
		return &domain.AuthError{Reason: "build login request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return &domain.AuthError{Reason: "login request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthError{Reason: "invalid credentials"}
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return &domain.AuthError{Reason: fmt.Sprintf("login returned status %d", resp.StatusCode)}
	}

	var body loginResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return &domain.AuthError{Reason: "malformed login response", Err: err}
	}
	if body.Token == "" || body.ExpiresAt.IsZero() {
		return &domain.AuthError{Reason: "login response missing token or expiry"}
	}

	m.session = domain.Session{Token: body.Token, ExpiresAt: body.ExpiresAt}
	m.log.Debugw("session refreshed",
		"username", m.creds.Username,
		"expires_at", body.ExpiresAt,
	)
	return nil
}

// AuthHeader returns the Authorization header for the current session.
// Callers must have called EnsureValid first; an empty session is a
// contract violation.
func (m *SessionManager) AuthHeader() (http.Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Empty() {
		return nil, &domain.AuthError{Reason: "no token"}
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+m.session.Token)
	return header, nil
}

// Clear drops the session, on logout or after a terminal auth failure.
func (m *SessionManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = domain.Session{}
}

// Current returns a copy of the session for introspection.
func (m *SessionManager) Current() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session
}
