// Package mailapi is the HTTP adapter for the agent mail service. It
// owns the token session lifecycle and executes authenticated calls
// with a bounded single-retry-on-401 policy.
package mailapi

import (
	"strings"
	"time"
)

const (
	defaultLoginPath    = "/login"
	defaultMessagesPath = "/messages"

	defaultRequestTimeout = 10 * time.Second
	maxResponseBytes      = 1 << 20
)

// API locates the mail service endpoints relative to one base URL.
// Zero-value paths fall back to the service defaults.
type API struct {
	BaseURL      string
	LoginPath    string
	MessagesPath string
}

func (a API) withDefaults() API {
	a.BaseURL = strings.TrimRight(a.BaseURL, "/")
	if a.LoginPath == "" {
		a.LoginPath = defaultLoginPath
	}
	if a.MessagesPath == "" {
		a.MessagesPath = defaultMessagesPath
	}
	return a
}
