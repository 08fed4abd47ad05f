package domain

import "time"

// RefreshSkew is subtracted from a token's expiry when deciding whether
// it is still usable, so a token is refreshed before it actually lapses.
const RefreshSkew = 5 * time.Minute

// Session is an authenticated token and its server-reported expiry. It
// lives only in memory and is never persisted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

func (s Session) Empty() bool {
	return s.Token == ""
}

// ValidAt reports whether the session can still back a request at the
// given instant, leaving RefreshSkew of headroom before expiry.
func (s Session) ValidAt(now time.Time) bool {
	if s.Empty() {
		return false
	}
	return now.Before(s.ExpiresAt.Add(-RefreshSkew))
}

// Credentials is the username/password pair exchanged for a session
// token. It is stored JSON-encoded in the secret store.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
