// Package domain holds the core types shared by every layer: messages,
// sessions, profiles, and the error taxonomy.
package domain

import "time"

// Message is a single mailbox entry as the service reports it.
type Message struct {
	ID         int64
	From       string
	To         string
	Subject    string
	Body       string
	IsRead     bool
	ReceivedAt time.Time
}
