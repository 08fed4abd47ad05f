package ports

import (
	"context"

	"github.com/bnema/mailwatch-cli/internal/domain"
)

// ListOptions bounds a single mailbox page fetch.
type ListOptions struct {
	Prefix string
	Limit  int
	Offset int
}

// ListPage is one id-ordered page of messages plus the service's
// pagination hints.
type ListPage struct {
	Messages []domain.Message
	Count    int
	HasMore  bool
}

// OutgoingMessage is a message to deliver through the service. HTML is
// an optional pre-rendered body; the plain Body is always sent.
type OutgoingMessage struct {
	From    string
	To      string
	Subject string
	Body    string
	HTML    string
}

// Mailbox is the narrow mail-service surface the application layer
// depends on.
type Mailbox interface {
	ListMessages(ctx context.Context, opts ListOptions) (ListPage, error)
	MarkRead(ctx context.Context, id int64) error
	Send(ctx context.Context, msg OutgoingMessage) (int64, error)
}
