package application

import (
	"context"
	"fmt"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

// RenderHTML converts a markdown body into HTML for the send endpoint.
type RenderHTML func(markdown string) (string, error)

// Service bundles the one-shot mailbox operations that do not need the
// polling loop. Errors surface directly to the caller, unlike watcher
// cycles which log and keep scheduling.
type Service struct {
	mailbox    ports.Mailbox
	renderHTML RenderHTML
}

func NewService(mailbox ports.Mailbox, renderHTML RenderHTML) *Service {
	return &Service{mailbox: mailbox, renderHTML: renderHTML}
}

// SendInput describes an outgoing message. When Markdown is set the
// body is additionally rendered to HTML.
type SendInput struct {
	From     string
	To       string
	Subject  string
	Body     string
	Markdown bool
}

func (s *Service) Send(ctx context.Context, in SendInput) (int64, error) {
	out := ports.OutgoingMessage{
		From:    in.From,
		To:      in.To,
		Subject: in.Subject,
		Body:    in.Body,
	}

	if in.Markdown {
		if s.renderHTML == nil {
			return 0, &domain.ValidationError{Field: "markdown", Reason: "no renderer configured"}
		}
		html, err := s.renderHTML(in.Body)
		if err != nil {
			return 0, fmt.Errorf("render message body: %w", err)
		}
		out.HTML = html
	}

	return s.mailbox.Send(ctx, out)
}

func (s *Service) Inbox(ctx context.Context, prefix string, limit, offset int) (ports.ListPage, error) {
	return s.mailbox.ListMessages(ctx, ports.ListOptions{Prefix: prefix, Limit: limit, Offset: offset})
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.mailbox.MarkRead(ctx, id)
}
