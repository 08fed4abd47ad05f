package mailapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

var _ ports.Mailbox = (*Client)(nil)

type messageRecord struct {
	ID         int64     `json:"id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	IsRead     bool      `json:"isRead"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func (r messageRecord) toDomain() domain.Message {
	return domain.Message{
		ID:         r.ID,
		From:       r.From,
		To:         r.To,
		Subject:    r.Subject,
		Body:       r.Body,
		IsRead:     r.IsRead,
		ReceivedAt: r.ReceivedAt,
	}
}

type listMessagesResponse struct {
	Messages []messageRecord `json:"messages"`
	Count    int             `json:"count"`
	HasMore  bool            `json:"hasMore"`
}

type sendMessageRequest struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	HTML    string `json:"html,omitempty"`
}

type sendMessageResponse struct {
	ID int64 `json:"id"`
}

// ListMessages fetches one id-ordered page for the given address prefix.
func (c *Client) ListMessages(ctx context.Context, opts ports.ListOptions) (ports.ListPage, error) {
	query := url.Values{}
	if opts.Prefix != "" {
		query.Set("prefix", opts.Prefix)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var body listMessagesResponse
	if err := c.Get(ctx, c.api.MessagesPath, query, &body); err != nil {
		return ports.ListPage{}, err
	}

	page := ports.ListPage{
		Messages: make([]domain.Message, 0, len(body.Messages)),
		Count:    body.Count,
		HasMore:  body.HasMore,
	}
	for _, record := range body.Messages {
		page.Messages = append(page.Messages, record.toDomain())
	}
	return page, nil
}

// MarkRead flags a message as read on the service.
func (c *Client) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return &domain.ValidationError{Field: "id", Reason: "must be positive"}
	}
	return c.Put(ctx, fmt.Sprintf("%s/%d/read", c.api.MessagesPath, id), nil, nil)
}

// Send delivers a message through the service and returns its id.
func (c *Client) Send(ctx context.Context, msg ports.OutgoingMessage) (int64, error) {
	if msg.To == "" {
		return 0, &domain.ValidationError{Field: "to", Reason: "recipient is required"}
	}
	if msg.Subject == "" {
		return 0, &domain.ValidationError{Field: "subject", Reason: "subject is required"}
	}

	var body sendMessageResponse
	err := c.Post(ctx, c.api.MessagesPath, sendMessageRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.Body,
		HTML:    msg.HTML,
	}, &body)
	if err != nil {
		return 0, err
	}
	return body.ID, nil
}
