package handler

import (
	"context"
	"fmt"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

// MarkRead wraps another handler and acknowledges the message on the
// service once the inner handler accepts it. A rejected message stays
// unread so a later manual sweep can find it.
type MarkRead struct {
	Inner   ports.MessageHandler
	Mailbox ports.Mailbox
}

var _ ports.MessageHandler = (*MarkRead)(nil)

func NewMarkRead(inner ports.MessageHandler, mailbox ports.Mailbox) *MarkRead {
	return &MarkRead{Inner: inner, Mailbox: mailbox}
}

func (h *MarkRead) Dispatch(ctx context.Context, msg domain.Message) error {
	if err := h.Inner.Dispatch(ctx, msg); err != nil {
		return err
	}
	if err := h.Mailbox.MarkRead(ctx, msg.ID); err != nil {
		return fmt.Errorf("mark message %d read: %w", msg.ID, err)
	}
	return nil
}
