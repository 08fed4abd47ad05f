package handler

import (
	"context"

	"go.uber.org/zap"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

// Log records each message and is the default handler when no command
// is configured.
type Log struct {
	Logger *zap.SugaredLogger
}

var _ ports.MessageHandler = (*Log)(nil)

func NewLog(logger *zap.SugaredLogger) *Log {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Log{Logger: logger}
}

func (h *Log) Dispatch(_ context.Context, msg domain.Message) error {
	h.Logger.Infow("new message",
		"message_id", msg.ID,
		"from", msg.From,
		"subject", msg.Subject,
		"received_at", msg.ReceivedAt,
	)
	return nil
}
