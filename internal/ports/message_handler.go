package ports

import (
	"context"

	"github.com/bnema/mailwatch-cli/internal/domain"
)

// MessageHandler reacts to one newly detected message. The watcher calls
// Dispatch at most once per message id.
type MessageHandler interface {
	Dispatch(ctx context.Context, msg domain.Message) error
}
