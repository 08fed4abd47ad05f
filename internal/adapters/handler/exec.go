// Package handler provides MessageHandler implementations: spawning an
// external command per message, logging, and a mark-read decorator.
package handler

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

// Exec runs one external command per message. The message body arrives
// on the child's stdin and the remaining fields through MW_MESSAGE_*
// environment variables.
type Exec struct {
	Command string
	Args    []string
}

var _ ports.MessageHandler = (*Exec)(nil)

func NewExec(command string, args ...string) *Exec {
	return &Exec{Command: command, Args: args}
}

func (h *Exec) Dispatch(ctx context.Context, msg domain.Message) error {
	if h.Command == "" {
		return &domain.ValidationError{Field: "command", Reason: "handler command is empty"}
	}

	cmd := exec.CommandContext(ctx, h.Command, h.Args...)
	cmd.Stdin = bytes.NewReader([]byte(msg.Body))
	cmd.Env = append(os.Environ(),
		"MW_MESSAGE_ID="+strconv.FormatInt(msg.ID, 10),
		"MW_MESSAGE_FROM="+msg.From,
		"MW_MESSAGE_TO="+msg.To,
		"MW_MESSAGE_SUBJECT="+msg.Subject,
		"MW_MESSAGE_RECEIVED_AT="+msg.ReceivedAt.Format(time.RFC3339),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("handler command %q for message %d: %w: %s", h.Command, msg.ID, err, bytes.TrimSpace(output))
	}
	return nil
}
