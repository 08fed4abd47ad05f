package handler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports/mocks"
)

func sampleMessage() domain.Message {
	return domain.Message{
		ID:         7,
		From:       "ops@mail.local",
		To:         "agent@mail.local",
		Subject:    "deploy done",
		Body:       "all green",
		ReceivedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestExecPassesMessageThroughEnvAndStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	t.Parallel()

	outPath := filepath.Join(t.TempDir(), "captured")
	h := NewExec("sh", "-c", `printf '%s|%s|' "$MW_MESSAGE_ID" "$MW_MESSAGE_SUBJECT" > "$0"; cat >> "$0"`, outPath)

	require.NoError(t, h.Dispatch(context.Background(), sampleMessage()))

	captured, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "7|deploy done|all green", string(captured))
}

func TestExecReportsChildExitStatus(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	t.Parallel()

	h := NewExec("sh", "-c", "echo broken pipe >&2; exit 3")

	err := h.Dispatch(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 3")
	assert.Contains(t, err.Error(), "broken pipe")
}

func TestExecRejectsEmptyCommand(t *testing.T) {
	t.Parallel()

	h := &Exec{}

	err := h.Dispatch(context.Background(), sampleMessage())
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestMarkReadAcknowledgesAfterInnerHandlerSucceeds(t *testing.T) {
	t.Parallel()

	inner := mocks.NewMockMessageHandler(t)
	mailbox := mocks.NewMockMailbox(t)

	inner.EXPECT().Dispatch(mock.Anything, sampleMessage()).Return(nil).Once()
	mailbox.EXPECT().MarkRead(mock.Anything, int64(7)).Return(nil).Once()

	h := NewMarkRead(inner, mailbox)
	require.NoError(t, h.Dispatch(context.Background(), sampleMessage()))
}

func TestMarkReadLeavesRejectedMessagesUnread(t *testing.T) {
	t.Parallel()

	inner := mocks.NewMockMessageHandler(t)
	mailbox := mocks.NewMockMailbox(t)

	inner.EXPECT().Dispatch(mock.Anything, sampleMessage()).Return(errors.New("spawn failed")).Once()

	h := NewMarkRead(inner, mailbox)
	err := h.Dispatch(context.Background(), sampleMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spawn failed")
}

func TestLogHandlerRecordsTheMessage(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	h := NewLog(zap.New(core).Sugar())

	require.NoError(t, h.Dispatch(context.Background(), sampleMessage()))

	entries := logs.FilterMessage("new message")
	require.Equal(t, 1, entries.Len())
	assert.Equal(t, int64(7), entries.All()[0].ContextMap()["message_id"])
}
