package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
	"github.com/bnema/mailwatch-cli/internal/ports/mocks"
)

func msg(id int64) domain.Message {
	return domain.Message{ID: id, From: "peer@mail.local", To: "agent@mail.local", Subject: "s"}
}

func page(ids ...int64) ports.ListPage {
	p := ports.ListPage{Count: len(ids)}
	for _, id := range ids {
		p.Messages = append(p.Messages, msg(id))
	}
	return p
}

// recordDispatches registers a catch-all Dispatch expectation that
// appends every dispatched id to the returned slice.
func recordDispatches(handler *mocks.MockMessageHandler) *[]int64 {
	var mu sync.Mutex
	ids := &[]int64{}
	handler.EXPECT().Dispatch(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, m domain.Message) error {
		mu.Lock()
		defer mu.Unlock()
		*ids = append(*ids, m.ID)
		return nil
	})
	return ids
}

func TestRunOnceDispatchesBacklogThenOnlyNewMessages(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)
	dispatched := recordDispatches(handler)

	cycle := 0
	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).RunAndReturn(func(context.Context, ports.ListOptions) (ports.ListPage, error) {
		cycle++
		if cycle == 1 {
			return page(1, 2), nil
		}
		return page(1, 2, 3), nil
	})

	w := NewWatcher(mailbox, handler, WatcherOptions{Prefix: "agent"}, nil)

	require.NoError(t, w.RunOnce(context.Background()))
	mark, ok := w.LastHighWaterMark()
	require.True(t, ok)
	assert.Equal(t, int64(2), mark)
	assert.Equal(t, []int64{1, 2}, *dispatched)

	require.NoError(t, w.RunOnce(context.Background()))
	mark, _ = w.LastHighWaterMark()
	assert.Equal(t, int64(3), mark)
	assert.Equal(t, []int64{1, 2, 3}, *dispatched, "already-seen messages must not be re-dispatched")
}

func TestRunOnceDispatchesInAscendingIDOrder(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)
	dispatched := recordDispatches(handler)

	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).Return(page(3, 1, 2), nil)

	w := NewWatcher(mailbox, handler, WatcherOptions{}, nil)

	require.NoError(t, w.RunOnce(context.Background()))
	assert.Equal(t, []int64{1, 2, 3}, *dispatched)
}

func TestHighWaterMarkNeverRegresses(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)

	handler.EXPECT().Dispatch(mock.Anything, msg(5)).Return(nil).Once()

	cycle := 0
	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).RunAndReturn(func(context.Context, ports.ListOptions) (ports.ListPage, error) {
		cycle++
		if cycle == 1 {
			return page(5), nil
		}
		// A later page containing only older mail.
		return page(4, 5), nil
	})

	w := NewWatcher(mailbox, handler, WatcherOptions{}, nil)

	require.NoError(t, w.RunOnce(context.Background()))
	require.NoError(t, w.RunOnce(context.Background()))

	mark, ok := w.LastHighWaterMark()
	require.True(t, ok)
	assert.Equal(t, int64(5), mark)
}

func TestPrimeOnlyFirstCycleSkipsTheBacklog(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)

	handler.EXPECT().Dispatch(mock.Anything, msg(3)).Return(nil).Once()

	cycle := 0
	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).RunAndReturn(func(context.Context, ports.ListOptions) (ports.ListPage, error) {
		cycle++
		if cycle == 1 {
			return page(1, 2), nil
		}
		return page(1, 2, 3), nil
	})

	w := NewWatcher(mailbox, handler, WatcherOptions{FirstCycle: PrimeOnly}, nil)

	require.NoError(t, w.RunOnce(context.Background()))
	mark, ok := w.LastHighWaterMark()
	require.True(t, ok)
	assert.Equal(t, int64(2), mark, "the backlog primes the mark without dispatch")

	require.NoError(t, w.RunOnce(context.Background()))
	mark, _ = w.LastHighWaterMark()
	assert.Equal(t, int64(3), mark)
}

func TestHandlerFailureDoesNotAbortTheBatch(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)

	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).Return(page(1, 2), nil).Once()
	handler.EXPECT().Dispatch(mock.Anything, msg(1)).Return(errors.New("spawn failed")).Once()
	handler.EXPECT().Dispatch(mock.Anything, msg(2)).Return(nil).Once()

	core, logs := observer.New(zapcore.ErrorLevel)
	w := NewWatcher(mailbox, handler, WatcherOptions{}, zap.New(core).Sugar())

	require.NoError(t, w.RunOnce(context.Background()))

	mark, _ := w.LastHighWaterMark()
	assert.Equal(t, int64(2), mark)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "message handler failed", logs.All()[0].Message)
}

func TestRunOnceSurfacesFetchFailuresWithoutMovingTheMark(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)

	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).Return(ports.ListPage{}, &domain.TransportError{Op: "GET /messages", Err: errors.New("timeout")}).Once()

	w := NewWatcher(mailbox, handler, WatcherOptions{}, nil)

	err := w.RunOnce(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsTransportError(err))

	_, ok := w.LastHighWaterMark()
	assert.False(t, ok)
}

func TestStartRunsTheFirstCycleImmediately(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)
	dispatched := recordDispatches(handler)

	mailbox.EXPECT().ListMessages(mock.Anything, ports.ListOptions{Prefix: "agent", Limit: 50}).Return(page(1), nil).Once()

	w := NewWatcher(mailbox, handler, WatcherOptions{Prefix: "agent", Interval: time.Hour}, nil)

	w.Start()
	t.Cleanup(w.Stop)

	assert.True(t, w.IsRunning())
	assert.Equal(t, []int64{1}, *dispatched, "Start polls synchronously before arming the timer")
}

func TestStartWhileRunningLogsAndDoesNothing(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)

	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).Return(ports.ListPage{}, nil).Once()

	core, logs := observer.New(zapcore.WarnLevel)
	w := NewWatcher(mailbox, handler, WatcherOptions{Interval: time.Hour}, zap.New(core).Sugar())

	w.Start()
	t.Cleanup(w.Stop)
	w.Start()

	assert.True(t, w.IsRunning())
	require.Equal(t, 1, logs.FilterMessage("watcher already running, ignoring start").Len())
}

func TestStopIsIdempotent(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)

	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).Return(ports.ListPage{}, nil).Once()

	w := NewWatcher(mailbox, handler, WatcherOptions{Interval: time.Hour}, nil)

	w.Start()
	w.Stop()
	w.Stop()

	assert.False(t, w.IsRunning())
}

func TestFailedCycleDoesNotStopTheLoop(t *testing.T) {
	t.Parallel()

	mailbox := mocks.NewMockMailbox(t)
	handler := mocks.NewMockMessageHandler(t)

	delivered := make(chan int64, 1)
	handler.EXPECT().Dispatch(mock.Anything, mock.Anything).RunAndReturn(func(_ context.Context, m domain.Message) error {
		select {
		case delivered <- m.ID:
		default:
		}
		return nil
	})

	var mu sync.Mutex
	cycle := 0
	mailbox.EXPECT().ListMessages(mock.Anything, mock.Anything).RunAndReturn(func(context.Context, ports.ListOptions) (ports.ListPage, error) {
		mu.Lock()
		defer mu.Unlock()
		cycle++
		if cycle == 1 {
			return ports.ListPage{}, &domain.TransportError{Op: "GET /messages", Err: errors.New("connection refused")}
		}
		return page(9), nil
	})

	core, logs := observer.New(zapcore.ErrorLevel)
	w := NewWatcher(mailbox, handler, WatcherOptions{Interval: 10 * time.Millisecond}, zap.New(core).Sugar())

	w.Start()
	t.Cleanup(w.Stop)

	select {
	case id := <-delivered:
		assert.Equal(t, int64(9), id)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher never recovered from the failed cycle")
	}

	assert.GreaterOrEqual(t, logs.FilterMessage("poll cycle failed").Len(), 1)
}
