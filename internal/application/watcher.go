// Package application composes the mailbox port into the behaviors the
// agent needs: a polling watcher that turns the stateless list endpoint
// into an at-most-once new-message stream, and one-shot operations for
// sending and acknowledging mail.
package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bnema/mailwatch-cli/internal/domain"
	"github.com/bnema/mailwatch-cli/internal/ports"
)

// FirstCyclePolicy decides what happens to the backlog already sitting
// in the mailbox when the high-water mark has never been set.
type FirstCyclePolicy string

const (
	// DispatchBacklog treats every message on the first page as new and
	// dispatches all of them. This is the default.
	DispatchBacklog FirstCyclePolicy = "backlog"

	// PrimeOnly records the high-water mark from the first non-empty
	// page without dispatching anything; only mail arriving afterwards
	// is delivered.
	PrimeOnly FirstCyclePolicy = "prime"
)

const (
	defaultInterval = 15 * time.Second
	defaultPageSize = 50
)

// WatcherOptions configures one watcher instance.
type WatcherOptions struct {
	Prefix     string
	Interval   time.Duration
	PageSize   int
	FirstCycle FirstCyclePolicy
}

func (o WatcherOptions) withDefaults() WatcherOptions {
	if o.Interval <= 0 {
		o.Interval = defaultInterval
	}
	if o.PageSize <= 0 {
		o.PageSize = defaultPageSize
	}
	if o.FirstCycle == "" {
		o.FirstCycle = DispatchBacklog
	}
	return o
}

// Watcher polls the mailbox on a fixed interval and dispatches each
// newly observed message exactly once, in ascending id order. Cycles
// never overlap: the next tick is armed only after the previous cycle,
// handler dispatch included, has settled.
type Watcher struct {
	mailbox ports.Mailbox
	handler ports.MessageHandler
	opts    WatcherOptions
	log     *zap.SugaredLogger

	// cycleMu serializes poll cycles between the loop and RunOnce.
	cycleMu sync.Mutex

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	hwm     int64
	hwmSet  bool
}

func NewWatcher(mailbox ports.Mailbox, handler ports.MessageHandler, opts WatcherOptions, log *zap.SugaredLogger) *Watcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Watcher{
		mailbox: mailbox,
		handler: handler,
		opts:    opts.withDefaults(),
		log:     log,
	}
}

// Start runs one cycle immediately, then polls on the configured
// interval. Calling Start while already running logs a warning and
// changes nothing.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.log.Warnw("watcher already running, ignoring start", "prefix", w.opts.Prefix)
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stop := w.stopCh
	w.mu.Unlock()

	w.log.Infow("watcher started",
		"prefix", w.opts.Prefix,
		"interval", w.opts.Interval,
		"first_cycle", w.opts.FirstCycle,
	)

	if err := w.RunOnce(context.Background()); err != nil {
		w.logCycleFailure(err)
	}

	go w.loop(stop)
}

// Stop prevents future cycles. It is idempotent and does not cancel a
// cycle already in flight; that cycle finishes normally.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return
	}
	w.running = false
	close(w.stopCh)
	w.log.Infow("watcher stopped", "prefix", w.opts.Prefix)
}

func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.running
}

// LastHighWaterMark returns the largest message id observed so far, and
// false when no page has been seen yet.
func (w *Watcher) LastHighWaterMark() (int64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.hwm, w.hwmSet
}

func (w *Watcher) loop(stop <-chan struct{}) {
	for {
		// Arming the timer here, after the previous cycle returned,
		// is what guarantees single-flight: a slow cycle delays the
		// next tick instead of racing it.
		timer := time.NewTimer(w.opts.Interval)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := w.RunOnce(context.Background()); err != nil {
			w.logCycleFailure(err)
		}
	}
}

// RunOnce executes a single poll cycle: fetch a bounded page, dispatch
// the genuinely new messages in ascending id order, advance the
// high-water mark. Handler failures are logged per message and never
// abort the batch; a fetch failure is returned to the caller (the loop
// logs and swallows it).
func (w *Watcher) RunOnce(ctx context.Context) error {
	w.cycleMu.Lock()
	defer w.cycleMu.Unlock()

	page, err := w.mailbox.ListMessages(ctx, ports.ListOptions{
		Prefix: w.opts.Prefix,
		Limit:  w.opts.PageSize,
	})
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}

	w.mu.Lock()
	mark, markSet := w.hwm, w.hwmSet
	w.mu.Unlock()

	maxID := mark
	fresh := make([]domain.Message, 0, len(page.Messages))
	for _, msg := range page.Messages {
		if msg.ID > maxID {
			maxID = msg.ID
		}
		if markSet && msg.ID <= mark {
			continue
		}
		fresh = append(fresh, msg)
	}

	// The mark advances over the whole fetched page, not just the new
	// messages, so a page of already-seen mail never regresses it.
	if len(page.Messages) > 0 {
		w.mu.Lock()
		w.hwm, w.hwmSet = maxID, true
		w.mu.Unlock()
	}

	if !markSet && w.opts.FirstCycle == PrimeOnly {
		if len(page.Messages) > 0 {
			w.log.Infow("primed high-water mark, skipping backlog",
				"high_water_mark", maxID,
				"backlog", len(fresh),
			)
		}
		return nil
	}

	sort.Slice(fresh, func(i, j int) bool { return fresh[i].ID < fresh[j].ID })

	for _, msg := range fresh {
		if err := w.handler.Dispatch(ctx, msg); err != nil {
			w.log.Errorw("message handler failed",
				"message_id", msg.ID,
				"from", msg.From,
				"subject", msg.Subject,
				"error", err,
			)
			continue
		}
		w.log.Debugw("message dispatched", "message_id", msg.ID, "from", msg.From)
	}
	return nil
}

func (w *Watcher) logCycleFailure(err error) {
	kind := "api"
	switch {
	case domain.IsAuthError(err):
		kind = "auth"
	case domain.IsTransportError(err):
		kind = "transport"
	}
	w.log.Errorw("poll cycle failed",
		"prefix", w.opts.Prefix,
		"kind", kind,
		"error", err,
	)
}
