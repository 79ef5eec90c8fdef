package outbox

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Zhima-Mochi/minishop-modules/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability"
	"github.com/Zhima-Mochi/minishop-modules/internal/observability/logctx"
)

var (
	_ event.Publisher  = (*Bus)(nil)
	_ event.Subscriber = (*Bus)(nil)
)

// ErrClosed is returned by Publish after Stop.
var ErrClosed = errors.New("outbox: bus closed")

const componentOutbox = "outbox"

type Options struct {
	QueueSize      int
	Concurrency    int
	HandlerTimeout time.Duration
}

var DefaultOptions = Options{
	QueueSize:      1024,
	Concurrency:    8,
	HandlerTimeout: 30 * time.Second,
}

// Bus is an in-memory event bus for fan-out between bounded contexts. It is
// not durable: events still queued when Stop gives up are lost.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]event.Handler

	closeMu sync.RWMutex
	closed  bool

	queue     chan event.Event
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	opts      Options
	log       observability.Logger
	tel       observability.Observability
}

func NewBus(tel observability.Observability, opts Options) *Bus {
	tel = observability.OrNop(tel)
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultOptions.QueueSize
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultOptions.Concurrency
	}
	if opts.HandlerTimeout <= 0 {
		opts.HandlerTimeout = DefaultOptions.HandlerTimeout
	}
	return &Bus{
		subs:  make(map[string][]event.Handler),
		queue: make(chan event.Event, opts.QueueSize),
		done:  make(chan struct{}),
		opts:  opts,
		log:   tel.Logger().With(observability.F("component", componentOutbox)),
		tel:   tel,
	}
}

func (b *Bus) Subscribe(eventName string, h event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		bg, cancel := context.WithCancel(context.WithoutCancel(ctx))
		b.cancel = cancel
		go b.dispatchLoop(bg)
		logctx.FromOr(ctx, b.log).Info("event_bus_started")
	})
}

// Stop refuses new events and drains the queue until it is empty or ctx
// is done.
func (b *Bus) Stop(ctx context.Context) {
	b.stopOnce.Do(func() {
		b.closeMu.Lock()
		b.closed = true
		close(b.queue)
		b.closeMu.Unlock()

		if b.cancel != nil {
			select {
			case <-b.done:
			case <-ctx.Done():
			}
			b.cancel()
		}
		logctx.FromOr(ctx, b.log).Info("event_bus_stopped")
	})
}

func (b *Bus) Publish(ctx context.Context, e event.Event) error {
	if e == nil {
		return nil
	}
	b.closeMu.RLock()
	defer b.closeMu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	logger := logctx.FromOr(ctx, b.log).With(observability.F("event", e.EventName()))
	select {
	case b.queue <- e:
		b.tel.Metrics().Counter(observability.MEventsPublished).Add(1, observability.L("event", e.EventName()))
		logger.Debug("event_enqueued")
		return nil
	case <-ctx.Done():
		logger.Warn("event_enqueue_aborted", observability.F("error", ctx.Err().Error()))
		return ctx.Err()
	}
}

func (b *Bus) dispatchLoop(ctx context.Context) {
	defer close(b.done)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-b.queue:
			if !ok {
				return
			}
			b.fanout(ctx, e)
		}
	}
}

func (b *Bus) fanout(ctx context.Context, e event.Event) {
	name := e.EventName()

	b.mu.RLock()
	handlers := append([]event.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	logger := b.log.With(observability.F("event", name))
	if len(handlers) == 0 {
		logger.Debug("event_dropped_no_subscriber")
		return
	}

	sem := make(chan struct{}, b.opts.Concurrency)
	var wg sync.WaitGroup

	for _, h := range handlers {
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					b.handlerFailed(name)
					logger.Error("event_handler_panic",
						observability.F("panic", r),
						observability.F("stack", string(debug.Stack())),
					)
				}
				<-sem
				wg.Done()
			}()

			hctx, cancel := context.WithTimeout(ctx, b.opts.HandlerTimeout)
			defer cancel()
			hctx = logctx.With(hctx, logger)
			if err := h(hctx, e); err != nil {
				b.handlerFailed(name)
				logger.Warn("event_handler_error", observability.F("error", err.Error()))
			}
		}()
	}

	wg.Wait()
	logger.Debug("event_fanned_out", observability.F("handlers", len(handlers)))
}

func (b *Bus) handlerFailed(name string) {
	b.tel.Metrics().Counter(observability.MEventHandlerFailures).Add(1, observability.L("event", name))
}
