// Package publisher delivers audit events to a Store, either synchronously or
// through a bounded in-process buffer drained by a single worker.
//
// In async mode Emit never blocks: when the buffer is full the event is
// rejected with ErrBufferFull. With a fallback store configured, every event
// the primary sink refuses lands in the fallback, and the primary is not
// called at all while its circuit breaker is open.
package publisher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	id "mediaconsole/pkg/domain"
	audit "mediaconsole/pkg/platform/audit"
	"mediaconsole/pkg/platform/circuit"
)

var (
	ErrBufferFull  = errors.New("audit buffer full")
	ErrClosed      = errors.New("audit publisher closed")
	ErrNotReadable = errors.New("audit store does not support listing")
)

// Publisher captures structured audit events.
type Publisher struct {
	store    audit.Store
	fallback audit.Store
	breaker  *circuit.Breaker
	logger   *slog.Logger

	bufferSize int
	buffer     chan audit.Event
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

type Option func(*Publisher)

// WithAsyncBuffer enables async delivery with a buffer of n events.
func WithAsyncBuffer(n int) Option {
	return func(p *Publisher) {
		if n > 0 {
			p.bufferSize = n
		}
	}
}

// WithFallback routes events to fallback while the primary store is failing.
func WithFallback(fallback audit.Store, breaker *circuit.Breaker) Option {
	return func(p *Publisher) {
		p.fallback = fallback
		p.breaker = breaker
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.fallback != nil && p.breaker == nil {
		p.breaker = circuit.New("audit")
	}
	if p.bufferSize > 0 {
		p.buffer = make(chan audit.Event, p.bufferSize)
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit records an event. A zero Timestamp is set to now.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}

	if p.buffer == nil {
		return p.deliver(ctx, event)
	}

	select {
	case p.buffer <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

// List returns the user's events when the primary store is readable.
func (p *Publisher) List(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	r, ok := p.store.(audit.Reader)
	if !ok {
		return nil, ErrNotReadable
	}
	return r.ListByUser(ctx, userID)
}

// Close stops accepting events and drains the buffer.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	if p.buffer != nil {
		close(p.buffer)
	}
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	for event := range p.buffer {
		if err := p.deliver(context.Background(), event); err != nil && p.logger != nil {
			p.logger.Warn("audit event dropped",
				"action", event.Action,
				"subject", event.Subject,
				"error", err,
			)
		}
	}
}

// deliver appends to the primary store. With a fallback configured, an event
// the primary refuses is written to the fallback, and the primary is skipped
// entirely while its breaker is open.
func (p *Publisher) deliver(ctx context.Context, event audit.Event) error {
	if p.breaker == nil {
		return p.store.Append(ctx, event)
	}
	if !p.breaker.Allow() {
		return p.fallback.Append(ctx, event)
	}

	err := p.store.Append(ctx, event)
	if err == nil {
		if change := p.breaker.RecordSuccess(); change.Closed && p.logger != nil {
			p.logger.Info("audit sink recovered", "breaker", p.breaker.Name())
		}
		return nil
	}

	if change := p.breaker.RecordFailure(); change.Opened && p.logger != nil {
		p.logger.Warn("audit sink failing, using fallback store",
			"breaker", p.breaker.Name(),
			"error", err,
		)
	}
	if fbErr := p.fallback.Append(ctx, event); fbErr != nil {
		return errors.Join(err, fbErr)
	}
	return nil
}
