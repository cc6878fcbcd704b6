package event

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/ChronoFarm_Go/internal/logger"
)

// Event is an emitted payload with its envelope
type Event struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Topic     Topic     `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
	Payload   Payload   `json:"payload"`
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// ErrorHandler receives the error (or recovered panic) of a single listener
type ErrorHandler func(ctx context.Context, event Event, err error)

// ListenerID identifies one registration
type ListenerID string

// ErrListenerPanic wraps a recovered listener panic
var ErrListenerPanic = errors.New("event listener panicked")

// ErrWaitTimeout is returned by WaitFor when no event arrives in time
var ErrWaitTimeout = errors.New("timed out waiting for event")

// Publisher is the emit side of the bus, used by components that only announce
type Publisher interface {
	Emit(ctx context.Context, payload Payload) bool
}

// FailureSink receives every listener failure after it has been logged
type FailureSink interface {
	Record(ev Event, listener ListenerID, err error) error
}

type listener struct {
	id       ListenerID
	pattern  string
	priority int
	seq      uint64
	once     bool
	fired    atomic.Bool
	onError  ErrorHandler
	handler  Handler
}

// ListenerOption configures a registration
type ListenerOption func(*listener)

// WithPriority sets the listener priority. Higher priorities run first,
// equal priorities run in registration order.
func WithPriority(priority int) ListenerOption {
	return func(l *listener) { l.priority = priority }
}

// Once removes the listener after its first invocation
func Once() ListenerOption {
	return func(l *listener) { l.once = true }
}

// WithErrorHandler routes this listener's errors and panics to fn
func WithErrorHandler(fn ErrorHandler) ListenerOption {
	return func(l *listener) { l.onError = fn }
}

// BusOption configures a Bus
type BusOption func(*Bus)

// WithFailureSink records listener failures, e.g. into a dead-letter file
func WithFailureSink(sink FailureSink) BusOption {
	return func(b *Bus) { b.sink = sink }
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) BusOption {
	return func(b *Bus) { b.now = now }
}

// Bus is an in-memory, priority-ordered publish/subscribe hub
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]*listener
	seq       uint64
	sink      FailureSink
	now       func() time.Time
}

// NewBus creates an empty bus
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		listeners: make(map[string][]*listener),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// On registers handler for a topic pattern: an exact topic, a namespace
// wildcard such as "timetravel:*", or "*" for everything.
func (b *Bus) On(pattern string, handler Handler, opts ...ListenerOption) ListenerID {
	if handler == nil {
		panic("event: nil handler")
	}
	if !patternKnown(pattern) {
		logger.FromContext(context.Background()).Warn(LogMsgUnknownPattern, "pattern", pattern)
	}

	l := &listener{
		id:      ListenerID(uuid.NewString()),
		pattern: pattern,
		handler: handler,
	}
	for _, opt := range opts {
		opt(l)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	l.seq = b.seq
	b.listeners[pattern] = append(b.listeners[pattern], l)
	return l.id
}

// Off removes a registration. It returns false when the id is not
// registered under pattern.
func (b *Bus) Off(pattern string, id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeLocked(pattern, id)
}

// Remove drops a registration by id alone
func (b *Bus) Remove(id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for pattern := range b.listeners {
		if b.removeLocked(pattern, id) {
			return true
		}
	}
	return false
}

func (b *Bus) removeLocked(pattern string, id ListenerID) bool {
	ls := b.listeners[pattern]
	for i, l := range ls {
		if l.id == id {
			b.listeners[pattern] = slices.Delete(slices.Clone(ls), i, i+1)
			if len(b.listeners[pattern]) == 0 {
				delete(b.listeners, pattern)
			}
			return true
		}
	}
	return false
}

// ListenerCount returns the number of registrations that match topic
func (b *Bus) ListenerCount(topic Topic) int {
	return len(b.matching(topic))
}

// Emit invokes every matching listener synchronously in priority order.
// It reports whether at least one listener ran.
func (b *Bus) Emit(ctx context.Context, payload Payload) bool {
	ev := b.envelope(payload)
	handled := false
	for _, l := range b.matching(ev.Topic) {
		if !b.claim(l) {
			continue
		}
		handled = true
		_ = b.invoke(ctx, l, ev)
	}
	return handled
}

// EmitAsync runs every matching listener concurrently and waits for all of
// them. Listener errors are joined into the returned error.
func (b *Bus) EmitAsync(ctx context.Context, payload Payload) (bool, error) {
	ev := b.envelope(payload)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	handled := false
	for _, l := range b.matching(ev.Topic) {
		if !b.claim(l) {
			continue
		}
		handled = true
		wg.Add(1)
		go func(l *listener) {
			defer wg.Done()
			if err := b.invoke(ctx, l, ev); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(l)
	}
	wg.Wait()
	return handled, errors.Join(errs...)
}

// WaitFor blocks until an event matching pattern is emitted, the timeout
// elapses or ctx is done.
func (b *Bus) WaitFor(ctx context.Context, pattern string, timeout time.Duration) (Event, error) {
	ch := make(chan Event, 1)
	id := b.On(pattern, func(_ context.Context, ev Event) error {
		ch <- ev
		return nil
	}, Once())
	defer b.Off(pattern, id)

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	select {
	case ev := <-ch:
		return ev, nil
	case <-timer:
		return Event{}, fmt.Errorf("%w: %s after %s", ErrWaitTimeout, pattern, timeout)
	case <-ctx.Done():
		return Event{}, ctx.Err()
	}
}

func (b *Bus) envelope(payload Payload) Event {
	if payload == nil {
		panic("event: nil payload")
	}
	return Event{
		ID:        uuid.NewString(),
		Version:   EventSchemaVersion,
		Topic:     payload.Topic(),
		Timestamp: b.now(),
		Payload:   payload,
	}
}

// matching snapshots the listeners for topic in invocation order
func (b *Bus) matching(topic Topic) []*listener {
	b.mu.RLock()
	var out []*listener
	for pattern, ls := range b.listeners {
		if Matches(pattern, topic) {
			out = append(out, ls...)
		}
	}
	b.mu.RUnlock()

	slices.SortStableFunc(out, func(a, c *listener) int {
		if n := cmp.Compare(c.priority, a.priority); n != 0 {
			return n
		}
		return cmp.Compare(a.seq, c.seq)
	})
	return out
}

// claim reserves a once listener for exactly one invocation and unregisters it
func (b *Bus) claim(l *listener) bool {
	if !l.once {
		return true
	}
	if !l.fired.CompareAndSwap(false, true) {
		return false
	}
	b.Off(l.pattern, l.id)
	return true
}

func (b *Bus) invoke(ctx context.Context, l *listener, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanic, r)
			logger.FromContext(ctx).Error(LogMsgListenerPanicked,
				"topic", ev.Topic,
				"listener", l.id,
				"panic", r,
				"stack", string(debug.Stack()))
			b.fail(ctx, l, ev, err)
		}
	}()

	if err = l.handler(ctx, ev); err != nil {
		logger.FromContext(ctx).Error(LogMsgListenerFailed,
			"topic", ev.Topic,
			"listener", l.id,
			"error", err)
		b.fail(ctx, l, ev, err)
	}
	return err
}

func (b *Bus) fail(ctx context.Context, l *listener, ev Event, err error) {
	if l.onError != nil {
		func() {
			defer func() { _ = recover() }()
			l.onError(ctx, ev, err)
		}()
	}
	if b.sink != nil {
		if serr := b.sink.Record(ev, l.id, err); serr != nil {
			logger.FromContext(ctx).Warn(LogMsgDeadLetterWriteFailed, "error", serr)
		}
	}
}

// Matches reports whether a subscription pattern covers topic
func Matches(pattern string, topic Topic) bool {
	if pattern == PatternAll {
		return true
	}
	if ns, ok := strings.CutSuffix(pattern, NamespaceSeparator+"*"); ok {
		return strings.HasPrefix(string(topic), ns+NamespaceSeparator)
	}
	return pattern == string(topic)
}

func patternKnown(pattern string) bool {
	for _, t := range AllTopics {
		if Matches(pattern, t) {
			return true
		}
	}
	return false
}

// Listen registers a typed handler on the payload's own topic
func Listen[P Payload](b *Bus, fn func(ctx context.Context, payload P) error, opts ...ListenerOption) ListenerID {
	var zero P
	return b.On(string(zero.Topic()), func(ctx context.Context, ev Event) error {
		p, err := DecodePayload[P](ev.Payload)
		if err != nil {
			return fmt.Errorf("decode %s payload: %w", ev.Topic, err)
		}
		return fn(ctx, p)
	}, opts...)
}

// MultiSink fans a failure out to several sinks
type MultiSink []FailureSink

// Record forwards to every sink and joins their errors
func (m MultiSink) Record(ev Event, id ListenerID, err error) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if e := s.Record(ev, id, err); e != nil {
			errs = append(errs, e)
		}
	}
	return errors.Join(errs...)
}
