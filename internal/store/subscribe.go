package store

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Callback receives the new and old value at a concrete path. Values are
// copies; old is nil when the path did not exist.
type Callback func(newValue, oldValue any, path string)

// SubscriptionID identifies a subscription
type SubscriptionID string

// SubscribeOptions controls a subscription
type SubscribeOptions struct {
	// Once removes the subscription after its first firing
	Once bool
	// Immediate fires synchronously with the current value at subscribe time
	Immediate bool
}

type subscription struct {
	id      SubscriptionID
	pattern []string
	cb      Callback
	once    bool
	fired   atomic.Bool
}

type subscriptions struct {
	mu    sync.Mutex
	list  []*subscription
	index map[SubscriptionID]*subscription
	log   *slog.Logger
}

func newSubscriptions(log *slog.Logger) *subscriptions {
	return &subscriptions{index: make(map[SubscriptionID]*subscription), log: log}
}

type call struct {
	sub      *subscription
	path     string
	newValue any
	oldValue any
}

// Subscribe registers cb for a path pattern with single-segment wildcards.
// A pattern fires for writes at, above or below it, whenever the value at a
// concrete matching path actually changed.
func (s *Store) Subscribe(pattern string, cb Callback, opts SubscribeOptions) (SubscriptionID, error) {
	segs, err := ParsePath(pattern)
	if err != nil {
		return "", err
	}
	if cb == nil {
		return "", fmt.Errorf("%w: nil callback", ErrMalformedPath)
	}
	sub := &subscription{
		id:      SubscriptionID(uuid.NewString()),
		pattern: segs,
		cb:      cb,
		once:    opts.Once,
	}

	var calls []call
	s.mu.Lock()
	if opts.Immediate {
		for _, c := range expand(segs, nil, s.root) {
			v, _ := lookup(s.root, c)
			calls = append(calls, call{sub: sub, path: joinPath(c), newValue: clone(v)})
		}
	}
	s.subs.add(sub)
	s.mu.Unlock()

	s.subs.dispatch(calls)
	return sub.id, nil
}

// Unsubscribe removes a subscription, reporting whether it existed
func (s *Store) Unsubscribe(id SubscriptionID) bool {
	return s.subs.remove(id)
}

// SubscriberCount returns the number of live subscriptions
func (s *Store) SubscriberCount() int {
	s.subs.mu.Lock()
	defer s.subs.mu.Unlock()
	return len(s.subs.list)
}

func (ss *subscriptions) add(sub *subscription) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.list = append(ss.list, sub)
	ss.index[sub.id] = sub
}

func (ss *subscriptions) remove(id SubscriptionID) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.index[id]; !ok {
		return false
	}
	delete(ss.index, id)
	for i, sub := range ss.list {
		if sub.id == id {
			ss.list = append(ss.list[:i:i], ss.list[i+1:]...)
			break
		}
	}
	return true
}

// collect computes the notifications a change from old to next produces.
// It runs under the store lock and does not invoke callbacks.
func (ss *subscriptions) collect(old, next map[string]any, written [][]string) []call {
	ss.mu.Lock()
	subs := append([]*subscription(nil), ss.list...)
	ss.mu.Unlock()

	var calls []call
	for _, sub := range subs {
		seen := make(map[string]struct{})
		for _, w := range written {
			if !prefixMatches(sub.pattern, w) {
				continue
			}
			var concretes [][]string
			if len(w) > len(sub.pattern) {
				// write below the subscribed path
				concretes = [][]string{w[:len(sub.pattern)]}
			} else {
				concretes = expand(sub.pattern, w, old, next)
			}
			for _, c := range concretes {
				key := joinPath(c)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				ov, _ := lookup(old, c)
				nv, _ := lookup(next, c)
				if equal(ov, nv) {
					continue
				}
				calls = append(calls, call{sub: sub, path: key, newValue: clone(nv), oldValue: clone(ov)})
			}
		}
	}
	return calls
}

// dispatch invokes callbacks outside the store lock. A panicking callback is
// logged and does not stop the others.
func (ss *subscriptions) dispatch(calls []call) {
	for _, c := range calls {
		if c.sub.once {
			if !c.sub.fired.CompareAndSwap(false, true) {
				continue
			}
			ss.remove(c.sub.id)
		} else if !ss.live(c.sub.id) {
			continue
		}
		ss.invoke(c)
	}
}

func (ss *subscriptions) live(id SubscriptionID) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	_, ok := ss.index[id]
	return ok
}

func (ss *subscriptions) invoke(c call) {
	defer func() {
		if r := recover(); r != nil {
			ss.log.Error("State subscriber panicked",
				"path", c.path,
				"subscription", c.sub.id,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	c.sub.cb(c.newValue, c.oldValue, c.path)
}
