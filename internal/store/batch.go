package store

import (
	"slices"
	"sync"
	"time"
)

// BatchOptions controls a batched write
type BatchOptions struct {
	// Immediate flushes the queue now instead of after the debounce window
	Immediate    bool
	SkipHistory  bool
	SkipValidate bool
}

type batcher struct {
	store   *Store
	mu      sync.Mutex
	pending []write
	opts    SetOptions
	timer   *time.Timer
}

func newBatcher(s *Store) *batcher {
	return &batcher{store: s}
}

// BatchUpdate enqueues several writes. Queued writes are coalesced into one
// history snapshot and one notification pass when the queue flushes.
// Writes queued later override earlier ones at the same path.
func (s *Store) BatchUpdate(values map[string]any, opts BatchOptions) error {
	writes := make([]write, 0, len(values))
	for path, v := range values {
		segs, err := ParsePath(path)
		if err != nil {
			return err
		}
		writes = append(writes, write{segs: segs, value: v})
	}
	// stable order: parents before children so nested writes compose
	slices.SortStableFunc(writes, func(a, b write) int {
		return comparePaths(a.segs, b.segs)
	})

	b := s.batch
	b.mu.Lock()
	b.pending = append(b.pending, writes...)
	// a batch records history unless every contributor asked to skip it
	if len(b.pending) == len(writes) {
		b.opts = SetOptions{SkipHistory: opts.SkipHistory, SkipValidate: opts.SkipValidate}
	} else {
		b.opts.SkipHistory = b.opts.SkipHistory && opts.SkipHistory
		b.opts.SkipValidate = b.opts.SkipValidate && opts.SkipValidate
	}
	immediate := opts.Immediate || s.debounce < 0
	if !immediate && b.timer == nil {
		b.timer = time.AfterFunc(s.debounce, func() {
			if err := b.flush(); err != nil {
				s.log.Warn("Batched state update partially rejected", "error", err)
			}
		})
	}
	b.mu.Unlock()

	if immediate {
		return b.flush()
	}
	return nil
}

// Flush applies any queued batch writes now
func (s *Store) Flush() error {
	return s.batch.flush()
}

// Pending reports the number of queued batch writes
func (s *Store) Pending() int {
	s.batch.mu.Lock()
	defer s.batch.mu.Unlock()
	return len(s.batch.pending)
}

func (b *batcher) flush() error {
	b.mu.Lock()
	writes := b.pending
	opts := b.opts
	b.pending = nil
	b.opts = SetOptions{}
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()

	if len(writes) == 0 {
		return nil
	}
	return b.store.apply(writes, opts)
}
