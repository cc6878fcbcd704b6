package store

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// Default store tuning
const (
	DefaultHistoryCapacity = 50
	// DefaultBatchDebounce is one 60Hz frame
	DefaultBatchDebounce = 16 * time.Millisecond
)

// SetOptions controls a single write. The zero value notifies, records
// history and validates.
type SetOptions struct {
	SkipNotify   bool
	SkipHistory  bool
	SkipValidate bool
}

// Options configures a Store
type Options struct {
	// Schema validates writes. A nil schema accepts everything.
	Schema *Schema
	// HistoryCapacity bounds the undo ring. Zero uses the default, negative disables history.
	HistoryCapacity int
	// BatchDebounce is the coalescing window of BatchUpdate. Negative disables batching.
	BatchDebounce time.Duration
	Logger        *slog.Logger
}

// Store is an observable tree of plain JSON data addressed by dot paths.
// Committed trees are never mutated in place: every write copies the
// containers along its path, so history snapshots share structure.
type Store struct {
	mu       sync.Mutex
	root     map[string]any
	schema   *Schema
	history  *history
	subs     *subscriptions
	batch    *batcher
	debounce time.Duration
	log      *slog.Logger
}

// New creates a store holding initial. initial must normalize to an object.
func New(initial any, opts Options) (*Store, error) {
	if opts.HistoryCapacity == 0 {
		opts.HistoryCapacity = DefaultHistoryCapacity
	}
	if opts.BatchDebounce == 0 {
		opts.BatchDebounce = DefaultBatchDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	root := map[string]any{}
	if initial != nil {
		n, err := normalize(initial)
		if err != nil {
			return nil, err
		}
		m, ok := n.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: root must be an object, got %T", ErrValidation, n)
		}
		root = m
	}
	if opts.Schema != nil {
		if err := opts.Schema.check(root, nil); err != nil {
			return nil, err
		}
	}

	s := &Store{
		root:     root,
		schema:   opts.Schema,
		history:  newHistory(opts.HistoryCapacity),
		subs:     newSubscriptions(opts.Logger),
		debounce: opts.BatchDebounce,
		log:      opts.Logger,
	}
	s.batch = newBatcher(s)
	s.history.reset(root)
	return s, nil
}

// Get returns a copy of the value at path, or def when any segment is absent
// or the walk hits a non-container. A malformed path is a programmer error
// and panics.
func (s *Store) Get(path string, def any) any {
	segs, err := ParsePath(path)
	if err != nil {
		panic(fmt.Sprintf("store: Get: %v", err))
	}
	s.mu.Lock()
	v, ok := lookup(s.root, segs)
	s.mu.Unlock()
	if !ok {
		return def
	}
	return clone(v)
}

// Has reports whether a value exists at path
func (s *Store) Has(path string) bool {
	segs, err := ParsePath(path)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := lookup(s.root, segs)
	return ok
}

// Decode reads the value at path into out
func (s *Store) Decode(path string, out any) error {
	segs, err := ParsePath(path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	v, ok := lookup(s.root, segs)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	return decode(v, out)
}

// GetAs reads the value at path as T. It reports false when the path is
// absent or the value does not decode into T.
func GetAs[T any](s *Store, path string) (T, bool) {
	var out T
	if err := s.Decode(path, &out); err != nil {
		return out, false
	}
	return out, true
}

// Set replaces the leaf or subtree at path, creating intermediate objects
func (s *Store) Set(path string, value any, opts SetOptions) error {
	segs, err := ParsePath(path)
	if err != nil {
		return err
	}
	return s.apply([]write{{segs: segs, value: value}}, opts)
}

// SetAt writes one entry of the collection at path. index may equal the
// collection length to append.
func (s *Store) SetAt(path string, index int, value any, opts SetOptions) error {
	segs, err := ParsePath(path)
	if err != nil {
		return err
	}
	return s.apply([]write{{segs: segs, index: &index, value: value}}, opts)
}

// GetState returns a deep copy of the whole root aggregate
func (s *Store) GetState() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.root).(map[string]any)
}

// Snapshot decodes the whole root aggregate into out
func (s *Store) Snapshot(out any) error {
	s.mu.Lock()
	root := s.root
	s.mu.Unlock()
	return decode(root, out)
}

// SetState replaces the whole root aggregate. state may be a map or any
// value that marshals to a JSON object.
func (s *Store) SetState(state any, opts SetOptions) error {
	return s.apply([]write{{segs: nil, value: state}}, opts)
}

type write struct {
	segs  []string
	index *int
	value any
}

// path returns the concrete path a write touches
func (w write) path() []string {
	if w.index == nil {
		return w.segs
	}
	return append(append([]string(nil), w.segs...), strconv.Itoa(*w.index))
}

// applyTo computes the new root for one write without committing it
func (s *Store) applyTo(root map[string]any, w write, validate bool) (map[string]any, error) {
	value, err := normalize(w.value)
	if err != nil {
		return nil, err
	}

	var next any
	switch {
	case len(w.segs) == 0:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: root must be an object, got %T", ErrValidation, value)
		}
		next = m
	case w.index != nil:
		cur, _ := lookup(root, w.segs)
		var coll []any
		switch c := cur.(type) {
		case []any:
			coll = c
		case nil:
		default:
			return nil, fmt.Errorf("%w: %s", ErrNotCollection, joinPath(w.segs))
		}
		idx := *w.index
		if idx < 0 || idx > len(coll) {
			return nil, fmt.Errorf("%w: %d not in [0,%d]", ErrIndexOutOfRange, idx, len(coll))
		}
		updated := make([]any, len(coll), len(coll)+1)
		copy(updated, coll)
		if idx == len(coll) {
			updated = append(updated, value)
		} else {
			updated[idx] = value
		}
		next, err = setIn(root, w.segs, updated)
	default:
		next, err = setIn(root, w.segs, value)
	}
	if err != nil {
		return nil, err
	}

	newRoot := next.(map[string]any)
	if validate && s.schema != nil {
		if err := s.schema.check(newRoot, w.path()); err != nil {
			return nil, err
		}
	}
	return newRoot, nil
}

// apply commits writes as one unit: one history entry and one notification pass
func (s *Store) apply(writes []write, opts SetOptions) error {
	s.mu.Lock()
	old := s.root
	root := old
	paths := make([][]string, 0, len(writes))
	var errs []error
	for _, w := range writes {
		next, err := s.applyTo(root, w, !opts.SkipValidate)
		if err != nil {
			s.log.Warn("State write rejected", "path", joinPath(w.path()), "error", err)
			errs = append(errs, err)
			continue
		}
		root = next
		paths = append(paths, w.path())
	}
	if len(paths) == 0 {
		s.mu.Unlock()
		return errors.Join(errs...)
	}

	s.root = root
	if opts.SkipHistory {
		s.history.amend(root)
	} else {
		s.history.push(root)
	}

	var calls []call
	if !opts.SkipNotify {
		calls = s.subs.collect(old, root, paths)
	}
	s.mu.Unlock()

	s.subs.dispatch(calls)
	return errors.Join(errs...)
}

// Undo restores the previous history snapshot
func (s *Store) Undo() bool {
	return s.travel(s.history.undo)
}

// Redo reapplies the next history snapshot
func (s *Store) Redo() bool {
	return s.travel(s.history.redo)
}

// CanUndo and CanRedo report whether Undo and Redo would move
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.canUndo()
}

func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.canRedo()
}

// ClearHistory drops all snapshots but the current state
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.reset(s.root)
}

func (s *Store) travel(move func() (map[string]any, bool)) bool {
	s.mu.Lock()
	target, ok := move()
	if !ok {
		s.mu.Unlock()
		return false
	}
	old := s.root
	s.root = target
	calls := s.subs.collect(old, target, [][]string{nil})
	s.mu.Unlock()

	s.subs.dispatch(calls)
	return true
}
