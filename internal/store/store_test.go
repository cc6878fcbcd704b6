package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

type notification struct {
	path     string
	newValue any
	oldValue any
}

type recorder struct {
	mu    sync.Mutex
	calls []notification
}

func (r *recorder) cb(newValue, oldValue any, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notification{path: path, newValue: newValue, oldValue: oldValue})
}

func (r *recorder) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.path
	}
	return out
}

func newPlainStore(t *testing.T, initial map[string]any) *Store {
	t.Helper()
	s, err := New(initial, Options{BatchDebounce: -1})
	require.NoError(t, err)
	return s
}

func TestGet_DefaultsOnMissingOrNonContainer(t *testing.T) {
	s := newPlainStore(t, map[string]any{
		"player": map[string]any{"name": "Ada", "level": 3},
	})

	assert.Equal(t, "Ada", s.Get("player.name", nil))
	assert.Equal(t, float64(3), s.Get("player.level", nil))
	assert.Equal(t, "fallback", s.Get("player.missing", "fallback"))
	assert.Equal(t, 7, s.Get("player.name.length", 7), "walking into a scalar returns the default")
	assert.Nil(t, s.Get("nothing.here", nil))
}

func TestGet_MalformedPathPanics(t *testing.T) {
	s := newPlainStore(t, nil)
	assert.Panics(t, func() { s.Get("", nil) })
	assert.Panics(t, func() { s.Get("a..b", nil) })
}

func TestSet_CreatesIntermediateContainers(t *testing.T) {
	s := newPlainStore(t, nil)

	require.NoError(t, s.Set("player.inventory.resources.temporal-pulses", 12, SetOptions{}))

	assert.Equal(t, float64(12), s.Get("player.inventory.resources.temporal-pulses", nil))
	assert.Equal(t, map[string]any{"temporal-pulses": float64(12)}, s.Get("player.inventory.resources", nil))
}

func TestSet_ReplacesWholeSubtree(t *testing.T) {
	s := newPlainStore(t, map[string]any{
		"settings": map[string]any{"sound": 0.5, "music": 0.5},
	})

	require.NoError(t, s.Set("settings", map[string]any{"sound": 1.0}, SetOptions{}))

	assert.Nil(t, s.Get("settings.music", nil), "no partial merge of nested objects")
	assert.Equal(t, 1.0, s.Get("settings.sound", nil))
}

func TestSet_MalformedPath(t *testing.T) {
	s := newPlainStore(t, nil)
	assert.ErrorIs(t, s.Set("", 1, SetOptions{}), ErrMalformedPath)
	assert.ErrorIs(t, s.Set("a.", 1, SetOptions{}), ErrMalformedPath)
}

func TestSet_NonSerializableRejected(t *testing.T) {
	s := newPlainStore(t, nil)
	err := s.Set("ui.callback", func() {}, SetOptions{})
	assert.ErrorIs(t, err, ErrNotSerializable)
}

func TestGet_ReturnsCopies(t *testing.T) {
	s := newPlainStore(t, map[string]any{
		"farm": map[string]any{"plots": []any{map[string]any{"id": 0}}},
	})

	plots := s.Get("farm.plots", nil).([]any)
	plots[0].(map[string]any)["id"] = 99

	assert.Equal(t, float64(0), s.Get("farm.plots.0.id", nil))
}

func TestSet_DoesNotAliasCallerValues(t *testing.T) {
	s := newPlainStore(t, nil)
	value := map[string]any{"a": 1}
	require.NoError(t, s.Set("ui.x", value, SetOptions{}))

	value["a"] = 2
	assert.Equal(t, float64(1), s.Get("ui.x.a", nil))
}

func TestSetAt(t *testing.T) {
	s := newPlainStore(t, map[string]any{
		"farm": map[string]any{"plots": []any{"a", "b"}},
	})

	require.NoError(t, s.SetAt("farm.plots", 1, "B", SetOptions{}))
	require.NoError(t, s.SetAt("farm.plots", 2, "c", SetOptions{}))

	assert.Equal(t, []any{"a", "B", "c"}, s.Get("farm.plots", nil))
	assert.ErrorIs(t, s.SetAt("farm.plots", 5, "x", SetOptions{}), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SetAt("farm.plots", -1, "x", SetOptions{}), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.SetAt("farm", 0, "x", SetOptions{}), ErrNotCollection)
}

func TestSubscribe_ExactPath(t *testing.T) {
	s := newPlainStore(t, nil)
	rec := &recorder{}
	_, err := s.Subscribe("time.currentEra", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Set("time.currentEra", "egyptian", SetOptions{}))
	require.NoError(t, s.Set("time.currentEra", "egyptian", SetOptions{}))

	require.Len(t, rec.calls, 1, "unchanged value does not notify")
	assert.Equal(t, notification{path: "time.currentEra", newValue: "egyptian"}, rec.calls[0])
}

func TestSubscribe_WildcardMatchesSingleSegment(t *testing.T) {
	s := newPlainStore(t, nil)
	rec := &recorder{}
	_, err := s.Subscribe("a.*.c", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Set("a.b.c", 1, SetOptions{}))
	require.NoError(t, s.Set("a.b.c.d", 2, SetOptions{}))
	require.NoError(t, s.Set("a.x.y", 3, SetOptions{}))

	assert.True(t, MatchPattern("a.*.c", "a.b.c"))
	assert.False(t, MatchPattern("a.*.c", "a.b.c.d"))
	// a.b.c.d writes below a.b.c, replacing the scalar 1 with an object
	assert.Equal(t, []string{"a.b.c", "a.b.c"}, rec.paths())
}

func TestSubscribe_WriteAboveNotifiesChangedDescendants(t *testing.T) {
	s := newPlainStore(t, map[string]any{
		"player": map[string]any{"inventory": map[string]any{
			"resources": map[string]any{"temporal-pulses": 5, "bronze": 1},
		}},
	})
	rec := &recorder{}
	_, err := s.Subscribe("player.inventory.resources.*", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Set("player.inventory", map[string]any{
		"resources": map[string]any{"temporal-pulses": 7, "bronze": 1, "stone": 2},
	}, SetOptions{}))

	assert.Equal(t, []string{
		"player.inventory.resources.stone",
		"player.inventory.resources.temporal-pulses",
	}, rec.paths())
	assert.Equal(t, float64(5), rec.calls[1].oldValue)
	assert.Equal(t, float64(7), rec.calls[1].newValue)
}

func TestSubscribe_WriteBelowNotifiesAncestor(t *testing.T) {
	s := newPlainStore(t, map[string]any{
		"farm": map[string]any{"plots": []any{map[string]any{"state": "empty"}}},
	})
	rec := &recorder{}
	_, err := s.Subscribe("farm.plots", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	require.NoError(t, s.SetAt("farm.plots", 0, map[string]any{"state": "planted"}, SetOptions{}))

	require.Equal(t, []string{"farm.plots"}, rec.paths())
	assert.Equal(t, []any{map[string]any{"state": "planted"}}, rec.calls[0].newValue)
}

func TestSubscribe_OnceAndImmediate(t *testing.T) {
	s := newPlainStore(t, map[string]any{"time": map[string]any{"currentEra": "prehistoric"}})

	immediate := &recorder{}
	_, err := s.Subscribe("time.currentEra", immediate.cb, SubscribeOptions{Immediate: true})
	require.NoError(t, err)
	require.Len(t, immediate.calls, 1)
	assert.Equal(t, "prehistoric", immediate.calls[0].newValue)

	once := &recorder{}
	_, err = s.Subscribe("time.currentEra", once.cb, SubscribeOptions{Once: true})
	require.NoError(t, err)

	require.NoError(t, s.Set("time.currentEra", "egyptian", SetOptions{}))
	require.NoError(t, s.Set("time.currentEra", "medieval", SetOptions{}))

	assert.Len(t, once.calls, 1)
	assert.Len(t, immediate.calls, 3)
}

func TestSubscribe_SkipNotify(t *testing.T) {
	s := newPlainStore(t, nil)
	rec := &recorder{}
	_, err := s.Subscribe("ui.selectedSeed", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Set("ui.selectedSeed", "giant-fern", SetOptions{SkipNotify: true}))
	assert.Empty(t, rec.calls)
}

func TestUnsubscribe(t *testing.T) {
	s := newPlainStore(t, nil)
	rec := &recorder{}
	id, err := s.Subscribe("ui.*", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	assert.True(t, s.Unsubscribe(id))
	assert.False(t, s.Unsubscribe(id))

	require.NoError(t, s.Set("ui.selectedSeed", "x", SetOptions{}))
	assert.Empty(t, rec.calls)
	assert.Zero(t, s.SubscriberCount())
}

func TestSubscribe_PanickingCallbackIsolated(t *testing.T) {
	s := newPlainStore(t, nil)
	_, err := s.Subscribe("ui.x", func(any, any, string) { panic("render failed") }, SubscribeOptions{})
	require.NoError(t, err)
	rec := &recorder{}
	_, err = s.Subscribe("ui.x", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	assert.NotPanics(t, func() { require.NoError(t, s.Set("ui.x", 1, SetOptions{})) })
	assert.Len(t, rec.calls, 1)
}

func TestSubscribe_CallbackMayWriteToStore(t *testing.T) {
	s := newPlainStore(t, nil)
	_, err := s.Subscribe("player.experience", func(newValue, _ any, _ string) {
		_ = s.Set("player.level", 2, SetOptions{})
	}, SubscribeOptions{})
	require.NoError(t, err)

	require.NoError(t, s.Set("player.experience", 100, SetOptions{}))
	assert.Equal(t, float64(2), s.Get("player.level", nil))
}

func TestUndoRedo(t *testing.T) {
	s := newPlainStore(t, map[string]any{"player": map[string]any{"experience": 0}})

	require.NoError(t, s.Set("player.experience", 10, SetOptions{}))
	require.NoError(t, s.Set("player.experience", 20, SetOptions{}))

	assert.True(t, s.Undo())
	assert.Equal(t, float64(10), s.Get("player.experience", nil))
	assert.True(t, s.Undo())
	assert.Equal(t, float64(0), s.Get("player.experience", nil))
	assert.False(t, s.Undo(), "boundary")

	assert.True(t, s.Redo())
	assert.True(t, s.Redo())
	assert.Equal(t, float64(20), s.Get("player.experience", nil))
	assert.False(t, s.Redo(), "boundary")
}

func TestUndo_NewWriteDropsRedoTail(t *testing.T) {
	s := newPlainStore(t, nil)
	require.NoError(t, s.Set("ui.x", 1, SetOptions{}))
	require.NoError(t, s.Set("ui.x", 2, SetOptions{}))
	require.True(t, s.Undo())

	require.NoError(t, s.Set("ui.x", 3, SetOptions{}))
	assert.False(t, s.CanRedo())
	assert.True(t, s.Undo())
	assert.Equal(t, float64(1), s.Get("ui.x", nil))
}

func TestUndo_RingEvictsOldest(t *testing.T) {
	s, err := New(nil, Options{HistoryCapacity: 3, BatchDebounce: -1})
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Set("ui.x", i, SetOptions{}))
	}

	undone := 0
	for s.Undo() {
		undone++
	}
	assert.Equal(t, 3, undone)
	assert.Equal(t, float64(2), s.Get("ui.x", nil))
}

func TestUndo_SkipHistoryAmendsPresent(t *testing.T) {
	s := newPlainStore(t, nil)
	require.NoError(t, s.Set("ui.x", 1, SetOptions{}))
	require.NoError(t, s.Set("time.lastTick", "t1", SetOptions{SkipHistory: true}))

	require.True(t, s.Undo())
	assert.Nil(t, s.Get("ui.x", nil))
	require.True(t, s.Redo())
	assert.Equal(t, "t1", s.Get("time.lastTick", nil), "redo restores the amended present")
}

func TestUndo_NotifiesSubscribers(t *testing.T) {
	s := newPlainStore(t, nil)
	require.NoError(t, s.Set("time.currentEra", "prehistoric", SetOptions{}))
	require.NoError(t, s.Set("time.currentEra", "egyptian", SetOptions{}))

	rec := &recorder{}
	_, err := s.Subscribe("time.currentEra", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	require.True(t, s.Undo())
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "prehistoric", rec.calls[0].newValue)
	assert.Equal(t, "egyptian", rec.calls[0].oldValue)
}

func TestBatchUpdate_CoalescesOnFlush(t *testing.T) {
	s, err := New(nil, Options{BatchDebounce: time.Hour})
	require.NoError(t, err)

	rec := &recorder{}
	_, err = s.Subscribe("ui", rec.cb, SubscribeOptions{})
	require.NoError(t, err)

	require.NoError(t, s.BatchUpdate(map[string]any{"ui.a": 1, "ui.b": 2}, BatchOptions{}))
	require.NoError(t, s.BatchUpdate(map[string]any{"ui.c": 3}, BatchOptions{}))

	assert.Equal(t, 3, s.Pending())
	assert.Nil(t, s.Get("ui.a", nil), "nothing applied before the flush")

	require.NoError(t, s.Flush())

	assert.Equal(t, float64(3), s.Get("ui.c", nil))
	assert.Len(t, rec.calls, 1, "one notification pass per flush")
	assert.True(t, s.Undo())
	assert.Nil(t, s.Get("ui.a", nil), "one history snapshot per flush")
}

func TestBatchUpdate_DebounceFlushes(t *testing.T) {
	s, err := New(nil, Options{BatchDebounce: 5 * time.Millisecond})
	require.NoError(t, err)

	require.NoError(t, s.BatchUpdate(map[string]any{"ui.a": 1}, BatchOptions{}))

	assert.Eventually(t, func() bool {
		return s.Get("ui.a", nil) == float64(1)
	}, time.Second, time.Millisecond)
}

func TestBatchUpdate_Immediate(t *testing.T) {
	s, err := New(nil, Options{BatchDebounce: time.Hour})
	require.NoError(t, err)

	require.NoError(t, s.BatchUpdate(map[string]any{"ui.a": 1}, BatchOptions{Immediate: true}))
	assert.Equal(t, float64(1), s.Get("ui.a", nil))
	assert.Zero(t, s.Pending())
}

func TestGetSetState_RoundTrip(t *testing.T) {
	initial := domain.NewGameState(domain.NewGameOptions{
		GridSize:   4,
		Eras:       map[string]bool{domain.EraPrehistoric: true, domain.EraEgyptian: false},
		StartingAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	s, err := New(initial, Options{Schema: GameSchema(), BatchDebounce: -1})
	require.NoError(t, err)

	before := s.GetState()
	require.NoError(t, s.SetState(s.GetState(), SetOptions{}))
	assert.Equal(t, before, s.GetState())

	_, ok := GetAs[domain.GameState](s, "version")
	assert.False(t, ok, "a scalar does not decode into the aggregate")

	var decoded domain.GameState
	require.NoError(t, decode(s.GetState(), &decoded))
	assert.Equal(t, initial.Farm, decoded.Farm)
	assert.Equal(t, initial.Time, decoded.Time)
}

func TestGetAs(t *testing.T) {
	s := newPlainStore(t, map[string]any{"world": map[string]any{
		"effects": map[string]any{"growthMultiplier": 1.5, "waterRetention": 1, "resourceMultiplier": 1},
	}})

	effects, ok := GetAs[domain.EraEffects](s, domain.PathEffects)
	require.True(t, ok)
	assert.Equal(t, 1.5, effects.GrowthMultiplier)

	_, ok = GetAs[domain.EraEffects](s, "world.missing")
	assert.False(t, ok)

	var out domain.EraEffects
	assert.ErrorIs(t, s.Decode("world.missing", &out), ErrPathNotFound)
}
