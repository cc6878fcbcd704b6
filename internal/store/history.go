package store

// history is a bounded ring of root snapshots. cursor marks the snapshot
// matching the current state; entries after it are the redo tail.
type history struct {
	capacity int
	entries  []map[string]any
	cursor   int
}

func newHistory(capacity int) *history {
	return &history{capacity: capacity}
}

func (h *history) enabled() bool {
	return h.capacity > 0
}

func (h *history) reset(root map[string]any) {
	h.entries = h.entries[:0]
	h.cursor = 0
	if h.enabled() {
		h.entries = append(h.entries, root)
	}
}

// push records a new snapshot, dropping the redo tail and evicting the oldest
func (h *history) push(root map[string]any) {
	if !h.enabled() {
		return
	}
	h.entries = append(h.entries[:h.cursor+1], root)
	// capacity counts undo steps; one extra slot holds the present state
	if over := len(h.entries) - (h.capacity + 1); over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
	h.cursor = len(h.entries) - 1
}

// amend replaces the present snapshot without creating an undo step
func (h *history) amend(root map[string]any) {
	if !h.enabled() || len(h.entries) == 0 {
		return
	}
	h.entries[h.cursor] = root
}

func (h *history) canUndo() bool { return h.enabled() && h.cursor > 0 }

func (h *history) canRedo() bool { return h.enabled() && h.cursor < len(h.entries)-1 }

func (h *history) undo() (map[string]any, bool) {
	if !h.canUndo() {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

func (h *history) redo() (map[string]any, bool) {
	if !h.canRedo() {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}
