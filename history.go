package retouch

import (
	imagebuf "github.com/gogpu/retouch/internal/image"
)

// DefaultHistoryCapacity is the maximum number of full-frame snapshots a
// session retains. Insertion beyond the cap evicts the oldest entry.
const DefaultHistoryCapacity = 20

// History is a bounded sequence of full-frame snapshots with an undo/redo
// cursor. Entry 0 after the first push is the pristine pre-edit snapshot
// until capacity eviction discards it; entries after the cursor are always
// discardable.
//
// History is not safe for concurrent use. The session confines it to the
// render goroutine, where pushes happen only at stroke-commit boundaries
// rather than per pointer sample, so growth is bounded by discrete user
// actions.
type History struct {
	entries  []*Pixmap
	index    int
	capacity int
	pool     *imagebuf.Pool
}

// NewHistory creates a history holding at most capacity snapshots. Backing
// memory of evicted and truncated snapshots is returned to pool when pool is
// non-nil.
func NewHistory(capacity int, pool *imagebuf.Pool) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{
		entries:  make([]*Pixmap, 0, capacity),
		index:    -1,
		capacity: capacity,
		pool:     pool,
	}
}

// Push appends a snapshot, truncating any entries after the cursor and
// evicting the oldest entry once the capacity is exceeded. The history takes
// ownership of snap.
func (h *History) Push(snap *Pixmap) {
	// Redo tail is invalidated by a new action.
	for i := h.index + 1; i < len(h.entries); i++ {
		h.release(h.entries[i])
	}
	h.entries = append(h.entries[:h.index+1], snap)
	h.index = len(h.entries) - 1

	if len(h.entries) > h.capacity {
		h.release(h.entries[0])
		copy(h.entries, h.entries[1:])
		h.entries[len(h.entries)-1] = nil
		h.entries = h.entries[:len(h.entries)-1]
		h.index--
	}
}

// Undo moves the cursor one entry back and returns the snapshot to restore.
// Valid only while CanUndo; otherwise it is a no-op returning (nil, false).
// The returned snapshot remains owned by the history.
func (h *History) Undo() (*Pixmap, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.index--
	return h.entries[h.index], true
}

// Redo moves the cursor one entry forward and returns the snapshot to
// restore. Valid only while CanRedo; otherwise it is a no-op returning
// (nil, false). The returned snapshot remains owned by the history.
func (h *History) Redo() (*Pixmap, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.index++
	return h.entries[h.index], true
}

// CanUndo reports whether an earlier snapshot exists. The entry at index 0
// is the baseline, so the cursor never moves below it.
func (h *History) CanUndo() bool {
	return h.index > 0
}

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool {
	return h.index < len(h.entries)-1
}

// Current returns the snapshot at the cursor, or nil before the first push.
func (h *History) Current() *Pixmap {
	if h.index < 0 {
		return nil
	}
	return h.entries[h.index]
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.entries)
}

// Index returns the cursor position, -1 before the first push.
func (h *History) Index() int {
	return h.index
}

// Release frees every snapshot, returning backing buffers to the pool. The
// history is empty afterwards and may be reused.
func (h *History) Release() {
	for _, e := range h.entries {
		h.release(e)
	}
	h.entries = h.entries[:0]
	h.index = -1
}

func (h *History) release(snap *Pixmap) {
	if h.pool != nil && snap != nil {
		h.pool.Put(snap.Data())
	}
}
