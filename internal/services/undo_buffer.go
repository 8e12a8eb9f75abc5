package services

import "gastos/internal/core"

// Deletion is one undoable delete: the removed expense and the position
// it held in the unfiltered ledger.
type Deletion struct {
	Expense core.Expense `json:"item"`
	Index   int          `json:"index"`
}

// UndoBuffer is a bounded history of deletions, most recent last. It is
// an explicit value owned by whoever mediates deletions; there is no
// ambient global history.
type UndoBuffer struct {
	capacity int
	entries  []Deletion
}

// DefaultUndoDepth is how many deletions are kept when no explicit
// capacity is configured.
const DefaultUndoDepth = 10

func NewUndoBuffer(capacity int) *UndoBuffer {
	if capacity < 1 {
		capacity = DefaultUndoDepth
	}
	return &UndoBuffer{capacity: capacity}
}

// Push records a deletion, evicting the oldest entry at capacity.
func (b *UndoBuffer) Push(d Deletion) {
	if len(b.entries) == b.capacity {
		copy(b.entries, b.entries[1:])
		b.entries = b.entries[:len(b.entries)-1]
	}
	b.entries = append(b.entries, d)
}

// Pop removes and returns the most recent deletion. The second return is
// false when there is nothing to undo.
func (b *UndoBuffer) Pop() (Deletion, bool) {
	if len(b.entries) == 0 {
		return Deletion{}, false
	}
	d := b.entries[len(b.entries)-1]
	b.entries = b.entries[:len(b.entries)-1]
	return d, true
}

func (b *UndoBuffer) Len() int {
	return len(b.entries)
}

// Snapshot returns the buffered deletions, oldest first. Used to carry
// the buffer across process boundaries.
func (b *UndoBuffer) Snapshot() []Deletion {
	out := make([]Deletion, len(b.entries))
	copy(out, b.entries)
	return out
}

// Restore replaces the buffer contents, keeping only the newest entries
// if the snapshot exceeds capacity.
func (b *UndoBuffer) Restore(entries []Deletion) {
	if len(entries) > b.capacity {
		entries = entries[len(entries)-b.capacity:]
	}
	b.entries = make([]Deletion, len(entries))
	copy(b.entries, entries)
}
