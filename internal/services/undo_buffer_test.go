package services

import (
	"fmt"
	"testing"

	"gastos/internal/core"
)

func deletion(i int) Deletion {
	return Deletion{
		Expense: core.Expense{ID: fmt.Sprintf("id-%02d", i), Description: fmt.Sprintf("d-%02d", i)},
		Index:   i,
	}
}

func TestUndoBufferLIFO(t *testing.T) {
	b := NewUndoBuffer(3)
	for i := 0; i < 3; i++ {
		b.Push(deletion(i))
	}
	for want := 2; want >= 0; want-- {
		d, ok := b.Pop()
		if !ok {
			t.Fatalf("pop %d: buffer empty", want)
		}
		if d.Index != want {
			t.Fatalf("popped index %d, want %d", d.Index, want)
		}
	}
	if _, ok := b.Pop(); ok {
		t.Fatal("pop on empty buffer succeeded")
	}
}

func TestUndoBufferEvictsOldest(t *testing.T) {
	b := NewUndoBuffer(2)
	for i := 0; i < 5; i++ {
		b.Push(deletion(i))
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	d, _ := b.Pop()
	if d.Index != 4 {
		t.Fatalf("newest = %d, want 4", d.Index)
	}
	d, _ = b.Pop()
	if d.Index != 3 {
		t.Fatalf("second = %d, want 3", d.Index)
	}
}

func TestUndoBufferSnapshotRestore(t *testing.T) {
	b := NewUndoBuffer(4)
	for i := 0; i < 3; i++ {
		b.Push(deletion(i))
	}

	snap := b.Snapshot()
	if len(snap) != 3 || snap[0].Index != 0 || snap[2].Index != 2 {
		t.Fatalf("snapshot = %+v", snap)
	}

	other := NewUndoBuffer(2)
	other.Restore(snap)
	if other.Len() != 2 {
		t.Fatalf("restored len = %d, want capacity 2", other.Len())
	}
	d, _ := other.Pop()
	if d.Index != 2 {
		t.Fatalf("restored newest = %d, want 2", d.Index)
	}
}
