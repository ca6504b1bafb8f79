package board

import (
	"errors"
	"image"
	"testing"
)

func TestHistoryUndoNeedsTwoEntries(t *testing.T) {
	h := NewHistory()
	if _, _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := h.Record(img, 0); err != nil {
		t.Fatalf("record: %v", err)
	}
	if h.CanUndo() {
		t.Fatal("single entry must not be undoable")
	}
	if _, _, err := h.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestHistoryRedoEmpty(t *testing.T) {
	h := NewHistory()
	if _, _, err := h.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Fatalf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestHistoryUndoRedoMovesEntries(t *testing.T) {
	h := NewHistory()
	a := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b := image.NewRGBA(image.Rect(0, 0, 4, 4))
	b.SetRGBA(1, 1, white)

	if err := h.Record(a, 0); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.Record(b, 2); err != nil {
		t.Fatalf("record: %v", err)
	}

	img, texts, err := h.Undo()
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if texts != 0 {
		t.Fatalf("expected text count 0 from first entry, got %d", texts)
	}
	if img.RGBAAt(1, 1) == white {
		t.Fatal("undo should return the earlier snapshot")
	}
	if undo, redo := h.Depth(); undo != 1 || redo != 1 {
		t.Fatalf("unexpected depths undo=%d redo=%d", undo, redo)
	}

	img, texts, err = h.Redo()
	if err != nil {
		t.Fatalf("redo: %v", err)
	}
	if texts != 2 {
		t.Fatalf("expected text count 2 from redone entry, got %d", texts)
	}
	if img.RGBAAt(1, 1) != white {
		t.Fatal("redo should return the later snapshot")
	}
}

func TestHistoryUndoKeepsEntriesOnDecodeFailure(t *testing.T) {
	h := NewHistory()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := h.Record(img, 0); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := h.Record(img, 0); err != nil {
		t.Fatalf("record: %v", err)
	}

	// Undo decodes the entry beneath the top; corrupt it.
	h.entries[0].data = []byte("not a png")

	if _, _, err := h.Undo(); err == nil {
		t.Fatal("expected decode error")
	}
	if undo, redo := h.Depth(); undo != 2 || redo != 0 {
		t.Fatalf("failed undo must not consume entries, got undo=%d redo=%d", undo, redo)
	}
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	h := NewHistory()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < 3; i++ {
		if err := h.Record(img, 0); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if _, _, err := h.Undo(); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !h.CanRedo() {
		t.Fatal("expected a redo entry after undo")
	}
	if err := h.Record(img, 0); err != nil {
		t.Fatalf("record: %v", err)
	}
	if h.CanRedo() {
		t.Fatal("recording must clear the redo stack")
	}
}
