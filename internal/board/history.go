package board

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// ErrNothingToUndo is returned when only the initial snapshot remains.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned when the redo stack is empty.
var ErrNothingToRedo = errors.New("nothing to redo")

type snapshot struct {
	data []byte
	// texts records how many text annotations existed when the snapshot was
	// taken, so undo can trim the overlay back to match the restored pixels.
	texts int
}

// History keeps PNG-encoded raster snapshots on an undo stack and moves
// entries popped by undo onto a redo stack. Any new snapshot invalidates the
// redo stack; redoing is only possible directly after one or more undos.
type History struct {
	entries []snapshot
	redo    []snapshot
}

// NewHistory returns an empty history. Callers record the initial blank
// canvas as entry zero so that state is never undone past.
func NewHistory() *History {
	return &History{}
}

// Record encodes img and appends it to the undo stack, discarding any redo
// entries.
func (h *History) Record(img *image.RGBA, texts int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	h.entries = append(h.entries, snapshot{data: buf.Bytes(), texts: texts})
	h.redo = h.redo[:0]
	return nil
}

// CanUndo reports whether an undo would change anything. The single initial
// entry can never be undone past.
func (h *History) CanUndo() bool { return len(h.entries) >= 2 }

// CanRedo reports whether a redo is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (h *History) Depth() (undo, redo int) { return len(h.entries), len(h.redo) }

// Undo moves the newest snapshot to the redo stack and returns the decoded
// pixels of the entry beneath it along with its text-annotation count. The
// stacks are left untouched when decoding fails, so the entry is not lost.
func (h *History) Undo() (*image.RGBA, int, error) {
	if !h.CanUndo() {
		return nil, 0, ErrNothingToUndo
	}
	target := h.entries[len(h.entries)-2]
	img, err := decodeSnapshot(target.data)
	if err != nil {
		return nil, 0, err
	}
	h.redo = append(h.redo, h.entries[len(h.entries)-1])
	h.entries = h.entries[:len(h.entries)-1]
	return img, target.texts, nil
}

// Redo moves the newest redo entry back onto the undo stack and returns its
// decoded pixels and text-annotation count.
func (h *History) Redo() (*image.RGBA, int, error) {
	if !h.CanRedo() {
		return nil, 0, ErrNothingToRedo
	}
	target := h.redo[len(h.redo)-1]
	img, err := decodeSnapshot(target.data)
	if err != nil {
		return nil, 0, err
	}
	h.redo = h.redo[:len(h.redo)-1]
	h.entries = append(h.entries, target)
	return img, target.texts, nil
}

// Reset drops all snapshots from both stacks.
func (h *History) Reset() {
	h.entries = nil
	h.redo = nil
}

func decodeSnapshot(data []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
