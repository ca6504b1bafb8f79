package board

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

func rasterCopy(s *Session) []byte {
	out := make([]byte, len(s.Surface().Raster().Pix))
	copy(out, s.Surface().Raster().Pix)
	return out
}

func previewBlank(t *testing.T, s *Session) {
	t.Helper()
	for _, px := range s.Surface().Preview().Pix {
		if px != 0 {
			t.Fatal("expected preview buffer to be fully transparent")
		}
	}
}

func stroke(s *Session, from, to image.Point) {
	s.PointerDown(from)
	s.PointerMove(to)
	s.PointerUp(to)
}

func TestRectGestureCommitsOutline(t *testing.T) {
	s := NewSession(100, 100, WithTool(ToolRect), WithColor(white), WithWidth(1))

	s.PointerDown(image.Pt(0, 0))
	s.PointerMove(image.Pt(25, 40))
	if s.Surface().Raster().RGBAAt(25, 40) != DefaultBackground {
		t.Fatal("shape preview must not touch the raster surface")
	}
	s.PointerUp(image.Pt(50, 80))

	for _, p := range []image.Point{{0, 0}, {50, 0}, {50, 80}, {0, 80}, {25, 0}, {50, 40}} {
		if got := s.Surface().Raster().RGBAAt(p.X, p.Y); got != white {
			t.Fatalf("expected outline pixel at %v, got %+v", p, got)
		}
	}
	if got := s.Surface().Raster().RGBAAt(25, 40); got != DefaultBackground {
		t.Fatalf("rectangle interior should stay background, got %+v", got)
	}
	previewBlank(t, s)
}

func TestCircleGesturePreviewsThenCommits(t *testing.T) {
	s := NewSession(100, 100, WithTool(ToolCircle), WithColor(white), WithWidth(1))

	s.PointerDown(image.Pt(50, 50))
	s.PointerMove(image.Pt(60, 50))
	if got := s.Surface().Preview().RGBAAt(60, 50); got != white {
		t.Fatalf("expected preview pixel on the circle, got %+v", got)
	}
	s.PointerUp(image.Pt(60, 50))

	// Radius 10: the four axis-aligned extremes lie on the outline.
	for _, p := range []image.Point{{60, 50}, {40, 50}, {50, 60}, {50, 40}} {
		if got := s.Surface().Raster().RGBAAt(p.X, p.Y); got != white {
			t.Fatalf("expected circle pixel at %v, got %+v", p, got)
		}
	}
	previewBlank(t, s)
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := NewSession(64, 64, WithColor(white), WithWidth(1))
	stroke(s, image.Pt(5, 5), image.Pt(20, 20))

	after := rasterCopy(s)
	s.Undo()
	if bytes.Equal(after, rasterCopy(s)) {
		t.Fatal("undo did not change the raster")
	}
	s.Redo()
	if !bytes.Equal(after, rasterCopy(s)) {
		t.Fatal("redo did not restore pixel-identical content")
	}
}

func TestCommitAfterUndoInvalidatesRedo(t *testing.T) {
	s := NewSession(64, 64, WithColor(white), WithWidth(1))
	stroke(s, image.Pt(5, 5), image.Pt(20, 5))
	s.Undo()
	stroke(s, image.Pt(5, 20), image.Pt(20, 20))

	if s.CanRedo() {
		t.Fatal("redo stack should be cleared by a new commit")
	}
	before := rasterCopy(s)
	s.Redo()
	if !bytes.Equal(before, rasterCopy(s)) {
		t.Fatal("redo after a fresh commit must be a no-op")
	}
}

func TestUndoFloorAtInitialEntry(t *testing.T) {
	s := NewSession(32, 32)
	if s.CanUndo() {
		t.Fatal("fresh session should have nothing to undo")
	}
	before := rasterCopy(s)
	s.Undo()
	if !bytes.Equal(before, rasterCopy(s)) {
		t.Fatal("undo on the initial entry must be a no-op")
	}
}

func TestEraserPaintsBackground(t *testing.T) {
	s := NewSession(64, 64, WithColor(white), WithWidth(1))
	stroke(s, image.Pt(10, 10), image.Pt(30, 10))
	if s.Surface().Raster().RGBAAt(20, 10) != white {
		t.Fatal("expected ink before erasing")
	}

	s.SetTool(ToolEraser)
	s.SetWidth(5)
	stroke(s, image.Pt(10, 10), image.Pt(30, 10))
	if got := s.Surface().Raster().RGBAAt(20, 10); got != DefaultBackground {
		t.Fatalf("eraser should restore the background color, got %+v", got)
	}
}

func TestGestureLatchesColorAndWidth(t *testing.T) {
	s := NewSession(64, 64, WithColor(white), WithWidth(1))
	s.PointerDown(image.Pt(5, 5))
	s.SetColor(red)
	s.SetWidth(9)
	s.PointerMove(image.Pt(20, 5))
	s.PointerUp(image.Pt(20, 5))

	if got := s.Surface().Raster().RGBAAt(10, 5); got != white {
		t.Fatalf("mid-gesture color change leaked into the stroke: %+v", got)
	}
	if got := s.Surface().Raster().RGBAAt(10, 8); got != DefaultBackground {
		t.Fatalf("mid-gesture width change leaked into the stroke: %+v", got)
	}
}

func TestSwitchingToolMidGestureKeepsStartingTool(t *testing.T) {
	s := NewSession(64, 64, WithTool(ToolLine), WithColor(white), WithWidth(1))
	s.PointerDown(image.Pt(0, 0))
	s.SetTool(ToolPen)
	s.PointerMove(image.Pt(10, 0))
	if s.Surface().Raster().RGBAAt(5, 0) != DefaultBackground {
		t.Fatal("line gesture must keep previewing after a tool switch")
	}
	s.PointerUp(image.Pt(10, 0))
	if s.Surface().Raster().RGBAAt(5, 0) != white {
		t.Fatal("line gesture should commit with the tool it started with")
	}
}

func TestTextToolRequestAndUndo(t *testing.T) {
	s := NewSession(64, 64, WithTool(ToolText))
	s.PointerDown(image.Pt(12, 34))
	req := s.PointerUp(image.Pt(12, 34))
	if req == nil || req.At != image.Pt(12, 34) {
		t.Fatalf("expected text request at (12,34), got %+v", req)
	}

	s.ProvideText("hello")
	texts := s.Overlay().Texts()
	if len(texts) != 1 || texts[0].Content != "hello" || texts[0].Anchor != image.Pt(12, 34) {
		t.Fatalf("unexpected text annotations %+v", texts)
	}

	s.Undo()
	if n := s.Overlay().TextCount(); n != 0 {
		t.Fatalf("undo should remove the paired text annotation, have %d", n)
	}
	s.Redo()
	texts = s.Overlay().Texts()
	if len(texts) != 1 || texts[0].Content != "hello" {
		t.Fatalf("redo should restore the text annotation, got %+v", texts)
	}
}

func TestUndoOfStrokeKeepsUnrelatedText(t *testing.T) {
	s := NewSession(64, 64, WithColor(white), WithWidth(1))
	s.SetTool(ToolText)
	s.PointerDown(image.Pt(5, 5))
	s.PointerUp(image.Pt(5, 5))
	s.ProvideText("label")

	s.SetTool(ToolPen)
	stroke(s, image.Pt(10, 10), image.Pt(20, 10))

	s.Undo()
	if n := s.Overlay().TextCount(); n != 1 {
		t.Fatalf("undoing a pen stroke must not delete text labels, have %d", n)
	}
}

func TestEmptyTextCancelsWithoutAnnotation(t *testing.T) {
	s := NewSession(64, 64, WithTool(ToolText))
	s.PointerDown(image.Pt(3, 3))
	s.PointerUp(image.Pt(3, 3))
	s.ProvideText("")
	if n := s.Overlay().TextCount(); n != 0 {
		t.Fatalf("empty input should not place a label, have %d", n)
	}
	if s.PendingText() != nil {
		t.Fatal("pending request should be consumed")
	}
}

func TestPointerLeaveDiscardsShape(t *testing.T) {
	s := NewSession(64, 64, WithTool(ToolRect), WithColor(white), WithWidth(1))
	undoBefore, _ := sessionDepth(s)
	s.PointerDown(image.Pt(0, 0))
	s.PointerMove(image.Pt(30, 30))
	s.PointerLeave()

	if s.Surface().Raster().RGBAAt(0, 0) != DefaultBackground {
		t.Fatal("aborted shape gesture must not commit ink")
	}
	previewBlank(t, s)
	if undoAfter, _ := sessionDepth(s); undoAfter != undoBefore {
		t.Fatal("aborted shape gesture should not add history entries")
	}
	if s.Gesturing() {
		t.Fatal("gesture state should be cleared on leave")
	}
}

func TestPointerUpWithoutGestureIsNoop(t *testing.T) {
	s := NewSession(32, 32)
	before := rasterCopy(s)
	if req := s.PointerUp(image.Pt(1, 1)); req != nil {
		t.Fatal("pointer up without a gesture must not request text")
	}
	if !bytes.Equal(before, rasterCopy(s)) {
		t.Fatal("pointer up without a gesture must not draw")
	}
}

func TestResetClearsEverything(t *testing.T) {
	s := NewSession(64, 64, WithColor(white), WithWidth(1))
	stroke(s, image.Pt(5, 5), image.Pt(30, 30))
	s.SetTool(ToolText)
	s.PointerDown(image.Pt(8, 8))
	s.PointerUp(image.Pt(8, 8))
	s.ProvideText("x = 4")
	s.MergeBinding("x", "4")
	s.Undo()

	s.Reset()

	blank := NewSession(64, 64)
	if !bytes.Equal(rasterCopy(blank), rasterCopy(s)) {
		t.Fatal("reset should restore the blank canvas")
	}
	if undo, redo := sessionDepth(s); undo != 1 || redo != 0 {
		t.Fatalf("reset should leave exactly the initial history entry, got undo=%d redo=%d", undo, redo)
	}
	if s.Overlay().TextCount() != 0 || len(s.Overlay().Expressions()) != 0 {
		t.Fatal("reset should drop all annotations")
	}
	if len(s.Bindings()) != 0 {
		t.Fatal("reset should drop variable bindings")
	}
}

func TestPlaceResultAnchorsAtDisplayTimeInk(t *testing.T) {
	s := NewSession(100, 100, WithColor(white), WithWidth(1))
	for y := 10; y <= 30; y++ {
		for x := 10; x <= 20; x++ {
			s.Surface().Raster().SetRGBA(x, y, white)
		}
	}
	a := s.PlaceResult("2+2", "4")
	if a.Content != "2+2 = 4" {
		t.Fatalf("unexpected annotation content %q", a.Content)
	}
	if a.Anchor != image.Pt(15, 20) {
		t.Fatalf("expected anchor (15,20), got %v", a.Anchor)
	}
	if n := len(s.Overlay().Expressions()); n != 1 {
		t.Fatalf("expected exactly one expression annotation, have %d", n)
	}
}

func sessionDepth(s *Session) (int, int) {
	return len(s.history.entries), len(s.history.redo)
}
