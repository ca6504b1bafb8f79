package board

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log"
)

// gesture captures the in-progress pointer interaction. Tool, color and
// width are latched when the pointer goes down and hold for the whole
// gesture even if the UI controls change mid-drag.
type gesture struct {
	active bool
	start  image.Point
	last   image.Point
	tool   Tool
	color  color.RGBA
	width  int
}

// TextRequest asks the caller to collect literal text for the text tool.
// The session resumes the commit path when ProvideText is called.
type TextRequest struct {
	At image.Point
}

// Session owns all mutable drawing state: the surface pair, the active tool
// and its parameters, the gesture in flight, snapshot history, the
// annotation overlay and the variable bindings accumulated across
// recognition rounds. All methods are meant to be called from a single
// event loop; none of them block.
type Session struct {
	surface *Surface
	history *History
	overlay *Overlay

	tool  Tool
	color color.RGBA
	width int

	gesture gesture
	pending *TextRequest

	bindings map[string]string

	// textStash parallels the history redo stack: entry i holds the text
	// annotations trimmed by the undo that produced redo entry i.
	textStash [][]Annotation
}

// Option configures a Session during creation.
type Option func(*Session)

// WithBackground sets the canvas fill color (opaque black by default).
func WithBackground(c color.RGBA) Option {
	return func(s *Session) { s.surface.background = c }
}

// WithTool selects the initially active tool.
func WithTool(t Tool) Option { return func(s *Session) { s.tool = t } }

// WithColor sets the initial stroke color.
func WithColor(c color.RGBA) Option { return func(s *Session) { s.color = c } }

// WithWidth sets the initial brush width in pixels.
func WithWidth(w int) Option {
	return func(s *Session) {
		if w >= 1 {
			s.width = w
		}
	}
}

// NewSession allocates the surfaces and seeds history with the blank canvas
// as entry zero.
func NewSession(width, height int, opts ...Option) *Session {
	s := &Session{
		surface:  NewSurface(width, height, DefaultBackground),
		history:  NewHistory(),
		overlay:  NewOverlay(),
		tool:     ToolPen,
		color:    color.RGBA{255, 255, 255, 255},
		width:    3,
		bindings: make(map[string]string),
	}
	for _, o := range opts {
		o(s)
	}
	s.surface.Reset()
	s.snapshot()
	return s
}

// Surface returns the session's surface pair.
func (s *Session) Surface() *Surface { return s.surface }

// Overlay returns the annotation overlay.
func (s *Session) Overlay() *Overlay { return s.overlay }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// SetTool switches the active tool. A gesture already in flight keeps the
// tool it started with.
func (s *Session) SetTool(t Tool) { s.tool = t }

// Color returns the current stroke color.
func (s *Session) Color() color.RGBA { return s.color }

// SetColor changes the stroke color for subsequent gestures.
func (s *Session) SetColor(c color.RGBA) { s.color = c }

// Width returns the current brush width.
func (s *Session) Width() int { return s.width }

// SetWidth changes the brush width for subsequent gestures.
func (s *Session) SetWidth(w int) {
	if w >= 1 {
		s.width = w
	}
}

// Gesturing reports whether a pointer gesture is in progress.
func (s *Session) Gesturing() bool { return s.gesture.active }

// CanUndo reports whether undo would change anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether redo is available.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// snapshot records the raster into history. Encoding a valid in-memory RGBA
// cannot realistically fail, so failures are logged rather than propagated
// into the pointer callbacks.
func (s *Session) snapshot() {
	if err := s.history.Record(s.surface.Raster(), s.overlay.TextCount()); err != nil {
		log.Printf("history snapshot: %v", err)
		return
	}
	s.textStash = s.textStash[:0]
}

// strokeColor resolves the color a gesture draws with; the eraser always
// paints the background.
func (s *Session) strokeColor(g gesture) color.RGBA {
	if g.tool == ToolEraser {
		return s.surface.Background()
	}
	return g.color
}

// PointerDown starts a gesture at p. For freehand tools it also records the
// pre-stroke checkpoint so even a zero-length stroke leaves an undoable
// entry.
func (s *Session) PointerDown(p image.Point) {
	if s.surface == nil || s.gesture.active {
		return
	}
	s.gesture = gesture{
		active: true,
		start:  p,
		last:   p,
		tool:   s.tool,
		color:  s.color,
		width:  s.width,
	}
	if s.gesture.tool.Freehand() {
		s.snapshot()
	}
}

// PointerMove extends the gesture to p: freehand tools stroke the raster
// incrementally, shape tools redraw the preview buffer from scratch.
func (s *Session) PointerMove(p image.Point) {
	if s.surface == nil || !s.gesture.active {
		return
	}
	g := s.gesture
	switch {
	case g.tool.Freehand():
		DrawLine(s.surface.Raster(), g.last.X, g.last.Y, p.X, p.Y, s.strokeColor(g), g.width)
	case g.tool.Shape():
		s.surface.ClearPreview()
		s.drawShape(s.surface.Preview(), g, p)
	}
	s.gesture.last = p
}

// PointerUp ends the gesture at p. Shape tools commit their final geometry
// to the raster; the text tool returns a TextRequest and defers its snapshot
// until ProvideText resumes the commit path. The preview is cleared
// unconditionally.
func (s *Session) PointerUp(p image.Point) *TextRequest {
	if s.surface == nil || !s.gesture.active {
		return nil
	}
	g := s.gesture
	s.gesture = gesture{}
	s.surface.ClearPreview()

	if g.tool == ToolText {
		s.pending = &TextRequest{At: p}
		return s.pending
	}
	if g.tool.Shape() {
		s.drawShape(s.surface.Raster(), g, p)
	}
	s.snapshot()
	return nil
}

// PointerLeave aborts the gesture without committing a shape. Freehand ink
// already on the raster gets its closing checkpoint; shape previews are
// discarded.
func (s *Session) PointerLeave() {
	if s.surface == nil || !s.gesture.active {
		return
	}
	g := s.gesture
	s.gesture = gesture{}
	s.surface.ClearPreview()
	if g.tool.Freehand() {
		s.snapshot()
	}
}

// ProvideText completes a pending text-tool gesture. An empty string cancels
// the label but still records the checkpoint, matching the other gesture
// endings.
func (s *Session) ProvideText(text string) {
	if s.surface == nil || s.pending == nil {
		return
	}
	at := s.pending.At
	s.pending = nil
	if text != "" {
		s.overlay.AddText(text, at)
	}
	s.snapshot()
}

// PendingText returns the outstanding text-input request, if any.
func (s *Session) PendingText() *TextRequest { return s.pending }

func (s *Session) drawShape(dst *image.RGBA, g gesture, p image.Point) {
	col := s.strokeColor(g)
	switch g.tool {
	case ToolLine:
		DrawLine(dst, g.start.X, g.start.Y, p.X, p.Y, col, g.width)
	case ToolRect:
		DrawRect(dst, g.start.X, g.start.Y, p.X, p.Y, col, g.width)
	case ToolCircle:
		DrawCircle(dst, g.start.X, g.start.Y, Radius(g.start, p), col, g.width)
	}
}

// Undo restores the previous snapshot and trims the text annotations back to
// the count that snapshot recorded. The trimmed labels ride along with the
// redo entry so Redo can bring them back.
func (s *Session) Undo() {
	if s.surface == nil {
		return
	}
	img, texts, err := s.history.Undo()
	if err != nil {
		if err != ErrNothingToUndo {
			log.Printf("undo: %v", err)
		}
		return
	}
	s.surface.Restore(img)
	s.textStash = append(s.textStash, s.overlay.TruncateTexts(texts))
}

// Redo re-applies the most recently undone snapshot and its text labels.
func (s *Session) Redo() {
	if s.surface == nil {
		return
	}
	img, _, err := s.history.Redo()
	if err != nil {
		if err != ErrNothingToRedo {
			log.Printf("redo: %v", err)
		}
		return
	}
	s.surface.Restore(img)
	if n := len(s.textStash); n > 0 {
		s.overlay.AppendTexts(s.textStash[n-1])
		s.textStash = s.textStash[:n-1]
	}
}

// Reset returns the session to its initial state: blank canvas, single
// history entry, no annotations, no variable bindings.
func (s *Session) Reset() {
	if s.surface == nil {
		return
	}
	s.gesture = gesture{}
	s.pending = nil
	s.surface.Reset()
	s.overlay.Reset()
	s.history.Reset()
	s.bindings = make(map[string]string)
	s.textStash = nil
	s.snapshot()
}

// Anchor computes the placement point for an incoming annotation from the
// current raster contents.
func (s *Session) Anchor() image.Point {
	return AnchorPoint(s.surface.Raster(), s.surface.Background())
}

// PlaceResult appends an expression annotation at the ink anchor computed
// now, at display time, not at submission time.
func (s *Session) PlaceResult(expr, result string) Annotation {
	return s.overlay.AddExpression(expr+" = "+result, s.Anchor())
}

// Bindings returns a copy of the accumulated variable bindings.
func (s *Session) Bindings() map[string]string {
	out := make(map[string]string, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}

// MergeBinding stores a variable assignment for inclusion in future
// submissions.
func (s *Session) MergeBinding(name, value string) {
	s.bindings[name] = value
}

// EncodePNG serializes the committed raster for submission or saving.
func (s *Session) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.surface.Raster()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
