package board

import (
	"image"

	"github.com/google/uuid"
)

// AnnotationKind distinguishes service results from user-entered labels.
type AnnotationKind int

const (
	// ExpressionAnnotation is a recognized expression/value pair returned by
	// the recognition service.
	ExpressionAnnotation AnnotationKind = iota
	// TextAnnotation is free text placed with the text tool.
	TextAnnotation
)

// Annotation is a label floating above the canvas. Anchor is the point of
// record computed when the annotation was placed; Offset accumulates drags
// and is view-only, so moving a label never rewrites its anchor.
type Annotation struct {
	ID      string
	Kind    AnnotationKind
	Content string
	Anchor  image.Point
	Offset  image.Point
}

// Position returns the on-screen location: anchor plus drag offset.
func (a Annotation) Position() image.Point { return a.Anchor.Add(a.Offset) }

// Overlay holds the two ordered annotation collections. Both are append-only
// except for the text-list trim performed by undo.
type Overlay struct {
	expressions []Annotation
	texts       []Annotation
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay { return &Overlay{} }

// AddExpression appends a recognized expression label anchored at p.
func (o *Overlay) AddExpression(content string, p image.Point) Annotation {
	a := Annotation{ID: uuid.NewString(), Kind: ExpressionAnnotation, Content: content, Anchor: p}
	o.expressions = append(o.expressions, a)
	return a
}

// AddText appends a free-text label anchored at p.
func (o *Overlay) AddText(content string, p image.Point) Annotation {
	a := Annotation{ID: uuid.NewString(), Kind: TextAnnotation, Content: content, Anchor: p}
	o.texts = append(o.texts, a)
	return a
}

// Expressions returns a copy of the expression annotations in placement order.
func (o *Overlay) Expressions() []Annotation {
	out := make([]Annotation, len(o.expressions))
	copy(out, o.expressions)
	return out
}

// Texts returns a copy of the text annotations in placement order.
func (o *Overlay) Texts() []Annotation {
	out := make([]Annotation, len(o.texts))
	copy(out, o.texts)
	return out
}

// TextCount returns the number of text annotations currently placed.
func (o *Overlay) TextCount() int { return len(o.texts) }

// MoveBy shifts the view offset of the annotation with the given ID and
// reports whether it was found.
func (o *Overlay) MoveBy(id string, delta image.Point) bool {
	for i := range o.expressions {
		if o.expressions[i].ID == id {
			o.expressions[i].Offset = o.expressions[i].Offset.Add(delta)
			return true
		}
	}
	for i := range o.texts {
		if o.texts[i].ID == id {
			o.texts[i].Offset = o.texts[i].Offset.Add(delta)
			return true
		}
	}
	return false
}

// TruncateTexts trims the text list down to n entries and returns the removed
// tail, newest last, so an undo can hand them to its redo entry.
func (o *Overlay) TruncateTexts(n int) []Annotation {
	if n < 0 {
		n = 0
	}
	if n >= len(o.texts) {
		return nil
	}
	removed := make([]Annotation, len(o.texts)-n)
	copy(removed, o.texts[n:])
	o.texts = o.texts[:n]
	return removed
}

// AppendTexts restores annotations previously removed by TruncateTexts.
func (o *Overlay) AppendTexts(restored []Annotation) {
	o.texts = append(o.texts, restored...)
}

// Reset drops every annotation.
func (o *Overlay) Reset() {
	o.expressions = nil
	o.texts = nil
}
