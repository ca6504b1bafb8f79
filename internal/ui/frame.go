package ui

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkcalc/internal/board"
	"github.com/example/inkcalc/internal/render"
	"github.com/example/inkcalc/internal/theme"
)

// labelSize is the point size annotation labels render at.
const labelSize = 16.0

const statusHint = "p/l/x/o/e/t tools  space:solve  ^Z:undo  ^Y:redo  ^S:save  ^C:copy  ^R:clear  q:quit"

type frameState struct {
	width, height   int
	session         *board.Session
	theme           *theme.Theme
	textInputActive bool
	textInput       string
	textPos         image.Point
	textColor       color.RGBA
	message         string
	messageUntil    time.Time
}

func canvasOrigin() image.Point { return image.Pt(toolbarWidth, 0) }

// labelRect returns the window-space rectangle a label occupies, centered on
// the annotation's display position.
func labelRect(a board.Annotation) image.Rectangle {
	w, h, _, err := board.MeasureText(a.Content, labelSize)
	if err != nil {
		return image.Rectangle{}
	}
	pos := a.Position().Add(canvasOrigin())
	return image.Rect(pos.X-w/2, pos.Y-h/2, pos.X+w/2+w%2, pos.Y+h/2+h%2)
}

func drawLabel(dst *image.RGBA, a board.Annotation, col, shadow color.RGBA) {
	w, h, _, err := board.MeasureText(a.Content, labelSize)
	if err != nil {
		log.Printf("measure label: %v", err)
		return
	}
	lbl := image.NewRGBA(image.Rect(0, 0, w+2, h+2))
	if err := board.DrawText(lbl, 1, 1, a.Content, col, labelSize); err != nil {
		log.Printf("render label: %v", err)
		return
	}
	sh := render.ApplyShadow(lbl, render.LabelShadowOptions(shadow))
	pos := a.Position().Add(canvasOrigin()).Sub(image.Pt(w/2, h/2)).Sub(sh.Offset)
	draw.Draw(dst, sh.Image.Bounds().Sub(sh.Image.Bounds().Min).Add(pos), sh.Image, sh.Image.Bounds().Min, draw.Over)
}

func drawFrame(s screen.Screen, w screen.Window, st frameState) {
	b, err := s.NewBuffer(image.Point{X: st.width, Y: st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	draw.Draw(dst, dst.Bounds(), &image.Uniform{st.theme.Background}, image.Point{}, draw.Src)

	surface := st.session.Surface()
	origin := canvasOrigin()
	canvas := surface.Raster().Bounds().Add(origin)
	draw.Draw(dst, canvas, surface.Raster(), surface.Raster().Bounds().Min, draw.Src)
	draw.Draw(dst, canvas, surface.Preview(), surface.Preview().Bounds().Min, draw.Over)

	overlay := st.session.Overlay()
	for _, a := range overlay.Texts() {
		drawLabel(dst, a, st.theme.AnnotationText, st.theme.AnnotationShadow)
	}
	for _, a := range overlay.Expressions() {
		drawLabel(dst, a, st.theme.AnnotationText, st.theme.AnnotationShadow)
	}

	if st.textInputActive {
		at := st.textPos.Add(origin)
		if err := board.DrawText(dst, at.X, at.Y, st.textInput+"|", st.textColor, labelSize); err != nil {
			log.Printf("render text input: %v", err)
		}
	}

	drawToolbar(dst, st.theme, st.session.Tool(), st.session.Color(), st.session.Width())

	// Status line: transient message, otherwise the shortcut hint.
	statusTop := st.height - statusHeight
	draw.Draw(dst, image.Rect(0, statusTop, st.width, st.height), &image.Uniform{st.theme.ToolbarBackground}, image.Point{}, draw.Src)
	line := statusHint
	src := st.theme.StatusText
	if st.message != "" && time.Now().Before(st.messageUntil) {
		line = st.message
		src = st.theme.Foreground
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(src), Face: basicfont.Face7x13}
	d.Dot = fixed.P(4, statusTop+15)
	d.DrawString(line)

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
