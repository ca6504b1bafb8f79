package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkcalc/internal/board"
	"github.com/example/inkcalc/internal/theme"
)

var toolbarWidth = 64

const statusHeight = 22

type toolEntry struct {
	label string
	tool  board.Tool
}

var toolEntries = []toolEntry{
	{"P:Pen", board.ToolPen},
	{"L:Line", board.ToolLine},
	{"X:Rect", board.ToolRect},
	{"O:Circle", board.ToolCircle},
	{"E:Erase", board.ToolEraser},
	{"T:Text", board.ToolText},
}

var palette = []color.RGBA{
	{255, 255, 255, 255},
	{255, 64, 64, 255},
	{64, 220, 64, 255},
	{80, 140, 255, 255},
	{255, 220, 64, 255},
	{255, 140, 40, 255},
	{200, 90, 255, 255},
	{64, 220, 220, 255},
}

var widths = []int{1, 2, 3, 5, 8}

var (
	hoverTool    = -1
	hoverPalette = -1
	hoverWidth   = -1
)

const (
	toolButtonHeight = 24
	swatchSize       = 16
	swatchGap        = 2
	widthRowHeight   = 16
)

// fitToolbar widens the toolbar so the title and every button label fit.
func fitToolbar() {
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString("InkCalc").Ceil() + 8
	for _, te := range toolEntries {
		if w := d.MeasureString(te.label).Ceil() + 8; w > max {
			max = w
		}
	}
	if max > toolbarWidth {
		toolbarWidth = max
	}
}

func widthIndexOf(w int) int {
	for i, v := range widths {
		if v == w {
			return i
		}
	}
	return -1
}

// toolbarRegion identifies what part of the toolbar a point landed on.
type toolbarRegion int

const (
	regionNone toolbarRegion = iota
	regionTool
	regionPalette
	regionWidth
)

// hitToolbar resolves a window point inside the toolbar strip to a region and
// an index within it.
func hitToolbar(p image.Point) (toolbarRegion, int) {
	y := p.Y
	if y < 0 {
		return regionNone, 0
	}
	if idx := y / toolButtonHeight; idx < len(toolEntries) {
		return regionTool, idx
	}
	y -= len(toolEntries) * toolButtonHeight
	y -= 4
	cols := toolbarWidth / (swatchSize + swatchGap)
	if cols < 1 {
		cols = 1
	}
	rows := (len(palette) + cols - 1) / cols
	if y >= 0 && y < rows*(swatchSize+swatchGap) {
		cx := (p.X - 4) / (swatchSize + swatchGap)
		cy := y / (swatchSize + swatchGap)
		idx := cy*cols + cx
		if cx >= 0 && cx < cols && idx >= 0 && idx < len(palette) {
			return regionPalette, idx
		}
		return regionNone, 0
	}
	y -= rows * (swatchSize + swatchGap)
	y -= 4
	if y >= 0 {
		if idx := y / widthRowHeight; idx < len(widths) {
			return regionWidth, idx
		}
	}
	return regionNone, 0
}

func drawToolbar(dst *image.RGBA, th *theme.Theme, tool board.Tool, col color.RGBA, width int) {
	height := dst.Bounds().Dy()
	draw.Draw(dst, image.Rect(0, 0, toolbarWidth, height), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)

	y := 0
	for i, te := range toolEntries {
		r := image.Rect(0, y, toolbarWidth, y+toolButtonHeight)
		bg := th.ButtonBackground
		switch {
		case te.tool == tool:
			bg = th.ButtonActive
		case i == hoverTool:
			bg = th.ButtonBackgroundHover
		}
		draw.Draw(dst, r, &image.Uniform{bg}, image.Point{}, draw.Src)
		strokeRect(dst, r, th.ButtonBorder)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13}
		d.Dot = fixed.P(4, y+16)
		d.DrawString(te.label)
		y += toolButtonHeight
	}

	// color palette below tools
	y += 4
	x := 4
	cols := toolbarWidth / (swatchSize + swatchGap)
	if cols < 1 {
		cols = 1
	}
	for i, p := range palette {
		rect := image.Rect(x, y, x+swatchSize, y+swatchSize)
		draw.Draw(dst, rect, &image.Uniform{p}, image.Point{}, draw.Src)
		if i == hoverPalette {
			draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if p == col {
			strokeRect(dst, rect, th.SwatchActive)
		} else {
			strokeRect(dst, rect, th.SwatchBorder)
		}
		x += swatchSize + swatchGap
		if (i+1)%cols == 0 {
			x = 4
			y += swatchSize + swatchGap
		}
	}
	if len(palette)%cols != 0 {
		y += swatchSize + swatchGap
	}

	// stroke width samples
	y += 4
	for _, wv := range widths {
		rect := image.Rect(0, y, toolbarWidth, y+widthRowHeight)
		bg := th.ButtonBackground
		if wv == width {
			bg = th.ButtonBackgroundPress
		} else if i := widthIndexOf(wv); i == hoverWidth {
			bg = th.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13}
		d.Dot = fixed.P(4, y+12)
		d.DrawString(fmt.Sprintf("%d", wv))
		lineY := y + widthRowHeight/2
		board.DrawLine(dst, 26, lineY, toolbarWidth-4, lineY, col, wv)
		y += widthRowHeight
	}
}

func strokeRect(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	board.DrawLine(dst, r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y, col, 1)
	board.DrawLine(dst, r.Min.X, r.Max.Y-1, r.Max.X-1, r.Max.Y-1, col, 1)
	board.DrawLine(dst, r.Min.X, r.Min.Y, r.Min.X, r.Max.Y-1, col, 1)
	board.DrawLine(dst, r.Max.X-1, r.Min.Y, r.Max.X-1, r.Max.Y-1, col, 1)
}
