package board

import (
	"image"
	"image/color"
	"image/draw"
)

// DefaultBackground is the canvas fill used after initialization and reset.
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// Surface owns the two pixel buffers of a drawing session: the raster buffer
// holding committed ink and an equally sized preview buffer used only while a
// shape gesture is in progress. The preview buffer stays fully transparent
// outside an active gesture and is never recorded into history.
type Surface struct {
	raster     *image.RGBA
	preview    *image.RGBA
	background color.RGBA
}

// NewSurface allocates both buffers and fills the raster with the background.
func NewSurface(width, height int, background color.RGBA) *Surface {
	s := &Surface{
		raster:     image.NewRGBA(image.Rect(0, 0, width, height)),
		preview:    image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	s.Reset()
	return s
}

// Raster returns the committed-ink buffer.
func (s *Surface) Raster() *image.RGBA { return s.raster }

// Preview returns the transient shape-preview buffer.
func (s *Surface) Preview() *image.RGBA { return s.preview }

// Background returns the canvas fill color.
func (s *Surface) Background() color.RGBA { return s.background }

// Bounds returns the pixel extent shared by both buffers.
func (s *Surface) Bounds() image.Rectangle { return s.raster.Bounds() }

// Reset refills the raster with the background color and clears the preview.
func (s *Surface) Reset() {
	draw.Draw(s.raster, s.raster.Bounds(), &image.Uniform{s.background}, image.Point{}, draw.Src)
	s.ClearPreview()
}

// ClearPreview makes the preview buffer fully transparent.
func (s *Surface) ClearPreview() {
	draw.Draw(s.preview, s.preview.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Restore replaces the raster contents with the given snapshot image.
func (s *Surface) Restore(img image.Image) {
	draw.Draw(s.raster, s.raster.Bounds(), img, img.Bounds().Min, draw.Src)
}
