// Package render holds raster effects shared by the UI layer.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow effect applied to an image.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
	// Color tints the shadow; its alpha scales with Opacity. The zero value
	// means opaque black.
	Color color.RGBA
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.RGBA
	// Offset reports how far the original content was translated when
	// rebasing onto the expanded canvas, so callers can keep the on-screen
	// location of the content stable.
	Offset image.Point
}

// LabelShadowOptions returns the drop shadow configuration used for
// annotation labels floating over the canvas, tinted with the theme's
// shadow color. A tight radius keeps small text legible against ink of any
// color.
func LabelShadowOptions(c color.RGBA) ShadowOptions {
	return ShadowOptions{
		Radius:  2,
		Offset:  image.Pt(1, 1),
		Opacity: 1,
		Color:   c,
	}
}

// shadowGeometry describes where the shadow and the source content land on
// the expanded output canvas.
type shadowGeometry struct {
	dstRect      image.Rectangle // zero-based output bounds
	contentShift image.Point     // translation applied to the source content
	shadowOrigin image.Point     // top-left of the blurred mask in dst space
	padded       image.Rectangle // source bounds grown by the blur radius
}

func computeShadowGeometry(src image.Rectangle, radius int, offset image.Point) shadowGeometry {
	padded := src
	if radius > 0 {
		padded = padded.Inset(-radius)
	}
	shadow := padded.Add(offset)
	composite := src.Union(shadow)
	return shadowGeometry{
		dstRect:      composite.Sub(composite.Min),
		contentShift: src.Min.Sub(composite.Min),
		shadowOrigin: shadow.Min.Sub(composite.Min),
		padded:       padded,
	}
}

// ApplyShadow composites img with a blurred drop shadow. The result always
// has a non-negative origin so it can be used directly with RGBA routines
// that expect zero-based bounds.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	geom := computeShadowGeometry(src, radius, opts.Offset)
	if geom.dstRect.Empty() {
		return ShadowResult{Image: img}
	}

	mask := blurGray(alphaMask(img, geom.padded), radius)

	tint := opts.Color
	if tint == (color.RGBA{}) {
		tint = color.RGBA{A: 255}
	}
	dst := image.NewRGBA(geom.dstRect)
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	if alpha := uint8(opacity*float64(tint.A) + 0.5); alpha > 0 {
		shade := color.NRGBA{R: tint.R, G: tint.G, B: tint.B, A: alpha}
		draw.DrawMask(dst, mask.Bounds().Add(geom.shadowOrigin),
			image.NewUniform(shade), image.Point{},
			mask, mask.Bounds().Min, draw.Over)
	}
	draw.Draw(dst, src.Sub(src.Min).Add(geom.contentShift), img, src.Min, draw.Over)

	return ShadowResult{Image: dst, Offset: geom.contentShift}
}

// alphaMask extracts the source alpha channel into a zero-based Gray image
// sized to the padded shadow bounds.
func alphaMask(img *image.RGBA, padded image.Rectangle) *image.Gray {
	mask := image.NewGray(padded.Sub(padded.Min))
	src := img.Bounds()
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	return mask
}

// blurGray applies a single-pass box blur in each axis. Box blur is a crude
// approximation of gaussian blur but plenty for shadow masks this small.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	dst := image.NewGray(src.Bounds())
	prefix := make([]int, max(w, h)+1)

	// Horizontal pass: src rows into tmp.
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(row[x])
		}
		out := tmp.Pix[y*tmp.Stride:]
		for x := 0; x < w; x++ {
			out[x] = boxAverage(prefix, w, x, radius)
		}
	}

	// Vertical pass: tmp columns into dst.
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			dst.Pix[y*dst.Stride+x] = boxAverage(prefix, h, y, radius)
		}
	}

	return dst
}

// boxAverage reads the mean of the window [i-radius, i+radius] clamped to
// [0, n) out of a prefix-sum array.
func boxAverage(prefix []int, n, i, radius int) uint8 {
	lo := max(i-radius, 0)
	hi := min(i+radius, n-1)
	return uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
}
