package board

import (
	"image"
	"image/color"
)

// InkBounds scans img for pixels that differ from the background color and
// returns their inclusive bounding box. The background fill is opaque, so a
// color comparison is what separates ink from canvas; an alpha test would see
// every pixel as drawn. ok is false when no ink was found.
func InkBounds(img *image.RGBA, background color.RGBA) (bounds image.Rectangle, ok bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == background {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < minX || maxY < minY {
		return image.Rectangle{}, false
	}
	// Max is inclusive here: it names the last ink pixel, not one past it.
	return image.Rect(minX, minY, maxX, maxY), true
}

// AnchorPoint returns the midpoint of the ink bounding box, or the canvas
// center when the surface holds no ink.
func AnchorPoint(img *image.RGBA, background color.RGBA) image.Point {
	if r, ok := InkBounds(img, background); ok {
		return image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	}
	b := img.Bounds()
	return image.Pt(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2)
}
