package board

import (
	"image"
	"image/color"
	"math"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

// DrawLine strokes a line between the two points using Bresenham stepping.
func DrawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect strokes the axis-aligned rectangle whose opposite corners are
// (x0,y0) and (x1,y1). Both corners lie on the outline.
func DrawRect(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	DrawLine(img, x0, y0, x1, y0, col, thick)
	DrawLine(img, x1, y0, x1, y1, col, thick)
	DrawLine(img, x1, y1, x0, y1, col, thick)
	DrawLine(img, x0, y1, x0, y0, col, thick)
}

func drawCircleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	x := r
	y := 0
	err := 1 - r
	for x >= y {
		pts := [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			px := cx + p[0]
			py := cy + p[1]
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// DrawCircle strokes a circle of the given radius centred at (cx, cy). The
// stroke width is distributed across concentric midpoint circles.
func DrawCircle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	if thick <= 1 {
		drawCircleThin(img, cx, cy, r, col)
		return
	}
	start := -thick / 2
	for i := 0; i < thick; i++ {
		rr := r + start + i
		if rr >= 0 {
			drawCircleThin(img, cx, cy, rr, col)
		}
	}
}

// Radius returns the Euclidean distance between the two points rounded to the
// nearest pixel, the radius rule for circle gestures.
func Radius(start, end image.Point) int {
	dx := float64(end.X - start.X)
	dy := float64(end.Y - start.Y)
	return int(math.Round(math.Hypot(dx, dy)))
}
