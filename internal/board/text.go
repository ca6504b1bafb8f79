package board

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var labelSizes = []float64{12, 16, 20, 24, 32}

var (
	labelFont  *opentype.Font
	labelFaces []font.Face
	extraFaces sync.Map // map[float64]font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse label font: %v", err)
	}
	labelFont = f
	for _, sz := range labelSizes {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: sz, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			log.Fatalf("label font face: %v", err)
		}
		labelFaces = append(labelFaces, face)
	}
}

// LabelSizes returns the available point sizes for rendered labels.
func LabelSizes() []float64 {
	out := make([]float64, len(labelSizes))
	copy(out, labelSizes)
	return out
}

// DefaultLabelSize returns the smallest configured label size.
func DefaultLabelSize() float64 { return labelSizes[0] }

func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultLabelSize()
	}
	for i, s := range labelSizes {
		if math.Abs(s-size) < 0.01 {
			return labelFaces[i], nil
		}
	}
	if labelFont == nil {
		return nil, fmt.Errorf("label font not initialised")
	}
	if face, ok := extraFaces.Load(size); ok {
		return face.(font.Face), nil
	}
	face, err := opentype.NewFace(labelFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	extraFaces.Store(size, face)
	return face, nil
}

// MeasureText returns the bounding box of text at the given size and the
// offset from the top of that box to the baseline.
func MeasureText(text string, size float64) (width, height, baseline int, err error) {
	face, err := faceForSize(size)
	if err != nil {
		return 0, 0, 0, err
	}
	drawer := &font.Drawer{Face: face}
	width = drawer.MeasureString(text).Ceil()
	metrics := face.Metrics()
	baseline = metrics.Ascent.Ceil()
	height = baseline + metrics.Descent.Ceil()
	return
}

// DrawText renders text with its top-left corner at (x, y).
func DrawText(img *image.RGBA, x, y int, text string, col color.Color, size float64) error {
	face, err := faceForSize(size)
	if err != nil {
		return err
	}
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(text)
	return nil
}
