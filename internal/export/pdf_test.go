package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/inkcalc/internal/board"
)

func canvasPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode canvas: %v", err)
	}
	return buf.Bytes()
}

func TestPDFWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.pdf")
	annotations := []board.Annotation{
		{Kind: board.ExpressionAnnotation, Content: "2+2 = 4"},
		{Kind: board.TextAnnotation, Content: "homework"},
	}
	if err := PDF(path, canvasPNG(t), annotations); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: %q", data[:8])
	}
}

func TestPDFWithoutAnnotations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.pdf")
	if err := PDF(path, canvasPNG(t), nil); err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("expected non-empty file, err=%v", err)
	}
}
