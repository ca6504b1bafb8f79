// Package export writes the drawing and its recognized results to other
// formats.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/inkcalc/internal/board"
)

// PDF writes a one-page PDF containing the drawing followed by a table of
// annotations: recognized expression/result pairs first, then free-text
// notes. pngData must hold the PNG-encoded canvas.
func PDF(path string, pngData []byte, annotations []board.Annotation) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	p.SetFont("Helvetica", "B", 14)
	p.Cell(0, 10, "InkCalc drawing")
	p.Ln(12)

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("canvas", opts, bytes.NewReader(pngData))
	// Fit to the printable width; height scales with the aspect ratio.
	pageW, _ := p.GetPageSize()
	left, _, right, _ := p.GetMargins()
	p.ImageOptions("canvas", left, p.GetY(), pageW-left-right, 0, true, opts, 0, "")
	p.Ln(6)

	if len(annotations) > 0 {
		p.SetFont("Helvetica", "B", 11)
		p.CellFormat(30, 8, "Kind", "1", 0, "L", false, 0, "")
		p.CellFormat(0, 8, "Content", "1", 1, "L", false, 0, "")
		p.SetFont("Helvetica", "", 11)
		for _, a := range annotations {
			kind := "result"
			if a.Kind == board.TextAnnotation {
				kind = "note"
			}
			p.CellFormat(30, 8, kind, "1", 0, "L", false, 0, "")
			p.CellFormat(0, 8, a.Content, "1", 1, "L", false, 0, "")
		}
	}

	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
