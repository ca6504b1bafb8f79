package main

import (
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/inkcalc/internal/config"
)

func testRoot() *root {
	return &root{program: "inkcalc", config: config.New()}
}

func TestParseDrawRejectsUnknownShape(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "canvas.png", "triangle", "0", "0", "1", "1"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "unsupported shape"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRejectsWrongCoordinateCount(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "canvas.png", "circle", "10", "10"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "requires 3 coordinates"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRejectsBadColor(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "canvas.png", "-color", "notacolor", "line", "0", "0", "1", "1"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "invalid color"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRequiresFile(t *testing.T) {
	_, err := parseDrawCmd([]string{"line", "0", "0", "1", "1"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "input file is required"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestDrawCreatesCanvasWhenMissing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "canvas.png")
	cmd, err := parseDrawCmd([]string{"-file", out, "-width", "64", "-height", "64", "line", "0", "0", "63", "63"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output not a PNG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 64 {
		t.Fatalf("expected 64px canvas, got %d", got)
	}
	r, g, b, _ := img.At(32, 32).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff {
		t.Fatalf("expected white stroke on the diagonal, got %v", img.At(32, 32))
	}
}

func TestParseSolveRequiresFile(t *testing.T) {
	_, err := parseSolveCmd([]string{}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if want := "usage:"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected rendered help, got %v", err)
	}
}

func TestSubcommandHelpNamesTheSubcommand(t *testing.T) {
	_, err := parseSolveCmd([]string{}, testRoot().subcommand("solve"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if want := "inkcalc solve"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected usage to mention %q, got %v", want, err)
	}
}

func TestSolveRunRequiresService(t *testing.T) {
	cmd, err := parseSolveCmd([]string{"-file", "drawing.png"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "no recognition service configured"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestVarFlagsParse(t *testing.T) {
	v := varFlags{}
	if err := v.Set("x = 4"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v["x"]; got != "4" {
		t.Fatalf("expected trimmed value 4, got %q", got)
	}
	if err := v.Set("novalue"); err == nil {
		t.Fatalf("expected error for missing =")
	}
	if err := v.Set("=5"); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestParseExportRequiresOutput(t *testing.T) {
	_, err := parseExportCmd([]string{"-file", "drawing.png"}, testRoot())
	if err == nil {
		t.Fatalf("expected error")
	}
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestConfigRunUnknownSubcommand(t *testing.T) {
	cmd, err := parseConfigCmd([]string{"wipe"}, testRoot())
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatalf("expected error")
	} else if want := "unknown config command"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseColorNamesAndHex(t *testing.T) {
	c, err := parseColor("Red")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (color.RGBA{0xff, 0x00, 0x00, 0xff}) {
		t.Fatalf("expected red, got %v", c)
	}
	c, err = parseColor("#00ff00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.G != 0xff || c.A != 0xff {
		t.Fatalf("expected opaque green, got %v", c)
	}
}
