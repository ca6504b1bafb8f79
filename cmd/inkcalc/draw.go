package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/inkcalc/internal/board"
	"github.com/example/inkcalc/internal/theme"
)

// drawCmd applies a single markup operation to a PNG canvas, creating the
// canvas when the input file does not exist.
type drawCmd struct {
	file       string
	output     string
	width      int
	height     int
	background string
	colorSpec  string
	color      color.RGBA
	stroke     int
	textSize   float64
	shape      string
	coords     []int
	text       string
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") {
		return theme.ParseColor(spec)
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

func expectInts(args []string, n int, shape string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d coordinates, got %d", shape, n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid coordinate %q: %w", a, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	cfg := r.config
	fs.StringVar(&d.file, "file", "", "input canvas PNG (created when missing)")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.IntVar(&d.width, "width", cfg.CanvasWidth, "canvas width when creating a new canvas")
	fs.IntVar(&d.height, "height", cfg.CanvasHeight, "canvas height when creating a new canvas")
	fs.StringVar(&d.background, "background", "", "background color when creating a new canvas")
	fs.StringVar(&d.colorSpec, "color", "white", "stroke color name or hex value")
	fs.IntVar(&d.stroke, "stroke-width", cfg.Draw.Width, "stroke width in pixels")
	fs.Float64Var(&d.textSize, "text-size", board.DefaultLabelSize(), "text size in points")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if d.file == "" {
		return nil, fmt.Errorf("input file is required")
	}
	if d.output == "" {
		d.output = d.file
	}
	positionals := fs.Args()
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(positionals[0])
	remaining := positionals[1:]
	var err error
	switch d.shape {
	case "line", "rect":
		d.coords, err = expectInts(remaining, 4, d.shape)
	case "circle":
		d.coords, err = expectInts(remaining, 3, d.shape)
	case "text":
		if len(remaining) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		d.coords, err = expectInts(remaining[:2], 2, d.shape)
		if err != nil {
			return nil, err
		}
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
	default:
		return nil, fmt.Errorf("unsupported shape %q", d.shape)
	}
	if err != nil {
		return nil, err
	}
	if d.color, err = parseColor(d.colorSpec); err != nil {
		return nil, err
	}
	if d.stroke < 1 {
		d.stroke = 1
	}
	if d.textSize <= 0 {
		d.textSize = board.DefaultLabelSize()
	}
	return d, nil
}

func (d *drawCmd) loadCanvas() (*image.RGBA, error) {
	f, err := os.Open(d.file)
	if os.IsNotExist(err) {
		bg := d.config.Background
		if d.background != "" {
			if bg, err = parseColor(d.background); err != nil {
				return nil, err
			}
		}
		rgba := image.NewRGBA(image.Rect(0, 0, d.width, d.height))
		draw.Draw(rgba, rgba.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
		return rgba, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", d.file, err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

func (d *drawCmd) Run() error {
	rgba, err := d.loadCanvas()
	if err != nil {
		return err
	}
	switch d.shape {
	case "line":
		board.DrawLine(rgba, d.coords[0], d.coords[1], d.coords[2], d.coords[3], d.color, d.stroke)
	case "rect":
		board.DrawRect(rgba, d.coords[0], d.coords[1], d.coords[2], d.coords[3], d.color, d.stroke)
	case "circle":
		board.DrawCircle(rgba, d.coords[0], d.coords[1], d.coords[2], d.color, d.stroke)
	case "text":
		if err := board.DrawText(rgba, d.coords[0], d.coords[1], d.text, d.color, d.textSize); err != nil {
			return err
		}
	}
	out, err := os.Create(d.output)
	if err != nil {
		return err
	}
	if err := png.Encode(out, rgba); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", d.output, err)
	}
	return out.Close()
}
