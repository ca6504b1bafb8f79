package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/example/inkcalc/internal/board"
	"github.com/example/inkcalc/internal/recognize"
	"github.com/example/inkcalc/internal/ui"
)

// sketchCmd opens the interactive drawing window.
type sketchCmd struct {
	width      int
	height     int
	background string
	colorSpec  string
	stroke     int
	toolName   string
	delay      time.Duration
	saveDir    string
	*root
	fs *flag.FlagSet
}

func (s *sketchCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSketchCmd(args []string, r *root) (*sketchCmd, error) {
	fs := flag.NewFlagSet("sketch", flag.ExitOnError)
	cmd := &sketchCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	cfg := r.config
	fs.IntVar(&cmd.width, "width", cfg.CanvasWidth, "canvas width in pixels")
	fs.IntVar(&cmd.height, "height", cfg.CanvasHeight, "canvas height in pixels")
	fs.StringVar(&cmd.background, "background", "", "canvas background color name or hex value")
	fs.StringVar(&cmd.colorSpec, "color", "", "initial stroke color name or hex value")
	fs.IntVar(&cmd.stroke, "stroke-width", cfg.Draw.Width, "initial stroke width in pixels")
	fs.StringVar(&cmd.toolName, "tool", cfg.Draw.Tool, "initial tool (pen, line, rect, circle, eraser, text)")
	fs.DurationVar(&cmd.delay, "delay", cfg.ResultDelay, "delay before each recognition result surfaces")
	fs.StringVar(&cmd.saveDir, "save-dir", cfg.SaveDir, "directory Ctrl+S writes PNGs into")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.width < 64 || cmd.height < 64 {
		return nil, fmt.Errorf("canvas must be at least 64x64, got %dx%d", cmd.width, cmd.height)
	}
	return cmd, nil
}

func (s *sketchCmd) Run() error {
	tool, err := board.ParseTool(s.toolName)
	if err != nil {
		return err
	}

	bg := s.config.Background
	if s.background != "" {
		if bg, err = parseColor(s.background); err != nil {
			return err
		}
	}
	col := s.config.Draw.Color
	if s.colorSpec != "" {
		if col, err = parseColor(s.colorSpec); err != nil {
			return err
		}
	}

	session := board.NewSession(s.width, s.height,
		board.WithBackground(bg),
		board.WithTool(tool),
		board.WithColor(col),
		board.WithWidth(s.stroke),
	)

	opts := []ui.Option{
		ui.WithTheme(s.activeTheme),
		ui.WithNotifier(s.notifier),
		ui.WithResultDelay(s.delay),
		ui.WithSaveDir(s.saveDir),
	}
	if s.serviceURL != "" {
		opts = append(opts, ui.WithClient(recognize.NewClient(s.serviceURL)))
	}

	app := ui.New(session, opts...)
	app.Run()
	return nil
}
