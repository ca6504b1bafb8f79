package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/example/inkcalc/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Result bool // A recognition result surfaced on the canvas
	Save   bool
	Copy   bool
}

// Draw holds the initial drawing parameters for a new session.
type Draw struct {
	Color color.RGBA
	Width int
	Tool  string
}

// Config holds the application configuration.
type Config struct {
	ServiceURL   string
	ResultDelay  time.Duration
	CanvasWidth  int
	CanvasHeight int
	Background   color.RGBA
	SaveDir      string
	Theme        string
	Notify       Notify
	Draw         Draw
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		ResultDelay:  time.Second,
		CanvasWidth:  960,
		CanvasHeight: 640,
		Background:   color.RGBA{0, 0, 0, 255},
		Theme:        "", // Default to empty to allow fallback to Env/Default
		Draw: Draw{
			Color: color.RGBA{255, 255, 255, 255},
			Width: 3,
			Tool:  "pen",
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.ServiceURL != "" {
		fmt.Fprintf(&sb, "service_url = %s\n", c.ServiceURL)
	}
	fmt.Fprintf(&sb, "result_delay = %s\n", c.ResultDelay)
	fmt.Fprintf(&sb, "canvas_width = %d\n", c.CanvasWidth)
	fmt.Fprintf(&sb, "canvas_height = %d\n", c.CanvasHeight)
	fmt.Fprintf(&sb, "background = %s\n", theme.FormatColor(c.Background))
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "result = %v\n", c.Notify.Result)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Draw section
	sb.WriteString("[draw]\n")
	fmt.Fprintf(&sb, "color = %s\n", theme.FormatColor(c.Draw.Color))
	fmt.Fprintf(&sb, "width = %d\n", c.Draw.Width)
	fmt.Fprintf(&sb, "tool = %s\n", c.Draw.Tool)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", theme.FormatColor(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", theme.FormatColor(t.Foreground))
		fmt.Fprintf(&sb, "ToolbarBackground: %s\n", theme.FormatColor(t.ToolbarBackground))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", theme.FormatColor(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", theme.FormatColor(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", theme.FormatColor(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonActive: %s\n", theme.FormatColor(t.ButtonActive))
		fmt.Fprintf(&sb, "ButtonText: %s\n", theme.FormatColor(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", theme.FormatColor(t.ButtonBorder))
		fmt.Fprintf(&sb, "SwatchBorder: %s\n", theme.FormatColor(t.SwatchBorder))
		fmt.Fprintf(&sb, "SwatchActive: %s\n", theme.FormatColor(t.SwatchActive))
		fmt.Fprintf(&sb, "AnnotationText: %s\n", theme.FormatColor(t.AnnotationText))
		fmt.Fprintf(&sb, "AnnotationShadow: %s\n", theme.FormatColor(t.AnnotationShadow))
		fmt.Fprintf(&sb, "StatusText: %s\n", theme.FormatColor(t.StatusText))
		sb.WriteString("\n")
	}

	return sb.String()
}
