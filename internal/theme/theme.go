package theme

import (
	"image/color"
)

// Theme defines the color palette for the application UI.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground color.RGBA

	// Tool / action buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonActive          color.RGBA // Selected tool highlight
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Color palette swatches
	SwatchBorder color.RGBA
	SwatchActive color.RGBA

	// Recognized-result and text annotation labels
	AnnotationText   color.RGBA
	AnnotationShadow color.RGBA

	// Status line at the bottom of the window
	StatusText color.RGBA
}

// Default returns the hardcoded dark theme (fallback). The canvas itself is
// black, so the chrome defaults to dark grays around it.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{32, 32, 32, 255},
		Foreground:            color.RGBA{230, 230, 230, 255},
		ToolbarBackground:     color.RGBA{48, 48, 48, 255},
		ButtonBackground:      color.RGBA{64, 64, 64, 255},
		ButtonBackgroundHover: color.RGBA{84, 84, 84, 255},
		ButtonBackgroundPress: color.RGBA{110, 110, 110, 255},
		ButtonActive:          color.RGBA{70, 100, 160, 255},
		ButtonText:            color.RGBA{230, 230, 230, 255},
		ButtonBorder:          color.RGBA{90, 90, 90, 255},
		SwatchBorder:          color.RGBA{90, 90, 90, 255},
		SwatchActive:          color.RGBA{255, 255, 255, 255},
		AnnotationText:        color.RGBA{255, 255, 255, 255},
		AnnotationShadow:      color.RGBA{0, 0, 0, 160},
		StatusText:            color.RGBA{180, 180, 180, 255},
	}
}
