package board

import (
	"fmt"
	"strings"
)

// Tool selects how pointer gestures mark the canvas.
type Tool int

const (
	ToolPen Tool = iota
	ToolLine
	ToolRect
	ToolCircle
	ToolEraser
	ToolText
)

var toolNames = map[Tool]string{
	ToolPen:    "pen",
	ToolLine:   "line",
	ToolRect:   "rect",
	ToolCircle: "circle",
	ToolEraser: "eraser",
	ToolText:   "text",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// Freehand reports whether the tool commits ink incrementally while the
// pointer moves rather than previewing a shape until release.
func (t Tool) Freehand() bool {
	return t == ToolPen || t == ToolEraser
}

// Shape reports whether the tool previews a shape on the overlay buffer and
// commits it on release.
func (t Tool) Shape() bool {
	return t == ToolLine || t == ToolRect || t == ToolCircle
}

// ParseTool resolves a tool by name, accepting a few common aliases.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pen", "draw", "brush":
		return ToolPen, nil
	case "line":
		return ToolLine, nil
	case "rect", "rectangle":
		return ToolRect, nil
	case "circle":
		return ToolCircle, nil
	case "eraser", "erase":
		return ToolEraser, nil
	case "text":
		return ToolText, nil
	}
	return ToolPen, fmt.Errorf("unknown tool %q", s)
}
