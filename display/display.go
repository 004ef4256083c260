// Package display defines the display list: the ordered sequence of
// typed drawing commands the rendering core hands to a rasterizer.
// Commands are inspectable structs rather than an opaque byte format so
// tests and tools can assert on exactly what would be drawn. A display
// list is immutable once built; it crosses from the main thread to the
// compositor only as a deep copy.
package display

import "github.com/lichen-browser/lichen/text"

// CommandType identifies the drawing operation a Command performs.
type CommandType uint8

const (
	// CmdRect fills an axis-aligned rectangle.
	CmdRect CommandType = iota
	// CmdText draws a single text run at a point.
	CmdText
	// CmdOutline strokes a rectangle border.
	CmdOutline
)

var commandTypeNames = [...]string{
	CmdRect:    "Rect",
	CmdText:    "Text",
	CmdOutline: "Outline",
}

// String returns the name of the command type.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one drawing operation. Geometry is in device pixels, already
// positioned; the rasterizer applies only the scroll offset.
type Command struct {
	Type CommandType

	X, Y, W, H float64

	// Text payload, used by CmdText.
	Text   string
	SizePx float64
	Weight text.Weight
	Style  text.Style

	// Color is an opaque color name or value passed through from style.
	Color string

	// Thickness is the stroke width of a CmdOutline.
	Thickness float64
}

// DisplayList is the ordered output of painting one frame, plus the
// document height the compositor needs to clamp scrolling.
type DisplayList struct {
	Commands []Command
	Height   float64

	// Generation increments per build, letting tests verify that a
	// drawn list is never a partial mix of two commits.
	Generation uint64
}

// Clone returns a deep copy. Commit hands the compositor a clone so the
// two threads never share backing storage.
func (d *DisplayList) Clone() *DisplayList {
	if d == nil {
		return nil
	}
	out := &DisplayList{
		Commands:   make([]Command, len(d.Commands)),
		Height:     d.Height,
		Generation: d.Generation,
	}
	copy(out.Commands, d.Commands)
	return out
}
