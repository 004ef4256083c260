// Package paint walks a positioned layout tree in paint order and
// produces the display list for one frame. Painting never mutates the
// tree and runs strictly after the position pass completes.
package paint

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/lichen-browser/lichen/display"
	"github.com/lichen-browser/lichen/internal/layout"
)

// generation is process-wide so every built list is distinguishable, even
// across tabs.
var generation atomic.Uint64

// Build produces the display list for a positioned layout tree. A nil
// root yields an empty list.
func Build(root *layout.Node) *display.DisplayList {
	dl := &display.DisplayList{Generation: generation.Add(1)}
	if root == nil {
		return dl
	}
	dl.Height = root.H()
	paintNode(root, dl)
	return dl
}

func paintNode(n *layout.Node, dl *display.DisplayList) {
	switch n.Kind() {
	case layout.KindBlock:
		if color, ok := n.Source().Style["background-color"]; ok && color != "" {
			dl.Commands = append(dl.Commands, display.Command{
				Type:  display.CmdRect,
				X:     n.X(),
				Y:     n.Y(),
				W:     n.W(),
				H:     n.H(),
				Color: color,
			})
		}

	case layout.KindText:
		dl.Commands = append(dl.Commands, textCommand(n, n.Word()))

	case layout.KindInput:
		dl.Commands = append(dl.Commands, display.Command{
			Type:  display.CmdRect,
			X:     n.X(),
			Y:     n.Y(),
			W:     n.W(),
			H:     n.H(),
			Color: "lightblue",
		})
		if n.Word() != "" {
			dl.Commands = append(dl.Commands, textCommand(n, n.Word()))
		}
		if thickness, color, ok := parseOutline(n.Source().Style["outline"]); ok {
			dl.Commands = append(dl.Commands, display.Command{
				Type:      display.CmdOutline,
				X:         n.X(),
				Y:         n.Y(),
				W:         n.W(),
				H:         n.H(),
				Color:     color,
				Thickness: thickness,
			})
		}
	}

	for _, c := range n.Children() {
		paintNode(c, dl)
	}
}

func textCommand(n *layout.Node, s string) display.Command {
	return display.Command{
		Type:   display.CmdText,
		X:      n.X(),
		Y:      n.Y(),
		W:      n.W(),
		H:      n.H(),
		Text:   s,
		SizePx: n.FontSize(),
		Weight: n.FontWeight(),
		Style:  n.FontStyle(),
		Color:  textColor(n),
	}
}

func textColor(n *layout.Node) string {
	for c := n.Source(); c != nil; c = c.Parent {
		if color, ok := c.Style["color"]; ok && color != "" {
			return color
		}
	}
	return "black"
}

// parseOutline parses "Npx solid COLOR". Anything else reports false and
// the outline is simply not drawn; malformed style never fails a frame.
func parseOutline(v string) (thickness float64, color string, ok bool) {
	fields := strings.Fields(v)
	if len(fields) != 3 || fields[1] != "solid" {
		return 0, "", false
	}
	if !strings.HasSuffix(fields[0], "px") {
		return 0, "", false
	}
	px, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "px"), 64)
	if err != nil || px <= 0 {
		return 0, "", false
	}
	return px, fields[2], true
}
