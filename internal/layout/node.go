// Package layout implements the incremental two-phase layout engine: a
// tree of layout nodes whose geometry is computed by a size pass (width
// and height, bottom-up, rebuilding children) followed by a position pass
// (x and y, top-down). The two passes are strictly separated: sizing
// never reads any node's position, which is what makes selective
// re-sizing of dirty subtrees safe while position is recomputed globally
// every pipeline run.
package layout

import (
	"github.com/lichen-browser/lichen/content"
	"github.com/lichen-browser/lichen/text"
)

// Kind tags the variant of a layout node. Sizing and positioning dispatch
// on the kind, with kind-specific fields carried on the one Node struct.
type Kind uint8

const (
	// KindDocument is the tree root; it sets the device-pixel origin.
	KindDocument Kind = iota
	// KindBlock is a vertically stacked box for one content element.
	KindBlock
	// KindInline manages word wrap for a block whose content is inline-level.
	KindInline
	// KindLine is one horizontal line produced by word wrap.
	KindLine
	// KindText is a single word on a line.
	KindText
	// KindInput is a fixed-width form control on a line.
	KindInput
)

var kindNames = [...]string{
	KindDocument: "document",
	KindBlock:    "block",
	KindInline:   "inline",
	KindLine:     "line",
	KindText:     "text",
	KindInput:    "input",
}

// String returns a short name for the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Node is one node of the layout tree. Children are exclusively owned by
// their parent and recreated from the content tree each time the parent
// is sized. Geometry is in device pixels.
type Node struct {
	kind   Kind
	source *content.Node
	parent *Node

	// children is nil until the node has been sized at least once. A
	// non-nil empty slice is a valid clean state and must stay distinct
	// from nil, which means "never built".
	children []*Node

	x, y, w, h float64

	// Inline-flow state accumulated during sizing and consumed during
	// positioning. cx is the horizontal offset of a leaf within its line;
	// absolute coordinates are derived from it only in the position pass.
	cx      float64
	ascent  float64
	descent float64

	// maxAscent is the tallest ascent on a line, set while sizing the line.
	maxAscent float64

	// word is the run of characters carried by a KindText leaf.
	word string

	// Font variant of a leaf, already converted to device pixels.
	sizePx float64
	weight text.Weight
	style  text.Style
}

// geomHook, when non-nil, observes every read of positional geometry made
// through px and py. Tests install it to verify the size pass never
// consults x or y; it is never set in production.
var geomHook func(n *Node, axis string)

// px returns the node's x coordinate. All positional reads inside the
// package go through px/py so the no-early-read property is observable.
func (n *Node) px() float64 {
	if geomHook != nil {
		geomHook(n, "x")
	}
	return n.x
}

func (n *Node) py() float64 {
	if geomHook != nil {
		geomHook(n, "y")
	}
	return n.y
}

// Kind returns the node's variant.
func (n *Node) Kind() Kind { return n.kind }

// Source returns the content node this layout node was built from.
func (n *Node) Source() *content.Node { return n.source }

// Parent returns the parent layout node, nil for the document.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the node's children. A nil result means the node has
// never been sized; an empty slice means sized with no children.
func (n *Node) Children() []*Node { return n.children }

// X returns the device-pixel x coordinate written by the position pass.
func (n *Node) X() float64 { return n.px() }

// Y returns the device-pixel y coordinate written by the position pass.
func (n *Node) Y() float64 { return n.py() }

// W returns the device-pixel width computed by the size pass.
func (n *Node) W() float64 { return n.w }

// H returns the device-pixel height computed by the size pass.
func (n *Node) H() float64 { return n.h }

// Word returns the text carried by a KindText leaf, or the input value
// for KindInput.
func (n *Node) Word() string { return n.word }

// FontSize returns the leaf's device-pixel font size.
func (n *Node) FontSize() float64 { return n.sizePx }

// FontWeight returns the leaf's font weight.
func (n *Node) FontWeight() text.Weight { return n.weight }

// FontStyle returns the leaf's font style.
func (n *Node) FontStyle() text.Style { return n.style }

// Contains reports whether the device-pixel point lies inside the node's
// box. Only valid after the position pass.
func (n *Node) Contains(x, y float64) bool {
	nx, ny := n.px(), n.py()
	return x >= nx && x < nx+n.w && y >= ny && y < ny+n.h
}
