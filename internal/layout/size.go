package layout

import (
	"strings"

	"github.com/lichen-browser/lichen/content"
)

// size computes the node's width and height, recreating its children from
// the content tree. It reads only the subtree's own state, ancestor
// widths, and content styles; it must never read x or y of any node and
// never call position. Running size twice on an unchanged subtree yields
// identical geometry.
func (n *Node) size(t *Tree) {
	t.sizeCalls++
	switch n.kind {
	case KindDocument:
		n.sizeDocument(t)
	case KindBlock:
		n.sizeBlock(t)
	case KindInline:
		n.sizeInline(t)
	case KindLine:
		n.sizeLine()
	case KindText, KindInput:
		// Leaves are fully sized by the inline flow that created them.
	}
}

func (n *Node) sizeDocument(t *Tree) {
	n.w = t.viewportW
	child := &Node{kind: KindBlock, source: n.source, parent: n}
	n.children = []*Node{child}
	child.size(t)
	n.h = child.h
}

func (n *Node) sizeBlock(t *Tree) {
	if px, ok := parsePx(n.source.Style["width"]); ok {
		n.w = DevicePx(px, t.zoom)
	} else if n.parent != nil {
		// Default width fills the parent.
		n.w = n.parent.w
	} else {
		n.w = t.viewportW
	}

	if blockMode(n.source) {
		n.children = make([]*Node, 0, len(n.source.Children))
		for _, c := range n.source.Children {
			if c.IsText() && strings.TrimSpace(c.Text) == "" {
				// Whitespace between block siblings produces no box.
				continue
			}
			child := &Node{kind: KindBlock, source: c, parent: n}
			n.children = append(n.children, child)
			child.size(t)
		}
	} else {
		in := &Node{kind: KindInline, source: n.source, parent: n}
		n.children = []*Node{in}
		in.size(t)
	}

	n.h = 0
	for _, c := range n.children {
		n.h += c.h
	}
	if px, ok := parsePx(n.source.Style["height"]); ok {
		n.h = DevicePx(px, t.zoom)
	}
}

// sizeLine derives the line box from its already-sized leaves. The line
// takes the parent width; its height leaves leading around the tallest
// leaf so consecutive lines do not touch.
func (n *Node) sizeLine() {
	n.w = n.parent.w
	var maxAscent, maxDescent float64
	for _, c := range n.children {
		if c.ascent > maxAscent {
			maxAscent = c.ascent
		}
		if c.descent > maxDescent {
			maxDescent = c.descent
		}
	}
	n.maxAscent = maxAscent
	n.h = lineLeading * (maxAscent + maxDescent)
}

// flow carries word-wrap state while an inline node lays out its content
// subtree. Horizontal offsets accumulate in cx during sizing; they become
// absolute coordinates only in the position pass.
type flow struct {
	t    *Tree
	node *Node
	line *Node
	cx   float64
}

func (n *Node) sizeInline(t *Tree) {
	n.w = n.parent.w
	n.children = make([]*Node, 0, 1)

	f := &flow{t: t, node: n}
	f.newLine()
	f.walk(n.source)
	f.finish()

	n.h = 0
	for _, line := range n.children {
		line.size(t)
		n.h += line.h
	}
}

func (f *flow) walk(c *content.Node) {
	switch {
	case c.IsText():
		f.text(c)
	case c.Tag == "input" || c.Tag == "button":
		f.input(c)
	default:
		for _, child := range c.Children {
			f.walk(child)
		}
	}
}

func (f *flow) text(c *content.Node) {
	size := DevicePx(fontSize(c), f.t.zoom)
	weight, style := fontWeight(c), fontStyle(c)
	space := f.t.fonts.Measure(" ", size, weight, style)
	ascent, descent := f.t.fonts.Extent(size, weight, style)

	for _, word := range strings.Fields(c.Text) {
		width := f.t.fonts.Measure(word, size, weight, style)
		f.place(&Node{
			kind:    KindText,
			source:  c,
			word:    word,
			w:       width,
			h:       ascent + descent,
			ascent:  ascent,
			descent: descent,
			sizePx:  size,
			weight:  weight,
			style:   style,
		})
		f.cx += space
	}
}

func (f *flow) input(c *content.Node) {
	size := DevicePx(fontSize(c), f.t.zoom)
	weight, style := fontWeight(c), fontStyle(c)
	ascent, descent := f.t.fonts.Extent(size, weight, style)
	space := f.t.fonts.Measure(" ", size, weight, style)

	f.place(&Node{
		kind:    KindInput,
		source:  c,
		word:    c.Attribute("value"),
		w:       DevicePx(inputWidth, f.t.zoom),
		h:       ascent + descent,
		ascent:  ascent,
		descent: descent,
		sizePx:  size,
		weight:  weight,
		style:   style,
	})
	f.cx += space
}

// place puts a sized leaf on the current line, breaking to a new line
// first when it would overrun the inline width. A leaf wider than the
// whole line still gets a line of its own rather than being dropped.
func (f *flow) place(leaf *Node) {
	if f.cx > 0 && f.cx+leaf.w > f.node.w {
		f.newLine()
	}
	leaf.cx = f.cx
	leaf.parent = f.line
	f.line.children = append(f.line.children, leaf)
	f.cx += leaf.w
}

func (f *flow) newLine() {
	if f.line != nil && len(f.line.children) > 0 {
		f.node.children = append(f.node.children, f.line)
	}
	f.line = &Node{kind: KindLine, source: f.node.source, parent: f.node, children: []*Node{}}
	f.cx = 0
}

// finish commits the trailing line if it holds anything.
func (f *flow) finish() {
	if f.line != nil && len(f.line.children) > 0 {
		f.node.children = append(f.node.children, f.line)
	}
	f.line = nil
}
