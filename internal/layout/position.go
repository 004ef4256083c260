package layout

// position writes x and y into each child from the parent's own position
// and the offsets accumulated during sizing, recursing into a child
// before positioning the next one. Only the parent writes a node's x and
// y, and only during this call. position never recomputes any width or
// height; it is cheap enough to run globally every pipeline run, which is
// what keeps stale coordinates from leaking between layout generations.
func (n *Node) position() {
	switch n.kind {
	case KindDocument:
		// The document anchors the tree at the device-pixel origin.
		n.x, n.y = 0, 0
		for _, c := range n.children {
			c.x, c.y = n.px(), n.py()
			c.position()
		}

	case KindBlock, KindInline:
		// Children stack vertically. The cursor advances by sizes
		// computed in the size pass, so a resized subtree shifts all
		// later siblings on the very next position run.
		cursor := 0.0
		for _, c := range n.children {
			c.x = n.px()
			c.y = n.py() + cursor
			c.position()
			cursor += c.h
		}

	case KindLine:
		// Leaves share a baseline; their cx offsets become absolute here.
		baseline := n.py() + lineLeading*n.maxAscent
		for _, c := range n.children {
			c.x = n.px() + c.cx
			c.y = baseline - c.ascent
			c.position()
		}

	case KindText, KindInput:
		// Leaves have nothing below them to position.
	}
}
