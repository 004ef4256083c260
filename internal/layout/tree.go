package layout

import (
	"github.com/lichen-browser/lichen/content"
	"github.com/lichen-browser/lichen/text"
)

// Tree owns a layout tree and its incremental state: the set of reflow
// roots awaiting a size pass, the rebuild flag, and the zoom factor. It
// is exclusively owned by the main thread; the compositor never sees it.
type Tree struct {
	fonts     text.Metrics
	viewportW float64
	viewportH float64
	zoom      float64

	doc  *content.Node
	root *Node

	// reflow preserves insertion order and duplicates; re-sizing a node
	// twice only recomputes the same geometry.
	reflow  []*Node
	rebuild bool

	sizeCalls uint64
}

// NewTree creates an empty tree for the given viewport, in device pixels.
// No layout exists until content is set and Layout runs.
func NewTree(fonts text.Metrics, viewportW, viewportH float64) *Tree {
	return &Tree{
		fonts:     fonts,
		viewportW: viewportW,
		viewportH: viewportH,
		zoom:      1.0,
	}
}

// Root returns the document layout node, nil before the first build.
func (t *Tree) Root() *Node { return t.root }

// Zoom returns the current zoom factor.
func (t *Tree) Zoom() float64 { return t.zoom }

// SetZoom changes the zoom factor and queues a full re-size from the
// document, since every length in the tree depends on it. Non-positive
// factors are ignored.
func (t *Tree) SetZoom(z float64) {
	if z <= 0 || z == t.zoom {
		return
	}
	t.zoom = z
	t.markAll()
}

// SetViewport changes the frame dimensions and queues a full re-size.
func (t *Tree) SetViewport(w, h float64) {
	t.viewportW, t.viewportH = w, h
	t.markAll()
}

// SetContent replaces the content tree. The old layout tree is discarded;
// the next Layout call builds from scratch with every node implicitly a
// reflow root.
func (t *Tree) SetContent(doc *content.Node) {
	t.doc = doc
	t.root = nil
	t.reflow = nil
	t.rebuild = false
}

// MarkDirty queues a layout node for a size pass on the next Layout run.
// Duplicates are kept; sizing is idempotent so they are harmless.
func (t *Tree) MarkDirty(n *Node) {
	if n == nil {
		return
	}
	t.reflow = append(t.reflow, n)
}

// MarkRebuild requests that the next Layout run discard the layout tree
// and rebuild it from the content root. Used when the content tree
// changed structurally and no layout node can be re-sized in place.
func (t *Tree) MarkRebuild() {
	t.rebuild = true
}

func (t *Tree) markAll() {
	if t.root != nil {
		t.MarkDirty(t.root)
	}
}

// NeedsLayout reports whether a Layout run would do size work. Callers
// use it to decide whether a forced synchronous recompute is required
// before reading geometry.
func (t *Tree) NeedsLayout() bool {
	return t.doc != nil && (t.root == nil || t.rebuild || len(t.reflow) > 0)
}

// Layout runs the two-phase pipeline step: size every queued reflow root
// in insertion order (or rebuild everything on first build or after a
// structural change), clear the set, then position globally from the
// document. All sizing completes before any positioning begins.
func (t *Tree) Layout() {
	if t.doc == nil {
		return
	}
	if t.root == nil || t.rebuild {
		t.root = &Node{kind: KindDocument, source: t.doc}
		t.rebuild = false
		t.reflow = t.reflow[:0]
		t.root.size(t)
	} else {
		roots := t.reflow
		t.reflow = nil
		for _, n := range roots {
			n.size(t)
		}
	}
	t.root.position()
}

// SizeCalls returns the total number of size invocations performed by
// this tree. Diagnostics only; it is how selective recomputation is
// observed.
func (t *Tree) SizeCalls() uint64 { return t.sizeCalls }

// DocumentHeight returns the laid-out content height in device pixels.
func (t *Tree) DocumentHeight() float64 {
	if t.root == nil {
		return 0
	}
	return t.root.h
}

// FindBlock returns the block layout node built from the given content
// node, or the document node when the content root itself is asked for.
// Lookup is a linear walk of the layout tree; see DESIGN.md for why no
// back-reference is kept.
func (t *Tree) FindBlock(c *content.Node) *Node {
	if t.root == nil || c == nil {
		return nil
	}
	return findBlock(t.root, c)
}

func findBlock(n *Node, c *content.Node) *Node {
	if n.kind == KindBlock && n.source == c {
		return n
	}
	for _, child := range n.children {
		if found := findBlock(child, c); found != nil {
			return found
		}
	}
	return nil
}

// NodeAt returns the deepest positioned node containing the device-pixel
// point, preferring later siblings (painted on top), or nil when the
// point misses the content entirely. Valid only after Layout.
func (t *Tree) NodeAt(x, y float64) *Node {
	if t.root == nil {
		return nil
	}
	return nodeAt(t.root, x, y)
}

func nodeAt(n *Node, x, y float64) *Node {
	if !n.Contains(x, y) {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := nodeAt(n.children[i], x, y); hit != nil {
			return hit
		}
	}
	return n
}
