package lichen

import (
	"time"

	"go.uber.org/zap"

	"github.com/lichen-browser/lichen/content"
	"github.com/lichen-browser/lichen/internal/layout"
	"github.com/lichen-browser/lichen/internal/paint"
	"github.com/lichen-browser/lichen/internal/script"
)

// Tab is the main-thread half of the engine: it exclusively owns the
// content tree, the layout tree, and the script VM. Every method here
// runs on the main thread, either directly from a queued task or
// re-entrantly from script during one.
type Tab struct {
	browser *Browser
	log     *zap.Logger

	doc  *content.Node
	tree *layout.Tree
	vm   *script.Runtime

	frame FrameState
	focus *content.Node

	// epoch anchors the monotonic clock handed to scripts.
	epoch time.Time
}

var _ script.Host = (*Tab)(nil)

func newTab(b *Browser) *Tab {
	return &Tab{
		browser: b,
		log:     b.log,
		tree:    layout.NewTree(b.fonts, b.width, b.height-b.chromeHeight),
		epoch:   time.Now(),
	}
}

// load replaces the tab's document. The layout tree is discarded; the
// next pipeline run rebuilds it from scratch.
func (t *Tab) load(doc *content.Node) {
	t.doc = doc
	t.focus = nil
	t.frame = FrameState{}
	t.tree.SetContent(doc)

	vm, err := script.New(t, doc, t.log)
	if err != nil {
		t.log.Error("script runtime unavailable", zap.Error(err))
		vm = nil
	}
	t.vm = vm

	t.browser.scheduleAnimationFrame()
}

func (t *Tab) runScript(name, src string) {
	if t.vm == nil {
		t.log.Warn("script dropped, no document loaded", zap.String("script", name))
		return
	}
	if err := t.vm.Run(name, src); err != nil {
		// Script errors are non-fatal; the frame and later tasks go on.
		t.log.Warn("script failed", zap.String("script", name), zap.Error(err))
	}
}

// runAnimationFrame executes one animation frame: the callback batch,
// then the pipeline, then the commit. It runs as a main-thread task
// enqueued by the compositor's cadence timer.
func (t *Tab) runAnimationFrame() {
	for _, cb := range t.frame.take() {
		t.runCallback(cb)
	}
	t.renderPipeline()
}

func (t *Tab) runCallback(cb func()) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("animation frame callback panicked", zap.Any("panic", r))
		}
	}()
	cb()
}

// renderPipeline runs layout (selective size, global position), paints,
// and commits. Sizing of every dirty root completes before positioning
// begins; positioning completes before painting; painting completes
// before the commit lock is touched.
func (t *Tab) renderPipeline() {
	t.tree.Layout()
	dl := paint.Build(t.tree.Root())
	t.browser.commit(dl)
}

// forceLayout synchronously brings layout up to date when script or hit
// testing needs current geometry mid-task. It is the same pipeline code,
// minus paint and commit, run without waiting for the next frame.
func (t *Tab) forceLayout() {
	if t.tree.NeedsLayout() {
		t.tree.Layout()
	}
}

// invalidate registers the reflow root covering a mutated content node
// and requests a frame. The nearest ancestor with a block layout node is
// re-sized, which recreates its whole subtree; if no layout exists yet
// the next frame rebuilds everything anyway.
func (t *Tab) invalidate(n *content.Node) {
	for c := n; c != nil; c = c.Parent {
		if ln := t.tree.FindBlock(c); ln != nil {
			t.tree.MarkDirty(ln)
			t.browser.scheduleAnimationFrame()
			return
		}
	}
	t.tree.MarkRebuild()
	t.browser.scheduleAnimationFrame()
}

// click hit-tests a page click that the compositor routed here, in page
// coordinates. Pending layout is forced first so the test runs against
// current geometry. Clicking an input focuses it and clears its value;
// clicking anything else blurs.
func (t *Tab) click(x, y float64) {
	t.forceLayout()
	node := t.tree.NodeAt(x, y)
	if node == nil {
		t.blur()
		return
	}
	src := node.Source()
	for src != nil && src.IsText() {
		src = src.Parent
	}
	for c := src; c != nil; c = c.Parent {
		if c.Tag == "input" || c.Tag == "button" {
			t.focus = c
			c.SetAttribute("value", "")
			t.invalidate(c)
			return
		}
	}
	t.blur()
}

func (t *Tab) blur() {
	if t.focus == nil {
		return
	}
	old := t.focus
	t.focus = nil
	t.invalidate(old)
}

// keypress appends a character to the focused input's value.
func (t *Tab) keypress(r rune) {
	if t.focus == nil {
		return
	}
	t.focus.SetAttribute("value", t.focus.Attribute("value")+string(r))
	t.invalidate(t.focus)
}

func (t *Tab) backspace() {
	if t.focus == nil {
		return
	}
	t.focus.SetAttribute("value", trimLastRune(t.focus.Attribute("value")))
	t.invalidate(t.focus)
}

// zoomBy multiplies the tab zoom by one increment. Every length in the
// tree depends on zoom, so the document becomes the reflow root and the
// next frame re-sizes everything; content wraps rather than overflowing.
func (t *Tab) zoomBy(factor float64) {
	t.tree.SetZoom(t.tree.Zoom() * factor)
	t.browser.scheduleAnimationFrame()
}

func (t *Tab) zoomReset() {
	t.tree.SetZoom(1.0)
	t.browser.scheduleAnimationFrame()
}

// --- script.Host ---

// RequestAnimationFrame implements script.Host.
func (t *Tab) RequestAnimationFrame(fn func()) {
	t.frame.requestCallback(fn)
	t.browser.scheduleAnimationFrame()
}

// SetAttribute implements script.Host.
func (t *Tab) SetAttribute(n *content.Node, name, value string) {
	n.SetAttribute(name, value)
	t.invalidate(n)
}

// SetStyle implements script.Host.
func (t *Tab) SetStyle(n *content.Node, property, value string) {
	n.SetStyle(property, value)
	t.invalidate(n)
}

// SetText implements script.Host. Replacing children is a structural
// change; the nearest block reflow root rebuilds its subtree, or the
// whole tree is rebuilt when no layout node covers the mutation.
func (t *Tab) SetText(n *content.Node, s string) {
	n.ReplaceText(s)
	t.invalidate(n)
}

// NodeWidth implements script.Host: a synchronous layout readback. Any
// pending reflow is serviced inline before the read, what browsers call
// forced style and layout.
func (t *Tab) NodeWidth(n *content.Node) float64 {
	t.forceLayout()
	for c := n; c != nil; c = c.Parent {
		if ln := t.tree.FindBlock(c); ln != nil {
			return ln.W()
		}
	}
	return 0
}

// Now implements script.Host.
func (t *Tab) Now() float64 {
	return float64(time.Since(t.epoch)) / float64(time.Millisecond)
}
