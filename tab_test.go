package lichen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lichen-browser/lichen/content"
	"github.com/lichen-browser/lichen/display"
	"github.com/lichen-browser/lichen/internal/layout"
)

// The tests in this file drive the main-thread engine directly, without
// the loops running: every Tab method is synchronous, so a single
// goroutine poking it is exactly the main thread.

func bannerPage() *content.Node {
	banner := content.NewElement("div", map[string]string{"width": "240px"})
	banner.SetAttribute("id", "banner")
	banner.Append(content.NewText("hello"))
	return content.NewElement("body", nil).Append(banner)
}

func inputPage() *content.Node {
	input := content.NewElement("input", nil)
	input.SetAttribute("id", "field")
	p := content.NewElement("p", nil).Append(content.NewText("name:"), input)
	return content.NewElement("body", nil).Append(p)
}

func findLeaf(n *layout.Node, kind layout.Kind) *layout.Node {
	if n.Kind() == kind {
		return n
	}
	for _, c := range n.Children() {
		if found := findLeaf(c, kind); found != nil {
			return found
		}
	}
	return nil
}

func textCommands(dl *display.DisplayList) []display.Command {
	var out []display.Command
	for _, c := range dl.Commands {
		if c.Type == display.CmdText {
			out = append(out, c)
		}
	}
	return out
}

func TestTab_ForcedLayoutOnReadback(t *testing.T) {
	b, _ := newTestBrowser(t)
	doc := bannerPage()
	b.tab.load(doc)

	// No frame has run, yet the readback returns current geometry: the
	// read forces the build synchronously.
	w := b.tab.NodeWidth(doc.FindByID("banner"))
	assert.Equal(t, 240.0, w)
	assert.Nil(t, b.Committed(), "forced layout does not paint or commit")
}

func TestTab_MutationVisibleToImmediateReadback(t *testing.T) {
	b, _ := newTestBrowser(t)
	doc := bannerPage()
	b.tab.load(doc)
	b.tab.runAnimationFrame()

	banner := doc.FindByID("banner")
	b.tab.SetStyle(banner, "width", "310px")

	// Same task, no frame in between.
	assert.Equal(t, 310.0, b.tab.NodeWidth(banner))
}

func TestTab_ScriptReadbackMidTask(t *testing.T) {
	b, _ := newTestBrowser(t)
	doc := bannerPage()
	b.tab.load(doc)

	b.tab.runScript("readback.js", `
		var el = getById("banner");
		el.setStyle("width", "250px");
		el.setAttribute("w", String(el.getWidth()));
	`)

	assert.Equal(t, "250", doc.FindByID("banner").Attribute("w"))
}

func TestTab_ReadbackOfTextNodeUsesEnclosingBlock(t *testing.T) {
	b, _ := newTestBrowser(t)
	doc := bannerPage()
	b.tab.load(doc)

	text := doc.FindByID("banner").Children[0]
	require.True(t, text.IsText())
	assert.Equal(t, 240.0, b.tab.NodeWidth(text))
}

func TestTab_ClickFocusesInputAndTypingRenders(t *testing.T) {
	b, _ := newTestBrowser(t)
	doc := inputPage()
	b.tab.load(doc)
	b.tab.runAnimationFrame()

	leaf := findLeaf(b.tab.tree.Root(), layout.KindInput)
	require.NotNil(t, leaf)

	field := doc.FindByID("field")
	field.SetAttribute("value", "stale")

	b.tab.click(leaf.X()+leaf.W()/2, leaf.Y()+leaf.H()/2)
	assert.Same(t, field, b.tab.focus)
	assert.Equal(t, "", field.Attribute("value"), "focusing clears the value")

	b.tab.keypress('h')
	b.tab.keypress('i')
	assert.Equal(t, "hi", field.Attribute("value"))

	b.tab.runAnimationFrame()
	texts := textCommands(b.Committed())
	var drawn []string
	for _, c := range texts {
		drawn = append(drawn, c.Text)
	}
	assert.Contains(t, drawn, "hi")

	b.tab.backspace()
	assert.Equal(t, "h", field.Attribute("value"))
}

func TestTab_ClickElsewhereBlurs(t *testing.T) {
	b, _ := newTestBrowser(t)
	doc := inputPage()
	b.tab.load(doc)
	b.tab.runAnimationFrame()

	b.tab.focus = doc.FindByID("field")

	// A miss far outside the content blurs, as does a hit on plain text.
	b.tab.click(-10, -10)
	assert.Nil(t, b.tab.focus)

	b.tab.keypress('x')
	b.tab.backspace()
	assert.Equal(t, "", doc.FindByID("field").Attribute("value"))
}

func TestTab_ZoomScalesCommittedFrame(t *testing.T) {
	b, _ := newTestBrowser(t)
	doc := content.NewElement("body", nil).Append(
		content.NewElement("p", nil).Append(content.NewText("zoom zoom zoom")))
	b.tab.load(doc)
	b.tab.runAnimationFrame()

	base := textCommands(b.Committed())
	require.NotEmpty(t, base)

	// Three increments, as from the keyboard shortcut.
	b.tab.zoomBy(1.1)
	b.tab.zoomBy(1.1)
	b.tab.zoomBy(1.1)
	b.tab.runAnimationFrame()

	zoomed := textCommands(b.Committed())
	require.Len(t, zoomed, len(base))
	for i := range zoomed {
		assert.InDelta(t, base[i].W*1.331, zoomed[i].W, 1e-9)
		assert.InDelta(t, base[i].SizePx*1.331, zoomed[i].SizePx, 1e-9)
		assert.LessOrEqual(t, zoomed[i].X+zoomed[i].W, b.width,
			"zoomed text must wrap, not overflow")
	}

	b.tab.zoomReset()
	b.tab.runAnimationFrame()
	reset := textCommands(b.Committed())
	require.Len(t, reset, len(base))
	for i := range reset {
		assert.InDelta(t, base[i].W, reset[i].W, 1e-9)
	}
}

func TestTab_RunScriptWithoutDocument(t *testing.T) {
	b, _ := newTestBrowser(t)
	// Must not panic; the script is dropped with a log line.
	b.tab.runScript("orphan.js", `1 + 1`)
}

func TestTab_SelectiveReflowAcrossFrames(t *testing.T) {
	b, _ := newTestBrowser(t)
	p1 := content.NewElement("p", nil).Append(content.NewText("first paragraph"))
	p2 := content.NewElement("p", nil).Append(content.NewText("second paragraph"))
	doc := content.NewElement("body", nil).Append(p1, p2)
	b.tab.load(doc)
	b.tab.runAnimationFrame()
	fullBuild := b.tab.tree.SizeCalls()

	// A style tweak on one paragraph re-sizes only that subtree on the
	// next frame.
	b.tab.SetStyle(p2, "color", "green")
	before := b.tab.tree.SizeCalls()
	b.tab.runAnimationFrame()
	delta := b.tab.tree.SizeCalls() - before

	assert.Less(t, delta, fullBuild)
	assert.Greater(t, delta, uint64(0))
}

func TestTab_SetTextRebuildsSubtree(t *testing.T) {
	b, _ := newTestBrowser(t)
	doc := bannerPage()
	b.tab.load(doc)
	b.tab.runAnimationFrame()
	gen := b.Committed().Generation

	banner := doc.FindByID("banner")
	b.tab.SetText(banner, "replaced words here")
	b.tab.runAnimationFrame()

	dl := b.Committed()
	assert.Greater(t, dl.Generation, gen)
	var drawn []string
	for _, c := range textCommands(dl) {
		drawn = append(drawn, c.Text)
	}
	assert.Equal(t, []string{"replaced", "words", "here"}, drawn)
}
