package script

import (
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lichen-browser/lichen/content"
)

// fakeHost records every engine call a script makes.
type fakeHost struct {
	rafs       []func()
	attributes map[string]string
	styles     map[string]string
	texts      []string
	widths     map[*content.Node]float64
	nowValue   float64
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		attributes: map[string]string{},
		styles:     map[string]string{},
		widths:     map[*content.Node]float64{},
	}
}

func (h *fakeHost) RequestAnimationFrame(fn func()) { h.rafs = append(h.rafs, fn) }
func (h *fakeHost) SetAttribute(n *content.Node, name, value string) {
	h.attributes[name] = value
	n.SetAttribute(name, value)
}
func (h *fakeHost) SetStyle(n *content.Node, property, value string) {
	h.styles[property] = value
	n.SetStyle(property, value)
}
func (h *fakeHost) SetText(n *content.Node, s string) {
	h.texts = append(h.texts, s)
	n.ReplaceText(s)
}
func (h *fakeHost) NodeWidth(n *content.Node) float64 { return h.widths[n] }
func (h *fakeHost) Now() float64                      { return h.nowValue }

func testDoc() *content.Node {
	banner := content.NewElement("div", nil)
	banner.SetAttribute("id", "banner")
	banner.Append(content.NewText("hello"))
	return content.NewElement("body", nil).Append(banner)
}

func newTestRuntime(t *testing.T) (*Runtime, *fakeHost, *content.Node) {
	t.Helper()
	host := newFakeHost()
	doc := testDoc()
	r, err := New(host, doc, nil)
	require.NoError(t, err)
	return r, host, doc
}

func TestRun_Error(t *testing.T) {
	r, _, _ := newTestRuntime(t)

	assert.NoError(t, r.Run("ok.js", `var x = 1 + 1;`))

	err := r.Run("bad.js", `throw new Error("boom");`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.js")

	// A failed script leaves the VM usable.
	assert.NoError(t, r.Run("after.js", `var y = 2;`))
}

func TestRequestAnimationFrame(t *testing.T) {
	r, host, _ := newTestRuntime(t)

	require.NoError(t, r.Run("raf.js", `
		var ticks = 0;
		requestAnimationFrame(function() { ticks++; });
	`))
	require.Len(t, host.rafs, 1, "registration is deferred, not immediate")

	host.rafs[0]()
	v, err := r.vm.RunString("ticks")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.ToInteger())
}

func TestRequestAnimationFrame_SelfChaining(t *testing.T) {
	r, host, _ := newTestRuntime(t)

	require.NoError(t, r.Run("chain.js", `
		function tick() { requestAnimationFrame(tick); }
		requestAnimationFrame(tick);
	`))
	require.Len(t, host.rafs, 1)

	// Each invocation re-registers for the next frame.
	host.rafs[0]()
	assert.Len(t, host.rafs, 2)
	host.rafs[1]()
	assert.Len(t, host.rafs, 3)
}

func TestRequestAnimationFrame_NonFunction(t *testing.T) {
	r, _, _ := newTestRuntime(t)
	assert.Error(t, r.Run("bad.js", `requestAnimationFrame(42);`))
}

func TestGetById(t *testing.T) {
	r, _, _ := newTestRuntime(t)

	v, err := r.vm.RunString(`getById("banner").tag`)
	require.NoError(t, err)
	assert.Equal(t, "div", v.String())

	v, err = r.vm.RunString(`getById("nope")`)
	require.NoError(t, err)
	assert.True(t, goja.IsNull(v), "missing id yields null")
}

func TestNodeMutation(t *testing.T) {
	r, host, doc := newTestRuntime(t)

	require.NoError(t, r.Run("mutate.js", `
		var el = getById("banner");
		el.setAttribute("class", "big");
		el.setStyle("background-color", "ivory");
		el.setText("replaced");
	`))

	assert.Equal(t, "big", host.attributes["class"])
	assert.Equal(t, "ivory", host.styles["background-color"])
	assert.Equal(t, []string{"replaced"}, host.texts)

	banner := doc.FindByID("banner")
	assert.Equal(t, "replaced", banner.InnerText())
}

func TestGetWidth(t *testing.T) {
	r, host, doc := newTestRuntime(t)
	host.widths[doc.FindByID("banner")] = 123.5

	v, err := r.vm.RunString(`getById("banner").getWidth()`)
	require.NoError(t, err)
	assert.Equal(t, 123.5, v.ToFloat())
}

func TestNow(t *testing.T) {
	r, host, _ := newTestRuntime(t)
	host.nowValue = 42

	v, err := r.vm.RunString(`now()`)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v.ToFloat())
}

func TestConsole(t *testing.T) {
	r, _, _ := newTestRuntime(t)
	assert.NoError(t, r.Run("log.js", `
		console.log("a", 1, true);
		console.warn("w");
		console.error("e");
	`))
}
