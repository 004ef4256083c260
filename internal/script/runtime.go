// Package script is the JavaScript boundary of the rendering core. It
// wraps a goja VM and exposes the narrow surface a browser main thread
// offers scripts: requestAnimationFrame registration, attribute and
// style mutation, structural text replacement, and synchronous layout
// readback. The engine side of the boundary is the Host interface; the VM
// never touches layout or compositor state directly.
//
// All script execution — initial scripts and animation-frame callbacks —
// happens on the main thread, so the VM needs no internal locking.
package script

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/lichen-browser/lichen/content"
)

// Host is what the engine offers to running scripts. Implemented by the
// tab; every method is called on the main thread mid-task.
type Host interface {
	// RequestAnimationFrame registers fn to run at the start of the next
	// animation frame and requests that a frame be scheduled.
	RequestAnimationFrame(fn func())

	// SetAttribute mutates an element attribute and registers the
	// appropriate reflow root.
	SetAttribute(n *content.Node, name, value string)

	// SetStyle mutates a resolved style property and registers the
	// appropriate reflow root.
	SetStyle(n *content.Node, property, value string)

	// SetText structurally replaces the node's children with one text
	// run, invalidating the corresponding layout subtree with rebuild
	// semantics.
	SetText(n *content.Node, s string)

	// NodeWidth returns the node's current laid-out width in device
	// pixels, forcing a synchronous recompute when layout is pending.
	NodeWidth(n *content.Node) float64

	// Now returns milliseconds on a monotonic clock.
	Now() float64
}

// Runtime is one VM bound to one document. Not safe for concurrent use;
// confine it to the main thread.
type Runtime struct {
	vm   *goja.Runtime
	host Host
	doc  *content.Node
	log  *zap.Logger
}

// New creates a VM with the host globals installed.
func New(host Host, doc *content.Node, log *zap.Logger) (*Runtime, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runtime{
		vm:   goja.New(),
		host: host,
		doc:  doc,
		log:  log,
	}
	if err := r.setupGlobals(); err != nil {
		return nil, fmt.Errorf("install script globals: %w", err)
	}
	return r, nil
}

// Run executes a script. Errors (including uncaught JS exceptions) are
// returned for logging by the caller and never abort the runner loop.
func (r *Runtime) Run(name, src string) error {
	if _, err := r.vm.RunScript(name, src); err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

func (r *Runtime) setupGlobals() error {
	if err := r.vm.Set("requestAnimationFrame", r.jsRequestAnimationFrame); err != nil {
		return err
	}
	if err := r.vm.Set("getById", r.jsGetByID); err != nil {
		return err
	}
	if err := r.vm.Set("now", func() float64 { return r.host.Now() }); err != nil {
		return err
	}

	console := r.vm.NewObject()
	logAt := func(level func(string, ...zap.Field)) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			level("console", zap.String("message", joinArgs(call)))
			return goja.Undefined()
		}
	}
	if err := console.Set("log", logAt(r.log.Info)); err != nil {
		return err
	}
	if err := console.Set("warn", logAt(r.log.Warn)); err != nil {
		return err
	}
	if err := console.Set("error", logAt(r.log.Error)); err != nil {
		return err
	}
	return r.vm.Set("console", console)
}

func (r *Runtime) jsRequestAnimationFrame(call goja.FunctionCall) goja.Value {
	fn, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(r.vm.NewTypeError("requestAnimationFrame expects a function"))
	}
	r.host.RequestAnimationFrame(func() {
		if _, err := fn(goja.Undefined()); err != nil {
			r.log.Warn("animation frame callback failed", zap.Error(err))
		}
	})
	return goja.Undefined()
}

func (r *Runtime) jsGetByID(call goja.FunctionCall) goja.Value {
	node := r.doc.FindByID(call.Argument(0).String())
	if node == nil {
		return goja.Null()
	}
	return r.wrapNode(node)
}

// wrapNode builds the JS handle for one content node. Handles are cheap
// and created per call; scripts are not expected to compare them by
// identity.
func (r *Runtime) wrapNode(n *content.Node) goja.Value {
	obj := r.vm.NewObject()
	_ = obj.Set("tag", n.Tag)
	_ = obj.Set("setAttribute", func(name, value string) {
		r.host.SetAttribute(n, name, value)
	})
	_ = obj.Set("setStyle", func(property, value string) {
		r.host.SetStyle(n, property, value)
	})
	_ = obj.Set("setText", func(s string) {
		r.host.SetText(n, s)
	})
	_ = obj.Set("getWidth", func() float64 {
		return r.host.NodeWidth(n)
	})
	return obj
}

func joinArgs(call goja.FunctionCall) string {
	parts := make([]string, len(call.Arguments))
	for i, a := range call.Arguments {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
