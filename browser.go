package lichen

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lichen-browser/lichen/content"
	"github.com/lichen-browser/lichen/display"
	"github.com/lichen-browser/lichen/text"
)

// Browser is one browser tab's rendering engine: a main thread that runs
// script and the layout pipeline, and a compositor thread that owns the
// drawing surface, input routing, and frame scheduling. All cross-thread
// state lives behind b.mu with minimal critical sections; the content and
// layout trees are main-thread-only and the compositor sees nothing but
// committed display lists.
type Browser struct {
	log     *zap.Logger
	fonts   text.Metrics
	surface Surface

	cadence      time.Duration // target delay between animation frames
	tick         time.Duration // idle sleep between loop iterations
	width        float64       // surface width, device pixels
	height       float64       // surface height, device pixels
	chromeHeight float64       // top strip owned by the chrome

	tab *Tab

	mainQueue       *TaskQueue
	compositorQueue *TaskQueue

	// Cross-thread state. Never hold mu while drawing, painting, or
	// running a task.
	mu                  sync.Mutex
	needsAnimationFrame bool
	frameScheduled      bool
	lastFrame           time.Time
	needsDraw           bool
	quit                bool
	committed           *display.DisplayList

	// Compositor-thread-owned state: touched only from the compositor
	// loop, so it needs no lock.
	scroll float64
	chrome ChromeState

	// onNavigate runs on the compositor thread when the address bar is
	// committed. It must not block on the main thread.
	onNavigate func(url string)
}

// New creates a browser with the given options. With no options it uses a
// recording surface, the embedded font cache, a 16ms cadence, and an
// 800x600 surface with a 40px chrome strip.
func New(opts ...Option) (*Browser, error) {
	b := &Browser{
		log:             zap.NewNop(),
		cadence:         16 * time.Millisecond,
		tick:            time.Millisecond,
		width:           800,
		height:          600,
		chromeHeight:    40,
		mainQueue:       NewTaskQueue(),
		compositorQueue: NewTaskQueue(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.surface == nil {
		b.surface = NewRecordingSurface()
	}
	if b.fonts == nil {
		fonts, err := text.NewCache()
		if err != nil {
			return nil, err
		}
		b.fonts = fonts
	}
	b.tab = newTab(b)
	return b, nil
}

// Run starts the main-thread and compositor loops and blocks until Stop
// is called or the context is cancelled.
func (b *Browser) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.runMain(ctx) })
	g.Go(func() error { return b.runCompositor(ctx) })
	return g.Wait()
}

// Stop signals both loops to exit. Idempotent and safe from any thread.
func (b *Browser) Stop() {
	b.mu.Lock()
	b.quit = true
	b.mu.Unlock()
}

// LoadContent hands the tab a new content tree on the main thread. The
// previous layout tree is discarded; the first frame after a load
// rebuilds from scratch with every node implicitly a reflow root.
func (b *Browser) LoadContent(doc *content.Node) {
	b.mainQueue.Add(NewTask(func() { b.tab.load(doc) }))
}

// RunScript queues a script for execution on the main thread. Script
// errors are logged and never abort the runner loop.
func (b *Browser) RunScript(name, src string) {
	b.mainQueue.Add(NewTask(func() { b.tab.runScript(name, src) }))
}

// PostEvent delivers an input event to the compositor thread.
func (b *Browser) PostEvent(ev Event) {
	b.compositorQueue.Add(NewTask(func() { b.handleEvent(ev) }))
}

// ZoomIn increases the tab zoom by one increment (x1.1).
func (b *Browser) ZoomIn() {
	b.mainQueue.Add(NewTask(func() { b.tab.zoomBy(1.1) }))
}

// ZoomOut decreases the tab zoom by one increment (/1.1).
func (b *Browser) ZoomOut() {
	b.mainQueue.Add(NewTask(func() { b.tab.zoomBy(1 / 1.1) }))
}

// ZoomReset restores the tab zoom to 1.0.
func (b *Browser) ZoomReset() {
	b.mainQueue.Add(NewTask(func() { b.tab.zoomReset() }))
}

// Committed returns the most recently committed display list, or nil
// before the first commit. The list is immutable.
func (b *Browser) Committed() *display.DisplayList {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.committed
}

// scheduleAnimationFrame requests that the compositor schedule a frame.
// Safe from any thread; duplicate requests before the frame fires
// coalesce.
func (b *Browser) scheduleAnimationFrame() {
	b.mu.Lock()
	b.needsAnimationFrame = true
	b.mu.Unlock()
}

// commit publishes a finished display list to the compositor. The deep
// copy happens before the lock is taken so the critical section is just
// pointer and flag writes; this is the single synchronization point
// between the pipeline and drawing.
func (b *Browser) commit(dl *display.DisplayList) {
	clone := dl.Clone()
	b.mu.Lock()
	b.committed = clone
	b.needsDraw = true
	b.mu.Unlock()
}

func (b *Browser) stopping(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.quit
}

// sleep idles for one tick, waking early on cancellation.
func (b *Browser) sleep(ctx context.Context) {
	timer := time.NewTimer(b.tick)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// runTask executes a task with panic recovery: a failing task is logged
// and the loop moves on to the next one.
func (b *Browser) runTask(thread string, t *Task) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("task panicked",
				zap.String("thread", thread),
				zap.Any("panic", r))
		}
	}()
	t.Run()
}
