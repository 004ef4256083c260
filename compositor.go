package lichen

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// runCompositor is the compositor loop: it owns the drawing surface,
// frame scheduling, and input routing. Per iteration it arms at most one
// cadence timer, drains at most one queued event, and performs at most
// one draw, so the compositor can never be starved by a flood from one
// source. When nothing happened it sleeps one tick; with
// no frame requested there is no timer and no polling.
//
// Nothing here blocks on the main thread. Scrolling and chrome
// interaction stay live while the main thread runs arbitrarily slow
// script.
func (b *Browser) runCompositor(ctx context.Context) error {
	for {
		if b.stopping(ctx) {
			return nil
		}
		b.scheduleFrameIfNeeded()
		worked := false
		if task, ok := b.compositorQueue.Next(); ok {
			b.runTask("compositor", task)
			worked = true
		}
		if b.drawIfNeeded() {
			worked = true
		}
		if !worked {
			b.sleep(ctx)
		}
	}
}

// scheduleFrameIfNeeded arms a single-shot timer for the next animation
// frame when one has been requested and none is in flight. The delay is
// measured from the previous frame's start so the inter-frame interval
// converges to the cadence, not cadence plus pipeline cost. The timer
// callback only enqueues the frame task; all frame work happens on the
// main thread.
func (b *Browser) scheduleFrameIfNeeded() {
	b.mu.Lock()
	if !b.needsAnimationFrame || b.frameScheduled {
		b.mu.Unlock()
		return
	}
	b.needsAnimationFrame = false
	b.frameScheduled = true
	delay := b.cadence - time.Since(b.lastFrame)
	b.mu.Unlock()

	if delay < 0 {
		delay = 0
	}
	time.AfterFunc(delay, func() {
		b.mu.Lock()
		b.lastFrame = time.Now()
		b.mu.Unlock()
		b.mainQueue.Add(NewTask(b.frameTask))
	})
}

// frameTask runs one animation frame on the main thread. The in-flight
// marker is cleared in a defer, not at commit, so a frame that panics
// mid-pipeline still releases the scheduler and the next requested frame
// gets armed.
func (b *Browser) frameTask() {
	defer func() {
		b.mu.Lock()
		b.frameScheduled = false
		b.mu.Unlock()
	}()
	b.tab.runAnimationFrame()
}

// drawIfNeeded draws the committed display list when a draw is pending.
// The lock covers only the flag and pointer reads; drawing happens
// outside it against the compositor's private copy.
func (b *Browser) drawIfNeeded() bool {
	b.mu.Lock()
	if !b.needsDraw || b.committed == nil {
		b.mu.Unlock()
		return false
	}
	b.needsDraw = false
	dl := b.committed
	b.mu.Unlock()

	b.scroll = clampScroll(b.scroll, dl.Height, b.height-b.chromeHeight)
	b.surface.Draw(DrawnFrame{
		Chrome: b.chrome,
		Scroll: b.scroll,
		List:   dl,
	})
	return true
}

func (b *Browser) setNeedsDraw() {
	b.mu.Lock()
	b.needsDraw = true
	b.mu.Unlock()
}

func clampScroll(scroll, docHeight, viewHeight float64) float64 {
	max := docHeight - viewHeight
	if max < 0 {
		max = 0
	}
	if scroll > max {
		scroll = max
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

// handleEvent routes one input event on the compositor thread. Chrome
// clicks, scrolling, and address-bar editing are serviced entirely here;
// events targeting page content become main-thread tasks because only the
// main thread may touch the content tree. Content coordinates are
// translated before crossing threads so the main thread never needs the
// compositor's scroll state.
func (b *Browser) handleEvent(ev Event) {
	switch ev.Type {
	case EventScroll:
		b.scroll += ev.Delta
		if b.scroll < 0 {
			b.scroll = 0
		}
		b.setNeedsDraw()

	case EventClick:
		if ev.Y < b.chromeHeight {
			b.chrome.Focused = true
			b.chrome.Address = ""
			b.setNeedsDraw()
			return
		}
		b.chrome.Focused = false
		x, y := ev.X, ev.Y-b.chromeHeight+b.scroll
		b.mainQueue.Add(NewTask(func() { b.tab.click(x, y) }))
		b.setNeedsDraw()

	case EventKey:
		if b.chrome.Focused {
			b.chrome.Address += string(ev.Rune)
			b.setNeedsDraw()
			return
		}
		b.mainQueue.Add(NewTask(func() { b.tab.keypress(ev.Rune) }))

	case EventBackspace:
		if b.chrome.Focused {
			b.chrome.Address = trimLastRune(b.chrome.Address)
			b.setNeedsDraw()
			return
		}
		b.mainQueue.Add(NewTask(func() { b.tab.backspace() }))

	case EventEnter:
		if !b.chrome.Focused {
			return
		}
		b.chrome.URL = b.chrome.Address
		b.chrome.Focused = false
		b.setNeedsDraw()
		if b.onNavigate != nil {
			b.log.Debug("address committed", zap.String("url", b.chrome.URL))
			b.onNavigate(b.chrome.URL)
		}
	}
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
