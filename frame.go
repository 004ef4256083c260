package lichen

// FrameState holds the per-tab animation-frame bookkeeping owned by the
// main thread. The pending-callbacks buffer is double-buffered: take
// swaps it out and clears the flag before the caller invokes anything, so
// a callback that requests another frame lands in a fresh buffer consumed
// next frame instead of being dropped or re-entered.
type FrameState struct {
	needsRAFCallbacks bool
	rafCallbacks      []func()
}

// requestCallback registers an animation-frame callback. The caller is
// responsible for also requesting that a frame be scheduled.
func (fs *FrameState) requestCallback(fn func()) {
	if fn == nil {
		return
	}
	fs.rafCallbacks = append(fs.rafCallbacks, fn)
	fs.needsRAFCallbacks = true
}

// take returns the pending callback batch and resets the state, or nil
// when no callbacks are pending. The flag is cleared before any callback
// can run; clearing after invocation would silently swallow a re-request
// made from inside a callback.
func (fs *FrameState) take() []func() {
	if !fs.needsRAFCallbacks {
		return nil
	}
	fs.needsRAFCallbacks = false
	cbs := fs.rafCallbacks
	fs.rafCallbacks = nil
	return cbs
}
