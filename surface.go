package lichen

import (
	"sync"

	"github.com/lichen-browser/lichen/display"
)

// ChromeState is the compositor-owned browser chrome: the address bar and
// its focus. It never touches the main thread, which is what keeps the
// chrome responsive while script runs.
type ChromeState struct {
	// Address is the text currently in the address bar.
	Address string
	// Focused reports whether keystrokes are routed to the address bar.
	Focused bool
	// URL is the last committed address.
	URL string
}

// DrawnFrame is everything the compositor hands the drawing surface for
// one draw: a chrome snapshot, the scroll offset, and the committed
// display list. The list is the compositor's private copy and must not be
// mutated.
type DrawnFrame struct {
	Chrome ChromeState
	Scroll float64
	List   *display.DisplayList
}

// Surface is the drawing boundary. Implementations rasterize a frame;
// the engine itself never rasterizes. Draw is only ever called from the
// compositor thread.
type Surface interface {
	Draw(frame DrawnFrame)
}

// RecordingSurface is a Surface that captures every drawn frame for
// inspection. It is the default surface and the one tests use; it stands
// in for a real window the way a mock terminal stands in for a tty.
type RecordingSurface struct {
	mu     sync.Mutex
	frames []DrawnFrame
}

var _ Surface = (*RecordingSurface)(nil)

// NewRecordingSurface creates an empty recording surface.
func NewRecordingSurface() *RecordingSurface {
	return &RecordingSurface{}
}

// Draw implements Surface.
func (s *RecordingSurface) Draw(frame DrawnFrame) {
	s.mu.Lock()
	s.frames = append(s.frames, frame)
	s.mu.Unlock()
}

// FrameCount returns how many frames have been drawn.
func (s *RecordingSurface) FrameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// LastFrame returns the most recent drawn frame, if any.
func (s *RecordingSurface) LastFrame() (DrawnFrame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return DrawnFrame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Frames returns a copy of all drawn frames.
func (s *RecordingSurface) Frames() []DrawnFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DrawnFrame, len(s.frames))
	copy(out, s.frames)
	return out
}
