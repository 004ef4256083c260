package lichen

import (
	"time"

	"go.uber.org/zap"

	"github.com/lichen-browser/lichen/text"
)

// Option configures a Browser at construction time.
type Option func(*Browser)

// WithLogger sets the logger. The default is a nop logger; the engine is
// silent unless told otherwise.
func WithLogger(log *zap.Logger) Option {
	return func(b *Browser) {
		if log != nil {
			b.log = log
		}
	}
}

// WithFonts sets the font metrics implementation. The default is the
// embedded font cache; tests substitute a deterministic measurer.
func WithFonts(fonts text.Metrics) Option {
	return func(b *Browser) {
		b.fonts = fonts
	}
}

// WithSurface sets the drawing surface.
func WithSurface(s Surface) Option {
	return func(b *Browser) {
		b.surface = s
	}
}

// WithFrameCadence sets the target delay between animation frames.
// The default is 16ms (60Hz). Values <= 0 are ignored.
func WithFrameCadence(d time.Duration) Option {
	return func(b *Browser) {
		if d > 0 {
			b.cadence = d
		}
	}
}

// WithTickInterval sets how long the two loops sleep when idle.
// The default is 1ms. Values <= 0 are ignored.
func WithTickInterval(d time.Duration) Option {
	return func(b *Browser) {
		if d > 0 {
			b.tick = d
		}
	}
}

// WithFrameSize sets the surface dimensions in device pixels.
func WithFrameSize(width, height float64) Option {
	return func(b *Browser) {
		if width > 0 && height > 0 {
			b.width, b.height = width, height
		}
	}
}

// WithChromeHeight sets the height of the compositor-owned chrome strip.
func WithChromeHeight(h float64) Option {
	return func(b *Browser) {
		if h >= 0 {
			b.chromeHeight = h
		}
	}
}

// WithNavigateFunc sets the callback invoked on the compositor thread
// when the address bar is committed. Loading the named URL is outside the
// rendering core; the callback must not block on the main thread.
func WithNavigateFunc(fn func(url string)) Option {
	return func(b *Browser) {
		b.onNavigate = fn
	}
}
