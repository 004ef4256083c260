// Package text provides the font-metrics boundary used by the layout
// engine: word measurement and vertical extents at a given device-pixel
// size. The production implementation is a keyed face cache over the
// embedded Go fonts; tests can substitute a deterministic linear measurer.
package text

// Weight selects the stroke weight of a font variant.
type Weight uint8

const (
	WeightNormal Weight = iota
	WeightBold
)

// String returns the CSS-facing name of the weight.
func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "normal"
}

// Style selects the slant of a font variant.
type Style uint8

const (
	StyleRoman Style = iota
	StyleItalic
)

// String returns the CSS-facing name of the style.
func (s Style) String() string {
	if s == StyleItalic {
		return "italic"
	}
	return "roman"
}

// Metrics measures text in device pixels. Implementations must be
// deterministic: identical inputs yield identical widths, which the layout
// engine relies on for idempotent sizing.
type Metrics interface {
	// Measure returns the advance width of s at the given device-pixel
	// font size and variant.
	Measure(s string, sizePx float64, weight Weight, style Style) float64

	// Extent returns the ascent and descent above and below the baseline
	// at the given device-pixel font size and variant.
	Extent(sizePx float64, weight Weight, style Style) (ascent, descent float64)
}

// Linear is a Metrics with width proportional to font size: every rune is
// Aspect*size wide and extents split the size 80/20 around the baseline.
// Weight and style do not affect it. Intended for tests that need exact
// arithmetic relationships between zoom levels.
type Linear struct {
	// Aspect is the per-rune width as a fraction of the font size.
	// Zero means the default of 0.5.
	Aspect float64
}

func (l Linear) aspect() float64 {
	if l.Aspect <= 0 {
		return 0.5
	}
	return l.Aspect
}

// Measure implements Metrics.
func (l Linear) Measure(s string, sizePx float64, _ Weight, _ Style) float64 {
	return float64(len([]rune(s))) * sizePx * l.aspect()
}

// Extent implements Metrics.
func (l Linear) Extent(sizePx float64, _ Weight, _ Style) (float64, float64) {
	return sizePx * 0.8, sizePx * 0.2
}
