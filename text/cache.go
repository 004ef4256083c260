package text

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// variant identifies one of the four parsed font files.
type variant struct {
	weight Weight
	style  Style
}

// faceKey identifies a sized face. Sizes are keyed by rounded device
// pixels; sub-pixel size differences share a face.
type faceKey struct {
	sizePx int
	weight Weight
	style  Style
}

// Cache is a Metrics backed by the embedded Go fonts with a keyed face
// cache: one font.Face per (size, weight, style). Building a face is the
// expensive step, so without this cache pipeline time scales with node
// count times font construction cost.
//
// Cache is safe for concurrent use, though in practice only the main
// thread measures text.
type Cache struct {
	mu    sync.Mutex
	fonts map[variant]*sfnt.Font
	faces map[faceKey]font.Face
}

// NewCache parses the four embedded font variants and returns an empty
// face cache.
func NewCache() (*Cache, error) {
	sources := map[variant][]byte{
		{WeightNormal, StyleRoman}:  goregular.TTF,
		{WeightNormal, StyleItalic}: goitalic.TTF,
		{WeightBold, StyleRoman}:    gobold.TTF,
		{WeightBold, StyleItalic}:   gobolditalic.TTF,
	}
	c := &Cache{
		fonts: make(map[variant]*sfnt.Font, len(sources)),
		faces: make(map[faceKey]font.Face),
	}
	for v, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse %s/%s font: %w", v.weight, v.style, err)
		}
		c.fonts[v] = f
	}
	return c, nil
}

// Len returns the number of cached faces.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faces)
}

func (c *Cache) face(sizePx float64, weight Weight, style Style) (font.Face, error) {
	size := int(math.Round(sizePx))
	if size < 1 {
		size = 1
	}
	key := faceKey{sizePx: size, weight: weight, style: style}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.fonts[variant{weight, style}], &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("build %dpx %s/%s face: %w", size, weight, style, err)
	}
	c.faces[key] = f
	return f, nil
}

// Measure implements Metrics. A face that fails to build measures as
// zero width; the layout engine treats that as an empty word.
func (c *Cache) Measure(s string, sizePx float64, weight Weight, style Style) float64 {
	f, err := c.face(sizePx, weight, style)
	if err != nil {
		return 0
	}
	return fixedToPx(font.MeasureString(f, s))
}

// Extent implements Metrics.
func (c *Cache) Extent(sizePx float64, weight Weight, style Style) (float64, float64) {
	f, err := c.face(sizePx, weight, style)
	if err != nil {
		return 0, 0
	}
	m := f.Metrics()
	return fixedToPx(m.Ascent), fixedToPx(m.Descent)
}

func fixedToPx(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
