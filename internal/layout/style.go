package layout

import (
	"strconv"
	"strings"

	"github.com/lichen-browser/lichen/content"
	"github.com/lichen-browser/lichen/text"
)

// Style defaults substituted when a property is absent or malformed.
// Missing values are recovered locally, never propagated as errors.
const (
	defaultFontSize = 16.0 // css pixels
	inputWidth      = 200.0
	lineLeading     = 1.25
)

// DevicePx converts a css-pixel length to device pixels under the given
// zoom factor. Every font size and explicit length goes through this one
// conversion so zoom scales the whole layout uniformly and wrapping, not
// overflow, absorbs the change.
func DevicePx(css, zoom float64) float64 {
	return css * zoom
}

// blockTags lists elements laid out as vertically stacked blocks. Any
// other element, and all text runs, are inline-level.
var blockTags = map[string]bool{
	"html": true, "body": true, "article": true, "section": true,
	"nav": true, "aside": true, "header": true, "footer": true,
	"div": true, "p": true, "pre": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ol": true, "ul": true, "li": true, "table": true, "figure": true,
}

// blockMode reports whether the element's children are laid out as
// blocks. An element with at least one block-level child is in block
// mode; otherwise its content is inline-level and goes through word wrap.
func blockMode(c *content.Node) bool {
	for _, child := range c.Children {
		if !child.IsText() && blockTags[child.Tag] {
			return true
		}
	}
	return false
}

// parsePx parses a trailing-unit css length like "16px". Malformed or
// non-pixel values report false and the caller substitutes its default.
func parsePx(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if !strings.HasSuffix(v, "px") {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

// fontSize resolves the css font size of a content node, walking up to
// the nearest ancestor that declares one and falling back to the default.
func fontSize(c *content.Node) float64 {
	for n := c; n != nil; n = n.Parent {
		if v, ok := n.Style["font-size"]; ok {
			if px, ok := parsePx(v); ok {
				return px
			}
		}
	}
	return defaultFontSize
}

func fontWeight(c *content.Node) text.Weight {
	for n := c; n != nil; n = n.Parent {
		switch n.Style["font-weight"] {
		case "bold":
			return text.WeightBold
		case "normal":
			return text.WeightNormal
		}
		if n.Tag == "b" || n.Tag == "strong" {
			return text.WeightBold
		}
	}
	return text.WeightNormal
}

func fontStyle(c *content.Node) text.Style {
	for n := c; n != nil; n = n.Parent {
		switch n.Style["font-style"] {
		case "italic":
			return text.StyleItalic
		case "normal":
			return text.StyleRoman
		}
		if n.Tag == "i" || n.Tag == "em" {
			return text.StyleItalic
		}
	}
	return text.StyleRoman
}
