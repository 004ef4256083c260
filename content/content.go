// Package content defines the content-node tree the rendering core
// consumes. The tree arrives pre-built from the parsing and style
// resolution stages, annotated with resolved style properties as opaque
// property -> value strings. The rendering core never parses markup; it
// only reads and mutates trees handed to it.
package content

import "strings"

// Node is one node of the content tree. An element node has a Tag and
// optionally children; a text run has an empty Tag and its Text set.
type Node struct {
	// Tag is the element name ("div", "p", "input", ...). Empty for text runs.
	Tag string

	// Text holds the characters of a text run. Meaningful only when Tag is empty.
	Text string

	// Attributes holds element attributes (id, value, ...).
	Attributes map[string]string

	// Style holds resolved style properties, keyed by property name.
	// Values are opaque strings parsed by the layout engine itself.
	Style map[string]string

	Parent   *Node
	Children []*Node
}

// NewElement creates an element node with the given resolved style.
// A nil style is replaced with an empty map so callers can mutate it freely.
func NewElement(tag string, style map[string]string) *Node {
	if style == nil {
		style = make(map[string]string)
	}
	return &Node{
		Tag:        tag,
		Attributes: make(map[string]string),
		Style:      style,
	}
}

// NewText creates a text-run node.
func NewText(text string) *Node {
	return &Node{
		Text:       text,
		Attributes: make(map[string]string),
		Style:      make(map[string]string),
	}
}

// IsText reports whether the node is a text run rather than an element.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Append adds children to the node, setting their parent links.
// It returns the node so trees can be built as expressions.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	return n
}

// SetAttribute sets or replaces an element attribute.
func (n *Node) SetAttribute(name, value string) {
	n.Attributes[name] = value
}

// Attribute returns the value of an attribute, or "" when absent.
func (n *Node) Attribute(name string) string {
	return n.Attributes[name]
}

// SetStyle sets or replaces a resolved style property.
func (n *Node) SetStyle(property, value string) {
	n.Style[property] = value
}

// ID returns the node's id attribute, or "" when absent.
func (n *Node) ID() string {
	return n.Attributes["id"]
}

// ReplaceText swaps the node's children for a single text run. This is a
// structural mutation: any layout built from the old children is stale
// and the nearest layout ancestor must be re-sized with rebuild semantics.
func (n *Node) ReplaceText(s string) {
	t := NewText(s)
	t.Parent = n
	n.Children = []*Node{t}
}

// FindByID returns the first element in the subtree with the given id
// attribute, in depth-first order, or nil when no such element exists.
func (n *Node) FindByID(id string) *Node {
	if id == "" {
		return nil
	}
	if n.ID() == id {
		return n
	}
	for _, c := range n.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// InnerText concatenates all text runs in the subtree, separated by
// single spaces. Useful for tests and debugging output.
func (n *Node) InnerText() string {
	var parts []string
	n.walkText(&parts)
	return strings.Join(parts, " ")
}

func (n *Node) walkText(parts *[]string) {
	if n.IsText() {
		if t := strings.TrimSpace(n.Text); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for _, c := range n.Children {
		c.walkText(parts)
	}
}
