// Package view turns a decoded document plus the current form state into a
// page title and a tree of view nodes for the host page-composition layer,
// and provides the HTML serializer the CLI uses.
package view

// Attr is a single element attribute. An empty Value renders as a boolean
// attribute (disabled, checked, autofocus).
type Attr struct {
	Key   string
	Value string
}

// Node is one node in the rendered view tree: an element when Tag is set,
// otherwise a text node, or pre-rendered HTML when Raw is set.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []Node
	Text     string
	Raw      bool
}

// Page is the rendering contract handed to the host page system.
type Page struct {
	Title string
	Lang  string
	Body  []Node
}

// El builds an element node.
func El(tag string, attrs []Attr, children ...Node) Node {
	return Node{Tag: tag, Attrs: attrs, Children: children}
}

// Text builds a text node; its content is escaped on serialization.
func Text(text string) Node {
	return Node{Text: text}
}

// RawHTML builds a node whose content is emitted verbatim. Callers are
// responsible for sanitizing it first.
func RawHTML(html string) Node {
	return Node{Text: html, Raw: true}
}

// A builds an attribute list from alternating key/value pairs.
func A(pairs ...string) []Attr {
	attrs := make([]Attr, 0, (len(pairs)+1)/2)
	for i := 0; i < len(pairs); i += 2 {
		attr := Attr{Key: pairs[i]}
		if i+1 < len(pairs) {
			attr.Value = pairs[i+1]
		}
		attrs = append(attrs, attr)
	}
	return attrs
}
