package render

import (
	"slices"
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/style"
)

// Attr is an element attribute. Order is preserved for serialization.
type Attr struct {
	Key string
	Val string
}

// Node is an element or a text node of a render tree. A node with an empty
// Tag is a text node.
type Node struct {
	Tag      string
	Text     string
	Class    string
	Attrs    []Attr
	Style    style.Declarations
	Children []*Node
}

// El creates an element with a class list and children.
// Nil children are skipped, which lets callers inline optional sections.
func El(tag, class string, children ...*Node) *Node {
	n := &Node{Tag: tag, Class: class}
	return n.Add(children...)
}

// Div creates a div element.
func Div(class string, children ...*Node) *Node { return El("div", class, children...) }

// Span creates a span element.
func Span(class string, children ...*Node) *Node { return El("span", class, children...) }

// P creates a paragraph element.
func P(class string, children ...*Node) *Node { return El("p", class, children...) }

// H3 creates a level three heading.
func H3(class string, children ...*Node) *Node { return El("h3", class, children...) }

// A creates an anchor with the given href.
func A(href, class string, children ...*Node) *Node {
	return El("a", class, children...).Attr("href", href)
}

// Img creates an image element.
func Img(src, class string) *Node {
	return El("img", class).Attr("src", src).Attr("alt", "")
}

// Text creates a text node.
func Text(s string) *Node { return &Node{Text: s} }

// Add appends non-nil children.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

// Css appends inline declarations given as property/value pairs.
// Pairs with an empty value are skipped.
func (n *Node) Css(pairs ...string) *Node {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		n.Style = append(n.Style, style.Declaration{Property: pairs[i], Value: pairs[i+1]})
	}
	return n
}

// Attr sets an attribute, replacing an existing value.
func (n *Node) Attr(key, val string) *Node {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return n
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
	return n
}

// Get returns an attribute value.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// RemoveAttrs drops every attribute for which drop returns true.
func (n *Node) RemoveAttrs(drop func(key string) bool) {
	n.Attrs = slices.DeleteFunc(n.Attrs, func(a Attr) bool { return drop(a.Key) })
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Tag == "" }

// Clone returns a deep copy.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Tag:   n.Tag,
		Text:  n.Text,
		Class: n.Class,
		Attrs: slices.Clone(n.Attrs),
		Style: n.Style.Clone(),
	}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Walk visits n and its descendants depth-first in document order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(n *Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns every element for which match returns true.
func (n *Node) Find(match func(n *Node) bool) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if !x.IsText() && match(x) {
			out = append(out, x)
		}
		return true
	})
	return out
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.Walk(func(x *Node) bool {
		if x.IsText() {
			b.WriteString(x.Text)
		}
		return true
	})
	return b.String()
}

// Elements returns the element children of n.
func (n *Node) Elements() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.IsText() {
			out = append(out, c)
		}
	}
	return out
}
