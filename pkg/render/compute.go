package render

import "github.com/dmitrymomot/sigkit/pkg/style"

// Styles maps every element of a tree to its computed style.
type Styles map[*Node]*style.Computed

// Compute runs the cascade over the tree rooted at root. A nil sheet means
// the built-in utility classes.
func Compute(root *Node, sheet *style.Sheet) Styles {
	if sheet == nil {
		sheet = style.Utilities()
	}
	out := make(Styles)
	if root == nil || root.IsText() {
		return out
	}
	var visit func(n *Node, parent *style.Computed, siblings style.Declarations, after bool)
	visit = func(n *Node, parent *style.Computed, siblings style.Declarations, after bool) {
		c, own := sheet.Cascade(parent, siblings, style.Element{
			Tag:          n.Tag,
			Class:        n.Class,
			Style:        n.Style,
			AfterSibling: after,
		})
		out[n] = c
		seen := false
		for _, child := range n.Children {
			if child.IsText() {
				continue
			}
			visit(child, c, own, seen)
			seen = true
		}
	}
	visit(root, nil, nil, false)
	return out
}
