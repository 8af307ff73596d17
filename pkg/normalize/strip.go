package normalize

import (
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/render"
)

// DragDeclarations are the properties the editor sets on a section while it
// is being dragged.
var DragDeclarations = []string{"transform", "transition", "opacity", "cursor"}

// EditorAttr reports whether an attribute only exists for the editor:
// data attributes, event handlers, drag and focus attributes and labels.
func EditorAttr(key string) bool {
	key = strings.ToLower(key)
	switch key {
	case "aria-label", "draggable", "tabindex":
		return true
	}
	return strings.HasPrefix(key, "data-") || strings.HasPrefix(key, "on")
}

// Strip removes editor residue from the tree in place. Drag declarations are
// dropped from nodes marked as dragged before their markers go.
func Strip(root *render.Node) {
	root.Walk(func(n *render.Node) bool {
		if n.IsText() {
			return false
		}
		dropDrag(n)
		n.RemoveAttrs(EditorAttr)
		return true
	})
}

func dropDrag(n *render.Node) {
	if _, dragged := n.Get(preview.MarkerDragging); dragged {
		n.Style = n.Style.Without(DragDeclarations...)
	}
}
