package preview

import (
	"github.com/dmitrymomot/sigkit/pkg/render"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// Mode selects what the preview shows and what the primary export does.
type Mode string

const (
	// Rendered shows the visual preview; the primary export downloads a PNG.
	Rendered Mode = "rendered"
	// HTML shows the flattened HTML source; the primary export copies it.
	HTML Mode = "html"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Rendered, HTML:
		return m, nil
	}
	return "", ErrInvalidMode
}

// Snapshot is an immutable copy of the staged preview. Exports only ever see
// snapshots, so edits that land while an export runs cannot affect it.
type Snapshot struct {
	// Tree is a deep copy of the staged tree, editor markers included.
	// It is nil when nothing has been staged.
	Tree    *render.Node
	Data    signature.Data
	Style   signature.Style
	Mode    Mode
	Width   float64
	Version uint64
}

// Ready reports whether the snapshot carries a staged tree.
func (s Snapshot) Ready() bool {
	return s.Tree != nil
}

// Font returns the web font of the staged template.
func (s Snapshot) Font() render.Font {
	return render.FontFor(s.Style.Template)
}
