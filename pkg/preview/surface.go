package preview

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/render"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// Editor marker attributes added to the staged tree. None of them affect
// rendering; exports strip them.
const (
	MarkerRoot     = "data-editor-root"
	MarkerItem     = "data-editor-item"
	MarkerDragging = "data-editor-dragging"
)

// DefaultWidth is the on-screen width of the preview box in CSS pixels.
const DefaultWidth = 512

// Option configures a Surface.
type Option func(*Surface)

// WithWidth sets the on-screen preview width. Non-positive values are ignored.
func WithWidth(w float64) Option {
	return func(s *Surface) {
		if w > 0 {
			s.width = w
		}
	}
}

// WithMode sets the initial output mode.
func WithMode(m Mode) Option {
	return func(s *Surface) {
		if m == Rendered || m == HTML {
			s.mode = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

type drag struct {
	section string
	dx, dy  float64
}

// Surface holds the current data and style and the tree staged from them.
// Every change re-renders synchronously. It is safe for concurrent use.
type Surface struct {
	mu      sync.RWMutex
	data    signature.Data
	style   signature.Style
	tree    *render.Node
	mode    Mode
	width   float64
	version uint64
	drag    *drag
	log     *slog.Logger
}

// NewSurface returns an empty surface. Nothing is staged until Load.
func NewSurface(opts ...Option) *Surface {
	s := &Surface{
		mode:  Rendered,
		width: DefaultWidth,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("preview"))
	return s
}

// Load replaces data and style and stages a new tree.
func (s *Surface) Load(d signature.Data, st signature.Style) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = d.Clone()
	s.style = st.Normalize()
	s.stage()
	return s.snapshot()
}

// Update merges a partial data update.
func (s *Surface) Update(p signature.Patch) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = s.data.Merge(p)
	s.stage()
	return s.snapshot()
}

// UpdateStyle merges a partial style update.
func (s *Surface) UpdateStyle(p signature.StylePatch) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = s.style.Merge(p).Normalize()
	s.stage()
	return s.snapshot()
}

// SelectTemplate switches the template and keeps the current data.
func (s *Surface) SelectTemplate(t signature.Template) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style.Template = t.OrDefault()
	s.style = s.style.Normalize()
	s.stage()
	return s.snapshot()
}

// ApplyPreset switches the template and replaces the data with its demo preset.
func (s *Surface) ApplyPreset(t signature.Template) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = signature.Preset(t)
	s.style.Template = t.OrDefault()
	s.style = s.style.Normalize()
	s.stage()
	return s.snapshot()
}

// Clear drops the staged tree. Exports taken afterwards are not ready.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = nil
	s.drag = nil
	s.version++
}

// Drag marks a section as being dragged by (dx, dy) pixels. The staged node
// gets the drag preview declarations until Drop.
func (s *Surface) Drag(section string, dx, dy float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tree == nil || findItem(s.tree, section) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	s.drag = &drag{section: section, dx: dx, dy: dy}
	s.stage()
	return nil
}

// Drop ends a drag and restores the section.
func (s *Surface) Drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drag == nil {
		return
	}
	s.drag = nil
	if s.tree != nil {
		s.stage()
	}
}

// SetMode switches the output mode.
func (s *Surface) SetMode(m Mode) error {
	if m != Rendered && m != HTML {
		return fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
	return nil
}

// Mode returns the output mode.
func (s *Surface) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Snapshot returns an immutable copy of the current state.
func (s *Surface) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

func (s *Surface) snapshot() Snapshot {
	return Snapshot{
		Tree:    s.tree.Clone(),
		Data:    s.data.Clone(),
		Style:   s.style,
		Mode:    s.mode,
		Width:   s.width,
		Version: s.version,
	}
}

// stage renders the tree and adds editor markers. Callers hold mu.
func (s *Surface) stage() {
	root := render.Render(s.data, s.style)
	root.Attr(MarkerRoot, "true")
	for _, sec := range render.Sections(root) {
		name, _ := sec.Get(render.SectionAttr)
		sec.Attr(MarkerItem, name).
			Attr("draggable", "true").
			Attr("tabindex", "0").
			Attr("aria-label", "Drag to reorder").
			Attr("ondragstart", "event.dataTransfer.setData('text/plain', this.dataset.editorItem)")
	}
	if s.drag != nil {
		if n := findItem(root, s.drag.section); n != nil {
			n.Attr(MarkerDragging, "true").Css(
				"transform", "translate3d("+px(s.drag.dx)+", "+px(s.drag.dy)+", 0)",
				"transition", "transform 200ms ease",
				"opacity", "0.5",
				"cursor", "grabbing",
			)
		} else {
			s.drag = nil
		}
	}
	s.tree = root
	s.version++
	s.log.Debug("preview staged",
		logger.Template(string(s.style.Template)),
		slog.Uint64("version", s.version),
	)
}

func findItem(root *render.Node, section string) *render.Node {
	items := root.Find(func(n *render.Node) bool {
		v, ok := n.Get(MarkerItem)
		if !ok {
			v, ok = n.Get(render.SectionAttr)
		}
		return ok && v == section
	})
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
