package render

import (
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/signature"
	"github.com/dmitrymomot/sigkit/pkg/style"
)

// Section names carried by the top-level blocks of every variant in the
// data-section attribute. The preview surface attaches editor markers to them.
const (
	SectionIdentity = "identity"
	SectionContact  = "contact"
	SectionSocial   = "social"
)

// SectionAttr is the attribute holding a section name.
const SectionAttr = "data-section"

// Render builds the tree of the selected variant. It never fails: missing
// fields omit their blocks and unknown templates render as the default one.
func Render(d signature.Data, s signature.Style) *Node {
	s = s.Normalize()
	var root *Node
	switch s.Template {
	case signature.Minimal:
		root = minimal(d, s)
	case signature.Modern:
		root = modern(d, s)
	case signature.Elegant:
		root = elegant(d, s)
	case signature.Creative:
		root = creative(d, s)
	case signature.Startup:
		root = startup(d, s)
	default:
		root = tech(d, s)
	}
	return root.Attr("data-template", string(s.Template))
}

// Sections returns the marked section blocks in document order.
func Sections(root *Node) []*Node {
	return root.Find(func(n *Node) bool {
		_, ok := n.Get(SectionAttr)
		return ok
	})
}

func section(name string, n *Node) *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Attr(SectionAttr, name)
}

// nonEmpty returns the trimmed, non-empty values in order.
func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func mailto(email string) string {
	return "mailto:" + strings.TrimSpace(email)
}

// tint returns c with the given alpha as an rgba() value, or "" when c does
// not parse.
func tint(c string, alpha float64) string {
	col, err := style.ParseColor(c)
	if err != nil {
		return ""
	}
	col.A = alpha
	return col.CSS()
}

// social renders one social entry. Linkable platforms become anchors;
// display-only ones become spans titled with the raw value.
func social(l signature.SocialLink, class, color string) *Node {
	if !l.Linkable {
		return Span(class, Text(l.Label())).Attr("title", l.Value).Css("color", color)
	}
	return A(l.Href, class, Text(l.Label())).
		Attr("title", "Visit "+string(l.Platform)+" profile").
		Attr("target", "_blank").
		Attr("rel", "noopener noreferrer").
		Css("color", color)
}

// socialList fills container with the active socials. It returns nil when
// there are none.
func socialList(d signature.Data, container *Node, class, color string) *Node {
	for _, l := range d.Socials.Active() {
		container.Add(social(l, class, color))
	}
	if len(container.Children) == 0 {
		return nil
	}
	return container
}
