package raster

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrymomot/sigkit/pkg/style"
)

// item is one unbreakable piece of inline content.
type item struct {
	text  string
	space bool
	br    bool
	cs    *style.Computed
	w     float64
	atom  *box
}

// frag is a run of text painted in one style.
type frag struct {
	text     string
	cs       *style.Computed
	x, w     float64
	baseline float64
}

type line struct {
	y, h  float64
	frags []frag
	atoms []*box
}

// collect flattens the inline content of b. Plain inline elements
// contribute their text; everything else becomes an atomic item.
func (e *engine) collect(b *box, out []item) []item {
	for _, k := range b.kids {
		switch {
		case k.kind == kindText:
			out = e.words(k.text, k.cs, out)
		case k.cs.Absolute():
		case k.node != nil && k.node.Tag == "br":
			out = append(out, item{br: true})
		case k.cs.Display == "inline" && !k.decorated():
			out = e.collect(k, out)
		default:
			out = append(out, item{atom: k, cs: k.cs})
		}
	}
	return out
}

func (e *engine) words(s string, cs *style.Computed, out []item) []item {
	if s == "" {
		return out
	}
	s = transformText(s, cs.TextTransform)
	space := func() {
		if n := len(out); n > 0 && out[n-1].space {
			return
		}
		out = append(out, item{text: " ", space: true, cs: cs, w: e.fonts.width(cs, " ")})
	}
	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)
	if unicode.IsSpace(first) {
		space()
	}
	for i, w := range strings.Fields(s) {
		if i > 0 {
			space()
		}
		out = append(out, item{text: w, cs: cs, w: e.fonts.width(cs, w)})
	}
	if unicode.IsSpace(last) && strings.TrimSpace(s) != "" {
		space()
	}
	return out
}

// inline breaks b's content into lines and returns their total height.
func (e *engine) inline(b *box, cx, cy, cw float64) float64 {
	wrap := b.cs.WhiteSpace != "nowrap" && b.cs.WhiteSpace != "pre"

	var (
		rows [][]item
		cur  []item
		curW float64
	)
	trim := func() {
		for len(cur) > 0 && cur[len(cur)-1].space {
			curW -= cur[len(cur)-1].w
			cur = cur[:len(cur)-1]
		}
	}
	for _, it := range e.collect(b, nil) {
		if it.br {
			trim()
			rows = append(rows, cur)
			cur, curW = nil, 0
			continue
		}
		if it.space && len(cur) == 0 {
			continue
		}
		if it.atom != nil {
			e.place(it.atom, 0, 0, cw, fitShrink)
			it.w = it.atom.marginW()
		}
		if wrap && !it.space && len(cur) > 0 && curW+it.w > cw+0.01 {
			trim()
			rows = append(rows, cur)
			cur, curW = nil, 0
		}
		cur = append(cur, it)
		curW += it.w
	}
	trim()
	if len(cur) > 0 {
		rows = append(rows, cur)
	}

	strut := e.fonts.lineHeight(b.cs)
	y := cy
	for _, row := range rows {
		h, width := strut, 0.0
		for _, it := range row {
			width += it.w
			if it.atom != nil {
				h = math.Max(h, it.atom.marginH())
			} else {
				h = math.Max(h, e.fonts.lineHeight(it.cs))
			}
		}

		x := cx
		if free := cw - width; free > 0 {
			switch b.cs.TextAlign {
			case "center":
				x += free / 2
			case "right", "end":
				x += free
			}
		}

		l := &line{y: y, h: h}
		joined := false
		for _, it := range row {
			if it.atom != nil {
				joined = false
				top := y + (h-it.atom.marginH())/2
				it.atom.shift(x+it.atom.m[style.Left]-it.atom.x, top+it.atom.m[style.Top]-it.atom.y)
				l.atoms = append(l.atoms, it.atom)
				x += it.w
				continue
			}
			if n := len(l.frags); joined && l.frags[n-1].cs == it.cs {
				l.frags[n-1].text += it.text
				l.frags[n-1].w += it.w
				x += it.w
				continue
			}
			lh := e.fonts.lineHeight(it.cs)
			asc, desc := e.fonts.metrics(it.cs)
			top := y + (h-lh)/2
			l.frags = append(l.frags, frag{
				text:     it.text,
				cs:       it.cs,
				x:        x,
				w:        it.w,
				baseline: top + (lh-(asc+desc))/2 + asc,
			})
			joined = true
			x += it.w
		}
		b.lines = append(b.lines, l)
		y += h
	}
	return y - cy
}
