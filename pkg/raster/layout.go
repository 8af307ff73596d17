package raster

import (
	"image"
	"math"
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/render"
	"github.com/dmitrymomot/sigkit/pkg/style"
)

type kind uint8

const (
	kindBlock  kind = iota // block children stacked vertically
	kindInline             // lines of text and atomic inline boxes
	kindFlex
	kindGrid
	kindText // text run; only appears inside inline containers
	kindImage
)

// box is a laid out element. Coordinates are CSS pixels relative to the
// root's top-left corner and describe the border box.
type box struct {
	node  *render.Node
	cs    *style.Computed
	kind  kind
	text  string
	img   image.Image
	kids  []*box
	lines []*line

	x, y, w, h float64
	m          [4]float64
}

func (b *box) marginW() float64 { return b.w + b.m[style.Left] + b.m[style.Right] }
func (b *box) marginH() float64 { return b.h + b.m[style.Top] + b.m[style.Bottom] }

func (b *box) positioned() bool { return b.cs.Position != "" && b.cs.Position != "static" }

func (b *box) inlineLevel() bool {
	return b.kind == kindText || strings.HasPrefix(b.cs.Display, "inline")
}

// decorated reports whether an inline element paints a box of its own.
// Those are laid out as atomic inline boxes.
func (b *box) decorated() bool {
	cs := b.cs
	if !cs.Background.IsTransparent() || cs.Gradient != nil {
		return true
	}
	t, r, bo, l := cs.BorderWidths()
	if t+r+bo+l > 0 {
		return true
	}
	pt, pr, pb, pl := cs.Padding.Px(0)
	mt, mr, mb, ml := cs.Margin.Px(0)
	return pt+pr+pb+pl+mt+mr+mb+ml != 0
}

// shift moves a laid out subtree.
func (b *box) shift(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	b.x += dx
	b.y += dy
	if b.kind == kindInline {
		for _, l := range b.lines {
			l.y += dy
			for i := range l.frags {
				l.frags[i].x += dx
				l.frags[i].baseline += dy
			}
			for _, a := range l.atoms {
				a.shift(dx, dy)
			}
		}
		for _, k := range b.kids {
			if k.cs.Absolute() {
				k.shift(dx, dy)
			}
		}
		return
	}
	for _, k := range b.kids {
		k.shift(dx, dy)
	}
}

func inflow(kids []*box) []*box {
	out := make([]*box, 0, len(kids))
	for _, k := range kids {
		if !k.cs.Absolute() {
			out = append(out, k)
		}
	}
	return out
}

// fit selects how place sizes a box without an explicit width.
type fit uint8

const (
	fitFill   fit = iota // fill the available width
	fitShrink            // shrink to content, up to the available width
	fitExact             // the margin box spans exactly the available width
)

type engine struct {
	fonts *faces
}

// build converts a render tree into boxes. Hidden elements generate nothing.
func (e *engine) build(n *render.Node, styles render.Styles) (*box, error) {
	cs := styles[n]
	if cs == nil || cs.Hidden() {
		return nil, nil
	}
	b := &box{node: n, cs: cs}
	if n.Tag == "img" {
		src, _ := n.Get("src")
		img, err := decodeSource(src)
		if err != nil {
			return nil, err
		}
		b.kind, b.img = kindImage, img
		return b, nil
	}
	for _, c := range n.Children {
		if c.IsText() {
			b.kids = append(b.kids, &box{cs: cs, kind: kindText, text: c.Text})
			continue
		}
		k, err := e.build(c, styles)
		if err != nil {
			return nil, err
		}
		if k != nil {
			b.kids = append(b.kids, k)
		}
	}
	switch {
	case cs.FlexContainer():
		b.kind = kindFlex
		b.kids = itemize(b)
	case cs.GridContainer():
		b.kind = kindGrid
		b.kids = itemize(b)
	default:
		b.kind = group(b)
	}
	return b, nil
}

// itemize wraps loose text of a flex or grid container into anonymous
// items and drops whitespace between items.
func itemize(b *box) []*box {
	out := make([]*box, 0, len(b.kids))
	for _, k := range b.kids {
		if k.kind != kindText {
			out = append(out, k)
			continue
		}
		if strings.TrimSpace(k.text) == "" {
			continue
		}
		out = append(out, &box{cs: b.cs.Child("div"), kind: kindInline, kids: []*box{k}})
	}
	return out
}

// group decides whether a block container holds lines or blocks. Runs of
// inline content between blocks are wrapped in anonymous inline boxes.
func group(b *box) kind {
	blocks := false
	for _, k := range b.kids {
		if !k.cs.Absolute() && !k.inlineLevel() {
			blocks = true
			break
		}
	}
	if !blocks {
		for _, k := range b.kids {
			if !k.cs.Absolute() {
				return kindInline
			}
		}
		return kindBlock
	}

	out := make([]*box, 0, len(b.kids))
	var run []*box
	flush := func() {
		blank := true
		for _, k := range run {
			if k.kind != kindText || strings.TrimSpace(k.text) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, &box{cs: b.cs.Child("div"), kind: kindInline, kids: run})
		}
		run = nil
	}
	for _, k := range b.kids {
		if k.inlineLevel() && !k.cs.Absolute() {
			run = append(run, k)
			continue
		}
		flush()
		out = append(out, k)
	}
	flush()
	b.kids = out
	return kindBlock
}

// place lays b out with its margin box starting at (x, y) inside a
// containing block avail pixels wide.
func (e *engine) place(b *box, x, y, avail float64, mode fit) {
	cs := b.cs
	mt, mr, mb, ml := cs.Margin.Px(avail)
	bt, br, bb, bl := cs.BorderWidths()
	pt, pr, pb, pl := cs.Padding.Px(avail)
	frame := bl + br + pl + pr

	width, sized := cs.Width.Resolve(avail)
	var w float64
	switch {
	case mode == fitExact:
		w = avail - ml - mr
	case sized:
		w = width
	case mode == fitShrink || b.kind == kindImage:
		w = math.Min(e.maxContent(b)-ml-mr, avail-ml-mr)
	default:
		w = avail - ml - mr
	}
	maxW, capped := cs.MaxWidth.Resolve(avail)
	if capped && w > maxW {
		w = maxW
	}
	w = math.Max(w, frame)

	if mode != fitExact && (sized || capped) && cs.Margin.Left.IsAuto() && cs.Margin.Right.IsAuto() {
		free := math.Max(avail-w, 0)
		ml, mr = free/2, free/2
	}

	b.m = [4]float64{mt, mr, mb, ml}
	b.x, b.y, b.w = x+ml, y+mt, w
	b.lines = nil

	cx, cy := b.x+bl+pl, b.y+bt+pt
	cw := math.Max(w-frame, 0)
	var ch float64
	switch b.kind {
	case kindInline:
		ch = e.inline(b, cx, cy, cw)
	case kindFlex:
		ch = e.flex(b, cx, cy, cw)
	case kindGrid:
		ch = e.grid(b, cx, cy, cw)
	case kindImage:
		ch = e.imageHeight(b, cw)
	default:
		ch = e.blocks(b, cx, cy, cw)
	}

	if cs.Height.Unit == style.Px {
		b.h = cs.Height.Value
	} else {
		b.h = ch + bt + bb + pt + pb
	}
	b.h = math.Max(b.h, bt+bb+pt+pb)
	e.absolutes(b)
}

func (e *engine) blocks(b *box, cx, cy, cw float64) float64 {
	y := cy
	for _, k := range b.kids {
		if k.cs.Absolute() {
			continue
		}
		e.place(k, cx, y, cw, fitFill)
		y = k.y + k.h + k.m[style.Bottom]
	}
	return y - cy
}

func (e *engine) imageHeight(b *box, cw float64) float64 {
	if b.cs.Height.Unit == style.Px {
		return b.cs.Height.Value
	}
	size := b.img.Bounds().Size()
	if size.X == 0 {
		return 0
	}
	return cw * float64(size.Y) / float64(size.X)
}

// absolutes positions out-of-flow children against b's padding box.
func (e *engine) absolutes(b *box) {
	bt, br, bb, bl := b.cs.BorderWidths()
	px, py := b.x+bl, b.y+bt
	pw, ph := b.w-bl-br, b.h-bt-bb
	for _, k := range b.kids {
		cs := k.cs
		if !cs.Absolute() {
			continue
		}
		e.place(k, 0, 0, pw, fitShrink)
		var x, y float64
		if l, ok := cs.Left.Resolve(pw); ok {
			x = px + l + k.m[style.Left]
		} else if r, ok := cs.Right.Resolve(pw); ok {
			x = px + pw - r - k.w - k.m[style.Right]
		} else {
			x = px + k.m[style.Left]
		}
		if t, ok := cs.Top.Resolve(ph); ok {
			y = py + t + k.m[style.Top]
		} else if bo, ok := cs.Bottom.Resolve(ph); ok {
			y = py + ph - bo - k.h - k.m[style.Bottom]
		} else {
			y = py + k.m[style.Top]
		}
		k.shift(x-k.x, y-k.y)
	}
}

// maxContent is the margin-box width of b laid out without wrapping.
func (e *engine) maxContent(b *box) float64 {
	cs := b.cs
	if b.kind == kindText {
		return e.fonts.width(cs, strings.Join(strings.Fields(transformText(b.text, cs.TextTransform)), " "))
	}
	_, mr, _, ml := cs.Margin.Px(0)
	if cs.Width.Unit == style.Px {
		return cs.Width.Value + ml + mr
	}
	_, br, _, bl := cs.BorderWidths()
	_, pr, _, pl := cs.Padding.Px(0)

	var inner float64
	switch b.kind {
	case kindImage:
		size := b.img.Bounds().Size()
		inner = float64(size.X)
		if cs.Height.Unit == style.Px && size.Y > 0 {
			inner = cs.Height.Value * float64(size.X) / float64(size.Y)
		}
	case kindInline:
		var line float64
		for _, it := range e.collect(b, nil) {
			switch {
			case it.br:
				inner, line = math.Max(inner, line), 0
			case it.atom != nil:
				line += e.maxContent(it.atom)
			default:
				line += it.w
			}
		}
		inner = math.Max(inner, line)
	case kindFlex:
		items := inflow(b.kids)
		_, gap := cs.Gaps(0, 0)
		column := strings.HasPrefix(cs.FlexDirection, "column")
		for i, k := range items {
			w := e.maxContent(k)
			switch {
			case column:
				inner = math.Max(inner, w)
			case i > 0:
				inner += gap + w
			default:
				inner += w
			}
		}
	case kindGrid:
		items := inflow(b.kids)
		tracks := columns(cs)
		_, gap := cs.Gaps(0, 0)
		for i, t := range tracks {
			w := t.Fixed.Or(0, 0)
			if t.Fr > 0 || t.Fixed.IsAuto() {
				w = 0
				for j := i; j < len(items); j += len(tracks) {
					w = math.Max(w, e.maxContent(items[j]))
				}
			}
			inner += w
		}
		if len(tracks) > 1 {
			inner += gap * float64(len(tracks)-1)
		}
	default:
		for _, k := range inflow(b.kids) {
			inner = math.Max(inner, e.maxContent(k))
		}
	}
	w := inner + bl + br + pl + pr
	if cs.MaxWidth.Unit == style.Px {
		w = math.Min(w, cs.MaxWidth.Value)
	}
	return w + ml + mr
}
