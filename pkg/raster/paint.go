package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/dmitrymomot/sigkit/pkg/style"
)

// painter draws laid out boxes onto a gg context scaled by the pixel ratio.
type painter struct {
	dc    *gg.Context
	scale float64
	fonts *faces
	mask  *image.Alpha
}

func (p *painter) s(v float64) float64 { return v * p.scale }

func (p *painter) box(b *box) {
	switch {
	case b.cs.Opacity <= 0:
	case b.cs.Opacity < 1:
		p.layer(b)
	default:
		p.paint(b)
	}
}

// paint draws a box and its descendants. Positioned children are painted
// after the in-flow ones, in tree order.
func (p *painter) paint(b *box) {
	p.background(b)
	p.borders(b)
	if b.kind == kindImage {
		p.image(b)
		return
	}

	clipped := b.cs.Overflow == "hidden" || b.cs.Overflow == "clip"
	saved := p.mask
	if clipped {
		p.clip(b.x, b.y, b.w, b.h, b.cs.Radius)
	}

	if b.kind == kindInline {
		for _, l := range b.lines {
			for _, f := range l.frags {
				p.text(f)
			}
			for _, a := range l.atoms {
				p.box(a)
			}
		}
	} else {
		for _, k := range b.kids {
			if !k.positioned() {
				p.box(k)
			}
		}
		for _, k := range b.kids {
			if k.positioned() && !k.cs.Absolute() {
				p.box(k)
			}
		}
	}
	for _, k := range b.kids {
		if k.cs.Absolute() {
			p.box(k)
		}
	}

	if clipped {
		p.restore(saved)
	}
}

// layer paints a translucent box into its own buffer and composites it.
func (p *painter) layer(b *box) {
	sub := &painter{
		dc:    gg.NewContext(p.dc.Width(), p.dc.Height()),
		scale: p.scale,
		fonts: p.fonts,
	}
	if p.mask != nil {
		sub.restore(p.mask)
	}
	sub.paint(b)

	dst, ok := p.dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	alpha := image.NewUniform(color.Alpha{A: uint8(math.Round(b.cs.Opacity * 255))})
	draw.DrawMask(dst, dst.Bounds(), sub.dc.Image(), image.Point{}, alpha, image.Point{}, draw.Over)
}

// clip intersects the current clip with a rounded rectangle.
func (p *painter) clip(x, y, w, h, r float64) {
	mc := gg.NewContext(p.dc.Width(), p.dc.Height())
	mc.SetColor(color.White)
	p.path(mc, x, y, w, h, r)
	mc.Fill()
	mask := mc.AsMask()
	if p.mask != nil {
		for i := range mask.Pix {
			mask.Pix[i] = uint8(uint16(mask.Pix[i]) * uint16(p.mask.Pix[i]) / 255)
		}
	}
	p.restore(mask)
}

func (p *painter) restore(mask *image.Alpha) {
	p.mask = mask
	if mask == nil {
		p.dc.ResetClip()
		return
	}
	_ = p.dc.SetMask(mask)
}

// path adds a rectangle with the radius clamped to half the shorter side.
func (p *painter) path(dc *gg.Context, x, y, w, h, r float64) {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		dc.DrawRectangle(p.s(x), p.s(y), p.s(w), p.s(h))
		return
	}
	dc.DrawRoundedRectangle(p.s(x), p.s(y), p.s(w), p.s(h), p.s(r))
}

func (p *painter) background(b *box) {
	if b.w <= 0 || b.h <= 0 {
		return
	}
	if bg := b.cs.Background; !bg.IsTransparent() {
		p.dc.SetColor(bg.NRGBA())
		p.path(p.dc, b.x, b.y, b.w, b.h, b.cs.Radius)
		p.dc.Fill()
	}
	if g := b.cs.Gradient; g != nil && len(g.Stops) > 0 {
		x0, y0, x1, y1 := g.Line(b.w, b.h)
		grad := gg.NewLinearGradient(p.s(b.x+x0), p.s(b.y+y0), p.s(b.x+x1), p.s(b.y+y1))
		for _, st := range g.Stops {
			grad.AddColorStop(st.Offset, st.Color.NRGBA())
		}
		p.dc.SetFillStyle(grad)
		p.path(p.dc, b.x, b.y, b.w, b.h, b.cs.Radius)
		p.dc.Fill()
	}
}

func (p *painter) borders(b *box) {
	t, r, bo, l := b.cs.BorderWidths()
	if t+r+bo+l == 0 {
		return
	}
	sides := b.cs.Border
	if t == r && r == bo && bo == l && sides[style.Top] == sides[style.Right] &&
		sides[style.Right] == sides[style.Bottom] && sides[style.Bottom] == sides[style.Left] {
		if !sides[style.Top].Visible() {
			return
		}
		p.dc.SetColor(sides[style.Top].Color.NRGBA())
		p.dc.SetLineWidth(p.s(t))
		p.path(p.dc, b.x+t/2, b.y+t/2, b.w-t, b.h-t, math.Max(b.cs.Radius-t/2, 0))
		p.dc.Stroke()
		return
	}
	rect := func(side style.Side, x, y, w, h float64) {
		if !sides[side].Visible() || w <= 0 || h <= 0 {
			return
		}
		p.dc.SetColor(sides[side].Color.NRGBA())
		p.dc.DrawRectangle(p.s(x), p.s(y), p.s(w), p.s(h))
		p.dc.Fill()
	}
	rect(style.Top, b.x, b.y, b.w, t)
	rect(style.Right, b.x+b.w-r, b.y, r, b.h)
	rect(style.Bottom, b.x, b.y+b.h-bo, b.w, bo)
	rect(style.Left, b.x, b.y, l, b.h)
}

func (p *painter) image(b *box) {
	bt, br, bb, bl := b.cs.BorderWidths()
	pt, pr, pb, pl := b.cs.Padding.Px(b.w)
	x, y := b.x+bl+pl, b.y+bt+pt
	w := int(math.Round(p.s(b.w - bl - br - pl - pr)))
	h := int(math.Round(p.s(b.h - bt - bb - pt - pb)))
	if w <= 0 || h <= 0 {
		return
	}

	var img image.Image
	offX, offY := 0, 0
	switch b.cs.ObjectFit {
	case "cover":
		img = imaging.Fill(b.img, w, h, imaging.Center, imaging.Lanczos)
	case "contain", "scale-down":
		img = imaging.Fit(b.img, w, h, imaging.Lanczos)
		size := img.Bounds().Size()
		offX, offY = (w-size.X)/2, (h-size.Y)/2
	default:
		img = imaging.Resize(b.img, w, h, imaging.Lanczos)
	}

	saved := p.mask
	if b.cs.Radius > 0 {
		p.clip(b.x, b.y, b.w, b.h, b.cs.Radius)
	}
	p.dc.DrawImage(img, int(math.Round(p.s(x)))+offX, int(math.Round(p.s(y)))+offY)
	if b.cs.Radius > 0 {
		p.restore(saved)
	}
}

func (p *painter) text(f frag) {
	cs := f.cs
	if cs.Color.IsTransparent() || strings.TrimSpace(f.text) == "" {
		return
	}
	p.dc.SetFontFace(p.fonts.face(cs, p.scale))
	p.dc.SetColor(cs.Color.NRGBA())
	s := p.fonts.printable(cs, f.text)
	if cs.LetterSpacing == 0 {
		p.dc.DrawString(s, p.s(f.x), p.s(f.baseline))
	} else {
		x := f.x
		for _, r := range s {
			g := string(r)
			p.dc.DrawString(g, p.s(x), p.s(f.baseline))
			x += p.fonts.width(cs, g)
		}
	}

	thick := math.Max(1, cs.FontSize/16)
	if strings.Contains(cs.TextDecoration, "underline") {
		p.dc.DrawRectangle(p.s(f.x), p.s(f.baseline+thick), p.s(f.w), p.s(thick))
		p.dc.Fill()
	}
	if strings.Contains(cs.TextDecoration, "line-through") {
		mid := f.baseline - cs.FontSize*0.3
		p.dc.DrawRectangle(p.s(f.x), p.s(mid), p.s(f.w), p.s(thick))
		p.dc.Fill()
	}
}
