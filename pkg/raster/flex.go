package raster

import (
	"math"
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/style"
)

func (e *engine) flex(b *box, cx, cy, cw float64) float64 {
	items := inflow(b.kids)
	if len(items) == 0 {
		return 0
	}
	rowGap, colGap := b.cs.Gaps(cw, 0)
	if strings.HasPrefix(b.cs.FlexDirection, "column") {
		return e.flexColumn(b, items, cx, cy, cw, rowGap)
	}

	bases := make([]float64, len(items))
	for i, it := range items {
		bases[i] = e.flexBasis(it, cw)
	}

	var rows [][]int
	var cur []int
	used := 0.0
	for i := range items {
		gap := 0.0
		if len(cur) > 0 {
			gap = colGap
		}
		if b.cs.FlexWrap == "wrap" && len(cur) > 0 && used+gap+bases[i] > cw+0.01 {
			rows = append(rows, cur)
			cur, used, gap = nil, 0, 0
		}
		cur = append(cur, i)
		used += gap + bases[i]
	}
	rows = append(rows, cur)

	y := cy
	for r, row := range rows {
		if r > 0 {
			y += rowGap
		}
		sizes := make([]float64, len(row))
		total := colGap * float64(len(row)-1)
		var grow, shrink float64
		for j, i := range row {
			sizes[j] = bases[i]
			total += bases[i]
			grow += items[i].cs.FlexGrow
			shrink += items[i].cs.FlexShrink * bases[i]
		}
		free := cw - total
		switch {
		case free > 0 && grow > 0:
			for j, i := range row {
				sizes[j] += free * items[i].cs.FlexGrow / grow
			}
			free = 0
		case free < 0 && shrink > 0:
			for j, i := range row {
				sizes[j] += free * items[i].cs.FlexShrink * bases[i] / shrink
				sizes[j] = math.Max(sizes[j], frameW(items[i].cs))
			}
			free = 0
		}

		start, between := justify(b.cs.JustifyContent, math.Max(free, 0), len(row))
		x := cx + start
		cross := 0.0
		for j, i := range row {
			e.place(items[i], x, y, sizes[j], fitExact)
			x += sizes[j] + colGap + between
			cross = math.Max(cross, items[i].marginH())
		}
		if len(rows) == 1 && b.cs.Height.Unit == style.Px {
			bt, _, bb, _ := b.cs.BorderWidths()
			pt, _, pb, _ := b.cs.Padding.Px(cw)
			cross = math.Max(cross, b.cs.Height.Value-bt-bb-pt-pb)
		}
		for _, i := range row {
			align(items[i], b.cs.AlignItems, cross)
		}
		y += cross
	}
	return y - cy
}

func (e *engine) flexColumn(b *box, items []*box, cx, cy, cw, gap float64) float64 {
	mode := fitFill
	switch b.cs.AlignItems {
	case "center", "flex-start", "start", "flex-end", "end", "baseline":
		mode = fitShrink
	}
	y := cy
	for i, it := range items {
		if i > 0 {
			y += gap
		}
		e.place(it, cx, y, cw, mode)
		switch b.cs.AlignItems {
		case "center":
			it.shift((cw-it.marginW())/2, 0)
		case "flex-end", "end":
			it.shift(cw-it.marginW(), 0)
		}
		y = it.y + it.h + it.m[style.Bottom]
	}
	return y - cy
}

// flexBasis is the hypothetical main size of an item's margin box.
func (e *engine) flexBasis(it *box, cw float64) float64 {
	_, mr, _, ml := it.cs.Margin.Px(cw)
	if v, ok := it.cs.FlexBasis.Resolve(cw); ok {
		return math.Max(v, frameW(it.cs)) + ml + mr
	}
	if v, ok := it.cs.Width.Resolve(cw); ok {
		return v + ml + mr
	}
	return e.maxContent(it)
}

func (e *engine) grid(b *box, cx, cy, cw float64) float64 {
	items := inflow(b.kids)
	if len(items) == 0 {
		return 0
	}
	tracks := columns(b.cs)
	n := len(tracks)
	rowGap, colGap := b.cs.Gaps(cw, 0)

	widths := make([]float64, n)
	free := cw - colGap*float64(n-1)
	var frs float64
	for i, t := range tracks {
		switch {
		case t.Fr > 0:
			frs += t.Fr
			continue
		case !t.Fixed.IsAuto():
			widths[i] = t.Fixed.Or(cw, 0)
		default:
			for j := i; j < len(items); j += n {
				widths[i] = math.Max(widths[i], e.maxContent(items[j]))
			}
		}
		free -= widths[i]
	}
	if frs > 0 {
		for i, t := range tracks {
			if t.Fr > 0 {
				widths[i] = math.Max(free, 0) * t.Fr / frs
			}
		}
	}

	y := cy
	for r := 0; r*n < len(items); r++ {
		if r > 0 {
			y += rowGap
		}
		row := items[r*n : min(len(items), (r+1)*n)]
		x, height := cx, 0.0
		for i, it := range row {
			e.place(it, x, y, widths[i], fitExact)
			x += widths[i] + colGap
			height = math.Max(height, it.marginH())
		}
		for _, it := range row {
			align(it, b.cs.AlignItems, height)
		}
		y += height
	}
	return y - cy
}

func columns(cs *style.Computed) []style.Track {
	if len(cs.GridColumns) == 0 {
		return []style.Track{{Fr: 1}}
	}
	return cs.GridColumns
}

// align positions an item on the cross axis of a line cross pixels tall.
// Stretched items without an explicit height grow to fill the line.
func align(it *box, mode string, cross float64) {
	gap := cross - it.marginH()
	switch mode {
	case "center":
		it.shift(0, gap/2)
	case "flex-end", "end":
		it.shift(0, gap)
	case "flex-start", "start", "baseline":
	default:
		if it.cs.Height.IsAuto() && gap > 0 {
			it.h += gap
		}
	}
}

// justify returns the leading offset and the extra space between items.
func justify(mode string, free float64, n int) (start, between float64) {
	switch mode {
	case "center":
		return free / 2, 0
	case "flex-end", "end", "right":
		return free, 0
	case "space-between":
		if n > 1 {
			return 0, free / float64(n-1)
		}
	case "space-around":
		return free / float64(2*n), free / float64(n)
	case "space-evenly":
		return free / float64(n+1), free / float64(n+1)
	}
	return 0, 0
}

func frameW(cs *style.Computed) float64 {
	_, br, _, bl := cs.BorderWidths()
	_, pr, _, pl := cs.Padding.Px(0)
	return bl + br + pl + pr
}
