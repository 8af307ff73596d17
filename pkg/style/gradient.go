package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Stop is a gradient color stop at an offset in [0, 1].
type Stop struct {
	Color  Color
	Offset float64
}

// Gradient is a linear gradient. Angle follows CSS: 0deg points up and
// angles grow clockwise.
type Gradient struct {
	Angle float64
	Stops []Stop
}

var sideAngles = map[string]float64{
	"to top":    0,
	"to right":  90,
	"to bottom": 180,
	"to left":   270,
}

// ParseGradient parses a linear-gradient() expression.
func ParseGradient(s string) (*Gradient, error) {
	s = strings.TrimSpace(s)
	inner, ok := strings.CutPrefix(strings.ToLower(s), "linear-gradient(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGradient, s)
	}
	args := splitTopLevel(strings.TrimSuffix(inner, ")"))
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGradient, s)
	}

	g := &Gradient{Angle: 180}
	if a, ok := parseAngle(args[0]); ok {
		g.Angle = a
		args = args[1:]
	}
	if len(args) < 2 {
		return nil, fmt.Errorf("%w: need two stops in %q", ErrInvalidGradient, s)
	}

	offsets := make([]float64, len(args))
	for i, arg := range args {
		colorPart, offset := arg, math.NaN()
		if idx := strings.LastIndexByte(arg, ' '); idx > 0 && strings.HasSuffix(arg, "%") && !strings.HasSuffix(arg, ")") {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(arg[idx+1:], "%"), 64); err == nil {
				colorPart, offset = strings.TrimSpace(arg[:idx]), v/100
			}
		}
		c, err := ParseColor(colorPart)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidGradient, err)
		}
		g.Stops = append(g.Stops, Stop{Color: c})
		offsets[i] = offset
	}
	last := len(offsets) - 1
	if math.IsNaN(offsets[0]) {
		offsets[0] = 0
	}
	if math.IsNaN(offsets[last]) {
		offsets[last] = 1
	}
	for i := 1; i < last; i++ {
		if math.IsNaN(offsets[i]) {
			offsets[i] = offsets[0] + (offsets[last]-offsets[0])*float64(i)/float64(last)
		}
	}
	for i := range g.Stops {
		g.Stops[i].Offset = clamp(offsets[i], 0, 1)
	}
	return g, nil
}

// At samples the gradient at offset t in [0, 1].
func (g *Gradient) At(t float64) Color {
	if len(g.Stops) == 0 {
		return Transparent
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t <= b.Offset {
			span := b.Offset - a.Offset
			if span <= 0 {
				return b.Color
			}
			return a.Color.Lerp(b.Color, (t-a.Offset)/span)
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

// Line returns the start and end points of the gradient line for a w×h box
// positioned at the origin.
func (g *Gradient) Line(w, h float64) (x0, y0, x1, y1 float64) {
	rad := g.Angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := w/2, h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

func parseAngle(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if a, ok := sideAngles[s]; ok {
		return a, true
	}
	if v, ok := strings.CutSuffix(s, "deg"); ok {
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

// splitTopLevel splits on commas that are not nested in parentheses.
func splitTopLevel(s string) []string {
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}
