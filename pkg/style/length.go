package style

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the unit of a resolved length.
type Unit uint8

const (
	Auto Unit = iota
	Px
	Percent
)

// RootFontSize is the font size rem units resolve against.
const RootFontSize = 16.0

// Length is a resolved CSS length: auto, pixels or a percentage.
type Length struct {
	Value float64
	Unit  Unit
}

// Pixels returns a pixel length.
func Pixels(v float64) Length { return Length{Value: v, Unit: Px} }

// Pct returns a percentage length.
func Pct(v float64) Length { return Length{Value: v, Unit: Percent} }

// AutoLength is the "auto" keyword.
var AutoLength = Length{}

// ParseLength parses px, rem, em, % and unitless zero values.
// Em units resolve against fontSize.
func ParseLength(s string, fontSize float64) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "auto":
		return AutoLength, nil
	case "0":
		return Pixels(0), nil
	}
	num := func(v string) (float64, error) {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
		}
		return f, nil
	}
	switch {
	case strings.HasSuffix(s, "px"):
		v, err := num(strings.TrimSuffix(s, "px"))
		return Pixels(v), err
	case strings.HasSuffix(s, "rem"):
		v, err := num(strings.TrimSuffix(s, "rem"))
		return Pixels(v * RootFontSize), err
	case strings.HasSuffix(s, "em"):
		v, err := num(strings.TrimSuffix(s, "em"))
		return Pixels(v * fontSize), err
	case strings.HasSuffix(s, "%"):
		v, err := num(strings.TrimSuffix(s, "%"))
		return Pct(v), err
	}
	return AutoLength, fmt.Errorf("%w: %q", ErrInvalidLength, s)
}

// IsAuto reports whether l is "auto".
func (l Length) IsAuto() bool { return l.Unit == Auto }

// Resolve returns the pixel value against the given reference size.
// The boolean is false for auto.
func (l Length) Resolve(ref float64) (float64, bool) {
	switch l.Unit {
	case Px:
		return l.Value, true
	case Percent:
		return ref * l.Value / 100, true
	}
	return 0, false
}

// Or resolves l and falls back to def for auto.
func (l Length) Or(ref, def float64) float64 {
	if v, ok := l.Resolve(ref); ok {
		return v
	}
	return def
}

// CSS serializes the length.
func (l Length) CSS() string {
	switch l.Unit {
	case Px:
		return formatNumber(l.Value) + "px"
	case Percent:
		return formatNumber(l.Value) + "%"
	}
	return "auto"
}

// Edges holds one length per box side.
type Edges struct {
	Top, Right, Bottom, Left Length
}

// Uniform returns edges with the same length on every side.
func Uniform(l Length) Edges {
	return Edges{Top: l, Right: l, Bottom: l, Left: l}
}

// ParseEdges parses a one to four value shorthand such as "8px 16px".
func ParseEdges(s string, fontSize float64) (Edges, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 || len(parts) > 4 {
		return Edges{}, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	vals := make([]Length, len(parts))
	for i, p := range parts {
		l, err := ParseLength(p, fontSize)
		if err != nil {
			return Edges{}, err
		}
		vals[i] = l
	}
	switch len(vals) {
	case 1:
		return Uniform(vals[0]), nil
	case 2:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	}
	return Edges{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
}

// Px resolves every side against ref, mapping auto to zero.
func (e Edges) Px(ref float64) (top, right, bottom, left float64) {
	return e.Top.Or(ref, 0), e.Right.Or(ref, 0), e.Bottom.Or(ref, 0), e.Left.Or(ref, 0)
}

// CSS serializes the edges in the shortest shorthand form.
func (e Edges) CSS() string {
	t, r, b, l := e.Top.CSS(), e.Right.CSS(), e.Bottom.CSS(), e.Left.CSS()
	switch {
	case t == r && r == b && b == l:
		return t
	case t == b && r == l:
		return t + " " + r
	case r == l:
		return t + " " + r + " " + b
	}
	return t + " " + r + " " + b + " " + l
}

func formatNumber(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
