package style

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with straight (non-premultiplied) alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{A: 1}
	White       = Color{R: 255, G: 255, B: 255, A: 1}
)

var namedColors = map[string]Color{
	"transparent": Transparent,
	"black":       Black,
	"white":       White,
	"red":         {R: 255, A: 1},
	"green":       {G: 128, A: 1},
	"blue":        {B: 255, A: 1},
	"gray":        {R: 128, G: 128, B: 128, A: 1},
	"grey":        {R: 128, G: 128, B: 128, A: 1},
	"silver":      {R: 192, G: 192, B: 192, A: 1},
	"navy":        {B: 128, A: 1},
	"orange":      {R: 255, G: 165, A: 1},
	"purple":      {R: 128, B: 128, A: 1},
	"yellow":      {R: 255, G: 255, A: 1},
}

// ParseColor parses hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb(), rgba()
// and a small set of named colors.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	}
	return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(s string) (Color, error) {
	digits := s[1:]
	alpha := 1.0
	switch len(digits) {
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(digits[3:], 2), 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		digits = digits[:3]
	case 8:
		a, err := strconv.ParseUint(digits[6:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = float64(a) / 255
		digits = digits[:6]
	}
	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, A: alpha}, nil
}

func parseRGBFunc(s string) (Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	fields := strings.FieldsFunc(s[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	var ch [3]uint8
	for i := range 3 {
		v, err := parseChannel(fields[i])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		ch[i] = v
	}
	alpha := 1.0
	if len(fields) == 4 {
		a, err := parseAlpha(fields[3])
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = a
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func parseChannel(s string) (uint8, error) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, err
		}
		return uint8(math.Round(clamp(v, 0, 100) * 2.55)), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return uint8(math.Round(clamp(v, 0, 255))), nil
}

func parseAlpha(s string) (float64, error) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, err
		}
		return clamp(v/100, 0, 1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clamp(v, 0, 1), nil
}

// IsTransparent reports whether the color has no coverage.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// Opaque reports whether the color fully covers what is below it.
func (c Color) Opaque() bool {
	return c.A >= 1
}

// CSS serializes the color the way browsers report computed colors.
func (c Color) CSS() string {
	if c.A >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
	}
	a := strconv.FormatFloat(math.Round(c.A*1000)/1000, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, a)
}

// Hex returns the #rrggbb form, ignoring alpha.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// NRGBA converts to the image/color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(clamp(c.A, 0, 1) * 255))}
}

// Fade multiplies the alpha channel by f.
func (c Color) Fade(f float64) Color {
	c.A = clamp(c.A*f, 0, 1)
	return c
}

// Lerp interpolates towards o. A fully transparent endpoint contributes only
// its alpha, which keeps fades towards "transparent" from darkening.
func (c Color) Lerp(o Color, t float64) Color {
	t = clamp(t, 0, 1)
	var rgb Color
	switch {
	case c.IsTransparent():
		rgb = o
	case o.IsTransparent():
		rgb = c
	default:
		r, g, b := c.colorful().BlendRgb(o.colorful(), t).Clamped().RGB255()
		rgb = Color{R: r, G: g, B: b}
	}
	rgb.A = c.A + (o.A-c.A)*t
	return rgb
}

// Over composites c over an opaque backdrop.
func (c Color) Over(backdrop Color) Color {
	if c.A >= 1 {
		return c
	}
	out := backdrop.Lerp(Color{R: c.R, G: c.G, B: c.B, A: 1}, c.A)
	out.A = 1
	return out
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
