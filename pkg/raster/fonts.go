package raster

import (
	"strings"
	"sync"
	"unicode"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/sigkit/pkg/style"
)

// goFonts parses the embedded Go font family once. Web fonts named by the
// templates are mapped onto it by weight, slant and pitch.
var goFonts = sync.OnceValue(func() map[string]*truetype.Font {
	ttfs := map[string][]byte{
		"regular":        goregular.TTF,
		"italic":         goitalic.TTF,
		"medium":         gomedium.TTF,
		"mediumitalic":   gomediumitalic.TTF,
		"bold":           gobold.TTF,
		"bolditalic":     gobolditalic.TTF,
		"mono":           gomono.TTF,
		"monoitalic":     gomonoitalic.TTF,
		"monobold":       gomonobold.TTF,
		"monobolditalic": gomonobolditalic.TTF,
	}
	out := make(map[string]*truetype.Font, len(ttfs))
	for name, ttf := range ttfs {
		f, err := truetype.Parse(ttf)
		if err != nil {
			panic("raster: embedded font " + name + ": " + err.Error())
		}
		out[name] = f
	}
	return out
})

// glyphFallbacks replaces symbols the Go fonts do not carry.
var glyphFallbacks = map[rune]rune{
	'➜': '>',
	'→': '>',
	'❯': '>',
	'›': '>',
	'✉': '@',
	'☎': 'T',
}

func variant(cs *style.Computed) string {
	var b strings.Builder
	mono := monospace(cs.FontFamily)
	if mono {
		b.WriteString("mono")
	}
	switch {
	case cs.FontWeight >= 600:
		b.WriteString("bold")
	case cs.FontWeight >= 500 && !mono:
		b.WriteString("medium")
	}
	if cs.FontStyle == "italic" || cs.FontStyle == "oblique" {
		b.WriteString("italic")
	}
	if b.Len() == 0 {
		return "regular"
	}
	return b.String()
}

func monospace(family string) bool {
	f := strings.ToLower(family)
	for _, m := range []string{"mono", "courier", "consolas", "menlo"} {
		if strings.Contains(f, m) {
			return true
		}
	}
	return false
}

type faceKey struct {
	variant string
	size    float64
}

// faces caches font faces for one rasterization. Faces keep glyph caches and
// must not be shared between goroutines.
type faces struct {
	cache map[faceKey]font.Face
}

func newFaces() *faces {
	return &faces{cache: make(map[faceKey]font.Face)}
}

// face returns the face for a computed style at the given scale.
func (f *faces) face(cs *style.Computed, scale float64) font.Face {
	k := faceKey{variant: variant(cs), size: cs.FontSize * scale}
	if fc, ok := f.cache[k]; ok {
		return fc
	}
	fc := truetype.NewFace(goFonts()[k.variant], &truetype.Options{
		Size:    k.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	f.cache[k] = fc
	return fc
}

// width measures s in CSS pixels, letter spacing included.
func (f *faces) width(cs *style.Computed, s string) float64 {
	s = f.printable(cs, s)
	w := float64(font.MeasureString(f.face(cs, 1), s)) / 64
	if cs.LetterSpacing != 0 {
		w += cs.LetterSpacing * float64(len([]rune(s)))
	}
	return w
}

// metrics returns the ascent and descent in CSS pixels.
func (f *faces) metrics(cs *style.Computed) (ascent, descent float64) {
	m := f.face(cs, 1).Metrics()
	return float64(m.Ascent) / 64, float64(m.Descent) / 64
}

// lineHeight resolves "normal" to the font's own line spacing.
func (f *faces) lineHeight(cs *style.Computed) float64 {
	if cs.LineHeight > 0 {
		return cs.LineHeight
	}
	return float64(f.face(cs, 1).Metrics().Height) / 64
}

// printable substitutes runes the selected font cannot draw.
func (f *faces) printable(cs *style.Computed, s string) string {
	ttf := goFonts()[variant(cs)]
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || ttf.Index(r) != 0 {
			return r
		}
		if fb, ok := glyphFallbacks[r]; ok {
			return fb
		}
		return '?'
	}, s)
}

func transformText(s, mode string) string {
	switch mode {
	case "uppercase":
		return cases.Upper(language.Und).String(s)
	case "lowercase":
		return cases.Lower(language.Und).String(s)
	case "capitalize":
		return cases.Title(language.Und, cases.NoLower).String(s)
	}
	return s
}
