package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures slug generation.
type Option func(*config)

type config struct {
	maxLength     int
	separator     string
	lowercase     bool
	customReplace map[string]string
}

func defaultConfig() *config {
	return &config{
		separator: "-",
		lowercase: true,
	}
}

// MaxLength caps the slug at n runes. The slug never ends with a separator.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the separator. Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// Lowercase controls case folding. Default is true.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// CustomReplace applies string replacements before slugification,
// e.g. {"&": "and"}.
func CustomReplace(replacements map[string]string) Option {
	return func(c *config) {
		c.customReplace = replacements
	}
}

// letters that carry no combining mark to strip
var ligatures = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "ł", "l", "Ł", "L", "đ", "d", "Đ", "D",
	"þ", "th", "Þ", "TH", "ð", "d", "Ð", "D", "ı", "i",
)

// Fold strips diacritics: "Zażółć" becomes "Zazolc".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return ligatures.Replace(out)
}

// Make creates a URL and filename safe slug. Runs of anything other than
// ASCII letters and digits collapse into one separator.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	for old, repl := range cfg.customReplace {
		s = strings.ReplaceAll(s, old, repl)
	}
	s = Fold(s)

	var b strings.Builder
	b.Grow(len(s))
	sepLen := len([]rune(cfg.separator))
	count := 0
	pending := false

	for _, r := range s {
		if cfg.lowercase {
			r = unicode.ToLower(r)
		}
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			pending = count > 0
			continue
		}
		need := 1
		if pending {
			need += sepLen
		}
		if cfg.maxLength > 0 && count+need > cfg.maxLength {
			break
		}
		if pending {
			b.WriteString(cfg.separator)
			pending = false
		}
		b.WriteRune(r)
		count += need
	}
	return b.String()
}
