package style

import (
	"fmt"
	"maps"
	"strings"
)

// Rule is what a utility class contributes: declarations for the element
// carrying the class, and declarations for each of its children except the
// first (the "space-y" family).
type Rule struct {
	Self     Declarations
	Siblings Declarations
}

// Sheet maps utility class names to rules. It is immutable after creation
// and safe for concurrent use.
type Sheet struct {
	rules map[string]Rule
}

// NewSheet builds a sheet from CSS text keyed by class name.
func NewSheet(self, siblings map[string]string) (*Sheet, error) {
	rules := make(map[string]Rule, len(self)+len(siblings))
	for class, css := range self {
		d, err := Parse(css)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", class, err)
		}
		r := rules[class]
		r.Self = d
		rules[class] = r
	}
	for class, css := range siblings {
		d, err := Parse(css)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", class, err)
		}
		r := rules[class]
		r.Siblings = d
		rules[class] = r
	}
	return &Sheet{rules: rules}, nil
}

// Extend returns a new sheet with extra classes layered on top of s.
func (s *Sheet) Extend(self, siblings map[string]string) (*Sheet, error) {
	extra, err := NewSheet(self, siblings)
	if err != nil {
		return nil, err
	}
	rules := maps.Clone(s.rules)
	maps.Copy(rules, extra.rules)
	return &Sheet{rules: rules}, nil
}

// Resolve returns the combined declarations of a space separated class list,
// in class order. Unknown classes are ignored.
func (s *Sheet) Resolve(class string) (self, siblings Declarations) {
	for _, name := range strings.Fields(class) {
		r, ok := s.rules[name]
		if !ok {
			continue
		}
		self = append(self, r.Self...)
		siblings = append(siblings, r.Siblings...)
	}
	return self, siblings
}

// Known reports whether the class has a rule.
func (s *Sheet) Known(class string) bool {
	_, ok := s.rules[class]
	return ok
}

var utilities = mustSheet(map[string]string{
	// layout
	"block":         "display: block",
	"inline":        "display: inline",
	"inline-block":  "display: inline-block",
	"flex":          "display: flex",
	"inline-flex":   "display: inline-flex",
	"grid":          "display: grid",
	"hidden":        "display: none",
	"flex-col":      "flex-direction: column",
	"flex-row":      "flex-direction: row",
	"flex-wrap":     "flex-wrap: wrap",
	"flex-1":        "flex: 1 1 0%",
	"shrink-0":      "flex-shrink: 0",
	"items-center":  "align-items: center",
	"items-start":   "align-items: flex-start",
	"items-end":     "align-items: flex-end",
	"justify-center":  "justify-content: center",
	"justify-between": "justify-content: space-between",
	"justify-end":     "justify-content: flex-end",
	"grid-cols-2":     "grid-template-columns: repeat(2, minmax(0, 1fr))",
	"grid-cols-3":     "grid-template-columns: repeat(3, minmax(0, 1fr))",
	"grid-cols-auto-1fr": "grid-template-columns: auto 1fr",
	"relative":        "position: relative",
	"absolute":        "position: absolute",
	"overflow-hidden": "overflow: hidden",
	"truncate":        "overflow: hidden; white-space: nowrap",
	"whitespace-nowrap": "white-space: nowrap",

	// spacing
	"p-1":  "padding: 4px",
	"p-2":  "padding: 8px",
	"p-3":  "padding: 12px",
	"p-4":  "padding: 16px",
	"p-6":  "padding: 24px",
	"px-3": "padding-left: 12px; padding-right: 12px",
	"py-2": "padding-top: 8px; padding-bottom: 8px",
	"py-6": "padding-top: 24px; padding-bottom: 24px",
	"pl-4": "padding-left: 16px",
	"pt-1": "padding-top: 4px",
	"pt-2": "padding-top: 8px",
	"pb-4": "padding-bottom: 16px",
	"mt-1": "margin-top: 4px",
	"mt-2": "margin-top: 8px",
	"mb-4": "margin-bottom: 16px",
	"ml-2": "margin-left: 8px",
	"mx-2": "margin-left: 8px; margin-right: 8px",
	"mx-auto": "margin-left: auto; margin-right: auto",
	"gap-1":   "gap: 4px",
	"gap-2":   "gap: 8px",
	"gap-3":   "gap: 12px",
	"gap-4":   "gap: 16px",
	"gap-6":   "gap: 24px",
	"gap-x-6": "column-gap: 24px",
	"gap-y-2": "row-gap: 8px",

	// sizing
	"w-3":    "width: 12px",
	"h-3":    "height: 12px",
	"w-4":    "width: 16px",
	"h-4":    "height: 16px",
	"w-10":   "width: 40px",
	"h-10":   "height: 40px",
	"w-12":   "width: 48px",
	"h-12":   "height: 48px",
	"w-16":   "width: 64px",
	"h-16":   "height: 64px",
	"w-20":   "width: 80px",
	"h-20":   "height: 80px",
	"w-24":   "width: 96px",
	"h-24":   "height: 96px",
	"h-1":    "height: 4px",
	"h-px":   "height: 1px",
	"w-full": "width: 100%",

	// typography
	"text-xs":   "font-size: 12px; line-height: 16px",
	"text-sm":   "font-size: 14px; line-height: 20px",
	"text-base": "font-size: 16px; line-height: 24px",
	"text-lg":   "font-size: 18px; line-height: 28px",
	"text-xl":   "font-size: 20px; line-height: 28px",
	"text-2xl":  "font-size: 24px; line-height: 32px",
	"font-light":    "font-weight: 300",
	"font-normal":   "font-weight: 400",
	"font-medium":   "font-weight: 500",
	"font-semibold": "font-weight: 600",
	"font-bold":     "font-weight: 700",
	"italic":        "font-style: italic",
	"uppercase":     "text-transform: uppercase",
	"normal-case":   "text-transform: none",
	"tracking-tight":   "letter-spacing: -0.025em",
	"tracking-wide":    "letter-spacing: 0.025em",
	"tracking-widest":  "letter-spacing: 0.1em",
	"text-center":      "text-align: center",
	"underline":        "text-decoration: underline",
	"no-underline":     "text-decoration: none",
	"text-gray-400":    "color: #9ca3af",
	"text-gray-500":    "color: #6b7280",
	"text-gray-600":    "color: #4b5563",
	"font-roboto-mono": "font-family: 'Roboto Mono', monospace",
	"font-inter":       "font-family: 'Inter', sans-serif",
	"font-playfair":    "font-family: 'Playfair Display', serif",
	"font-montserrat":  "font-family: 'Montserrat', sans-serif",

	// decoration
	"rounded":      "border-radius: 4px",
	"rounded-md":   "border-radius: 6px",
	"rounded-lg":   "border-radius: 8px",
	"rounded-xl":   "border-radius: 12px",
	"rounded-2xl":  "border-radius: 16px",
	"rounded-full": "border-radius: 9999px",
	"border":       "border-width: 1px",
	"border-2":     "border-width: 2px",
	"border-l":     "border-left-width: 1px",
	"border-b":     "border-bottom-width: 1px",
	"border-t":     "border-top-width: 1px",
	"bg-white-50":  "background-color: rgba(255, 255, 255, 0.5)",
	"opacity-10":   "opacity: 0.1",
	"opacity-20":   "opacity: 0.2",
	"opacity-30":   "opacity: 0.3",
}, map[string]string{
	"space-y-1": "margin-top: 4px",
	"space-y-2": "margin-top: 8px",
	"space-y-3": "margin-top: 12px",
	"space-y-4": "margin-top: 16px",
})

// Utilities returns the built-in utility class sheet.
func Utilities() *Sheet {
	return utilities
}

func mustSheet(self, siblings map[string]string) *Sheet {
	s, err := NewSheet(self, siblings)
	if err != nil {
		panic(err)
	}
	return s
}
