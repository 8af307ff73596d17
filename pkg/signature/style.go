package signature

import "strings"

// Template selects one of the fixed visual variants.
type Template string

// Supported templates. Tech is the fallback for unknown values.
const (
	Tech     Template = "tech"
	Minimal  Template = "minimal"
	Modern   Template = "modern"
	Elegant  Template = "elegant"
	Creative Template = "creative"
	Startup  Template = "startup"

	DefaultTemplate = Tech
)

// Templates returns every supported template in picker order.
func Templates() []Template {
	return []Template{Tech, Minimal, Modern, Elegant, Creative, Startup}
}

// Valid reports whether t is a known template.
func (t Template) Valid() bool {
	switch t {
	case Tech, Minimal, Modern, Elegant, Creative, Startup:
		return true
	}
	return false
}

// OrDefault returns t when valid and DefaultTemplate otherwise.
func (t Template) OrDefault() Template {
	if t.Valid() {
		return t
	}
	return DefaultTemplate
}

// ParseTemplate maps a loosely formatted name onto a template, falling back
// to DefaultTemplate.
func ParseTemplate(s string) Template {
	return Template(strings.ToLower(strings.TrimSpace(s))).OrDefault()
}

// CatalogEntry describes a template for pickers.
type CatalogEntry struct {
	ID          Template `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// Catalog lists the templates with their picker labels.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{ID: Tech, Name: "Tech", Description: "Terminal-inspired theme"},
		{ID: Minimal, Name: "Minimal", Description: "Clean and simple"},
		{ID: Modern, Name: "Modern", Description: "Contemporary and bold"},
		{ID: Elegant, Name: "Elegant", Description: "Sophisticated and refined"},
		{ID: Creative, Name: "Creative", Description: "Unique and artistic"},
		{ID: Startup, Name: "Startup", Description: "Bold and energetic"},
	}
}

// Style is the template selection plus color scheme.
type Style struct {
	Template        Template `json:"template"`
	PrimaryColor    string   `json:"primaryColor"`
	TextColor       string   `json:"textColor"`
	BackgroundColor string   `json:"backgroundColor"`
}

// Black is the text color that switches templates to their light palette.
const Black = "#000000"

// DefaultStyle returns the initial style of a new workspace.
func DefaultStyle() Style {
	return Style{
		Template:        Tech,
		PrimaryColor:    "#6366f1",
		TextColor:       "#ffffff",
		BackgroundColor: Black,
	}
}

// Normalize fills missing colors from DefaultStyle and replaces an unknown
// template with DefaultTemplate.
func (s Style) Normalize() Style {
	def := DefaultStyle()
	s.Template = s.Template.OrDefault()
	if strings.TrimSpace(s.PrimaryColor) == "" {
		s.PrimaryColor = def.PrimaryColor
	}
	if strings.TrimSpace(s.TextColor) == "" {
		s.TextColor = def.TextColor
	}
	if strings.TrimSpace(s.BackgroundColor) == "" {
		s.BackgroundColor = def.BackgroundColor
	}
	return s
}

// DarkText reports whether the text color is pure black, which selects the
// light palette of every variant. The comparison is a plain string match.
func (s Style) DarkText() bool {
	return strings.EqualFold(strings.TrimSpace(s.TextColor), Black)
}

// Pick returns light when the text color is black and dark otherwise.
func (s Style) Pick(light, dark string) string {
	if s.DarkText() {
		return light
	}
	return dark
}

// StylePatch is a partial update of Style.
type StylePatch struct {
	Template        *Template `json:"template,omitempty"`
	PrimaryColor    *string   `json:"primaryColor,omitempty"`
	TextColor       *string   `json:"textColor,omitempty"`
	BackgroundColor *string   `json:"backgroundColor,omitempty"`
}

// Merge applies p on top of s.
func (s Style) Merge(p StylePatch) Style {
	if p.Template != nil {
		s.Template = *p.Template
	}
	if p.PrimaryColor != nil {
		s.PrimaryColor = *p.PrimaryColor
	}
	if p.TextColor != nil {
		s.TextColor = *p.TextColor
	}
	if p.BackgroundColor != nil {
		s.BackgroundColor = *p.BackgroundColor
	}
	return s
}
