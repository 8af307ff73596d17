package render

import "github.com/dmitrymomot/sigkit/pkg/signature"

// Font is the web font a template is designed around.
type Font struct {
	Family string
	Stack  string
	Href   string
}

const googleFonts = "https://fonts.googleapis.com/css2?"

var fonts = map[signature.Template]Font{
	signature.Tech: {
		Family: "Roboto Mono",
		Stack:  "'Roboto Mono', monospace",
		Href:   googleFonts + "family=Roboto+Mono:wght@400;500;700&display=swap",
	},
	signature.Minimal: {
		Family: "Inter",
		Stack:  "'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif",
		Href:   googleFonts + "family=Inter:wght@400;500;600&display=swap",
	},
	signature.Elegant: {
		Family: "Playfair Display",
		Stack:  "'Playfair Display', Georgia, serif",
		Href:   googleFonts + "family=Playfair+Display:ital,wght@0,300;0,400;1,400&family=Inter:wght@400;500&display=swap",
	},
	signature.Creative: {
		Family: "Montserrat",
		Stack:  "'Montserrat', 'Helvetica Neue', Arial, sans-serif",
		Href:   googleFonts + "family=Montserrat:wght@400;500;600;700&display=swap",
	},
}

// FontFor returns the font of a template. Unknown templates get the
// default template's font.
func FontFor(t signature.Template) Font {
	switch t = t.OrDefault(); t {
	case signature.Modern:
		return fonts[signature.Minimal]
	case signature.Startup:
		return fonts[signature.Creative]
	default:
		return fonts[t]
	}
}
