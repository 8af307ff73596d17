package normalize

import (
	"net/url"
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/render"
)

var richTextPolicy = sync.OnceValue(func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span", "p", "h3", "a", "img", "br", "strong", "em", "b", "i")
	p.AllowAttrs("style", "title").Globally()
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")
	p.RequireParseableURLs(true)
	p.AllowURLSchemesMatching(anyScheme)
	for _, scheme := range scriptSchemes {
		p.AllowURLSchemeWithCustomPolicy(scheme, func(*url.URL) bool { return false })
	}
	p.AllowDataURIImages()
	return p
})

// Links keep whatever scheme the signature was given, such as tg: or
// skype:, except those that run script.
var (
	anyScheme     = regexp.MustCompile(`^[a-z][a-z0-9+.\-]*$`)
	scriptSchemes = []string{"javascript", "vbscript"}
)

// RichText returns the staged markup as an HTML fragment for rich text
// clipboards. Classes and editor attributes are removed but styles are not
// resolved, so only declarations written inline by the renderer survive.
// A snapshot without a staged tree yields an empty string.
func RichText(snap preview.Snapshot) (string, error) {
	if !snap.Ready() {
		return "", nil
	}
	tree := snap.Tree.Clone()
	tree.Walk(func(n *render.Node) bool {
		dropDrag(n)
		return !n.IsText()
	})
	raw, err := Serialize(tree)
	if err != nil {
		return "", err
	}
	return richTextPolicy().Sanitize(raw), nil
}
