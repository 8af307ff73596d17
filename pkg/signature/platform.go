package signature

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Platform identifies a social network.
type Platform string

// Known platforms.
const (
	LinkedIn  Platform = "linkedin"
	Twitter   Platform = "twitter"
	GitHub    Platform = "github"
	Instagram Platform = "instagram"
	Telegram  Platform = "telegram"
	Discord   Platform = "discord"
)

// platformOrder fixes the render order of social links.
var platformOrder = []Platform{LinkedIn, Twitter, GitHub, Instagram, Telegram, Discord}

// profileURL holds the expansion pattern for bare handles.
// Discord has no entry: its handles are display-only.
var profileURL = map[Platform]string{
	LinkedIn:  "https://linkedin.com/in/%s",
	Twitter:   "https://twitter.com/%s",
	GitHub:    "https://github.com/%s",
	Instagram: "https://instagram.com/%s",
	Telegram:  "https://t.me/%s",
}

var (
	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)
	httpPrefix    = regexp.MustCompile(`^https?://`)
	labelCaser    = cases.Title(language.English)
)

// Platforms returns the known platforms in render order.
func Platforms() []Platform {
	out := make([]Platform, len(platformOrder))
	copy(out, platformOrder)
	return out
}

// Known reports whether p is a supported platform.
func (p Platform) Known() bool {
	for _, k := range platformOrder {
		if k == p {
			return true
		}
	}
	return false
}

// Linkable reports whether handles of p can be turned into a URL.
func (p Platform) Linkable() bool {
	_, ok := profileURL[p]
	return ok
}

// Label returns the display label, e.g. "Linkedin" for "linkedin".
func (p Platform) Label() string {
	return labelCaser.String(string(p))
}

// HasScheme reports whether v already starts with a URL scheme such as
// "https:" or "mailto:".
func HasScheme(v string) bool {
	return schemePattern.MatchString(strings.TrimSpace(v))
}

// Href resolves the link target for a social value.
// Values that already carry a scheme are returned verbatim. Bare handles are
// expanded through the platform pattern with the first "@" removed.
// The boolean is false for display-only platforms, unknown platforms and
// empty values.
func Href(p Platform, value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	pattern, ok := profileURL[p]
	if !ok {
		return "", false
	}
	if HasScheme(value) {
		return value, true
	}
	handle := strings.Replace(value, "@", "", 1)
	return strings.Replace(pattern, "%s", handle, 1), true
}

// SocialLink is a resolved, renderable social entry.
type SocialLink struct {
	Platform Platform
	Value    string
	Href     string
	Linkable bool
}

// Label returns the platform label.
func (l SocialLink) Label() string {
	return l.Platform.Label()
}

// Active returns the non-empty entries for known platforms in a stable order.
func (s Socials) Active() []SocialLink {
	var out []SocialLink
	for _, p := range platformOrder {
		v := strings.TrimSpace(s[p])
		if v == "" {
			continue
		}
		href, linkable := Href(p, v)
		out = append(out, SocialLink{Platform: p, Value: v, Href: href, Linkable: linkable})
	}
	return out
}

// WebsiteHref returns a link target for a website value.
// A value without a scheme is treated as an https host.
func WebsiteHref(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || HasScheme(v) {
		return v
	}
	return "https://" + v
}

// DisplayURL strips a leading http:// or https:// for display.
func DisplayURL(v string) string {
	return httpPrefix.ReplaceAllString(strings.TrimSpace(v), "")
}
