package render

import (
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// tech renders a terminal window: a title bar with traffic lights followed
// by shell prompts listing identity, contacts and socials.
func tech(d signature.Data, s signature.Style) *Node {
	var (
		border = s.Pick("#dddddd", "#333333")
		muted  = s.Pick("#666666", "#999999")
		red    = s.Pick("#ff4444", "#ff5f56")
		yellow = s.Pick("#ffbb33", "#ffbd2e")
		green  = s.Pick("#00c851", "#27c93f")
		prompt = s.Pick("#2ecc71", "#98c379")
		path   = s.Pick("#3498db", "#61afef")
		link   = s.Pick("#0070f3", "#61afef")
	)

	cmd := func(command string) *Node {
		return Div("flex items-center gap-2",
			Span("").Css("color", prompt).Add(Text("➜")),
			Span("").Css("color", path).Add(Text("~")),
			Span("").Css("color", muted).Add(Text(command)),
		)
	}
	kv := func(key string, value *Node) *Node {
		return P("", Span("", Text(key+"=")).Css("color", muted), value)
	}
	quoted := func(v string) *Node { return Text(`"` + v + `"`) }

	header := Div("flex items-center gap-2 pb-4",
		Div("w-3 h-3 rounded-full").Css("background-color", red),
		Div("w-3 h-3 rounded-full").Css("background-color", yellow),
		Div("w-3 h-3 rounded-full").Css("background-color", green),
		Span("ml-2 text-sm", Text("signature.sh")).Css("color", muted),
	).Css("border-bottom", "1px solid "+border)

	var identity *Node
	if d.Name != "" || d.Title != "" || d.Company != "" {
		var name, role *Node
		if d.Name != "" {
			name = P("text-lg", Text(d.Name)).Css("color", s.PrimaryColor)
		}
		if r := nonEmpty(d.Title, d.Company); len(r) > 0 {
			role = P("text-sm", Text(strings.Join(r, "@"))).Css("color", muted)
		}
		identity = section(SectionIdentity, Div("", cmd("whoami"), Div("pl-4", name, role)))
	}

	lines := Div("pl-4 space-y-1 text-sm")
	if d.Email != "" {
		lines.Add(kv("EMAIL", A(mailto(d.Email), "", quoted(d.Email)).Css("color", link)))
	}
	if d.Phone != "" {
		lines.Add(kv("TEL", Span("", quoted(d.Phone))))
	}
	if d.Website != "" {
		lines.Add(kv("WWW", A(signature.WebsiteHref(d.Website), "", quoted(signature.DisplayURL(d.Website))).Css("color", link)))
	}
	if d.Location != "" {
		lines.Add(kv("LOC", Span("", quoted(d.Location))))
	}
	var contact *Node
	if len(lines.Children) > 0 {
		contact = section(SectionContact, Div("pt-2", cmd("contact --list"), lines))
	}

	var profiles *Node
	if links := socialList(d, Div("pl-4 flex flex-wrap gap-3 text-sm"), "", muted); links != nil {
		profiles = section(SectionSocial, Div("pt-2", cmd("social-links"), links))
	}

	return Div("font-roboto-mono p-6 rounded-lg space-y-3",
		header,
		Div("space-y-2", identity, contact, profiles),
	).Css("background-color", s.BackgroundColor, "color", s.TextColor)
}
