package render

import (
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// modern renders a two column grid: logo on the left, details on the right.
func modern(d signature.Data, s signature.Style) *Node {
	muted := s.Pick("#666666", "#999999")

	var logo *Node
	if d.Logo != "" {
		logo = Img(d.Logo, "w-20 h-20 rounded-xl")
	}

	identity := Div("")
	if d.Name != "" {
		identity.Add(H3("text-2xl font-bold tracking-tight", Text(d.Name)).Css("color", s.PrimaryColor))
	}
	if r := nonEmpty(d.Title, d.Company); len(r) > 0 {
		identity.Add(P("text-sm font-medium mt-1", Text(strings.Join(r, " @ "))).Css("color", muted))
	}

	item := func(n *Node, marker string) *Node {
		return n.Add(Span("", Text(marker)).Css("color", s.PrimaryColor))
	}
	contact := Div("flex flex-wrap items-center gap-x-6 gap-y-2 text-sm")
	if d.Email != "" {
		contact.Add(item(A(mailto(d.Email), "flex items-center gap-2").Css("color", s.TextColor), "@").
			Add(Span("", Text(d.Email))))
	}
	if d.Phone != "" {
		contact.Add(item(Span("flex items-center gap-2"), "T").Add(Span("", Text(d.Phone))))
	}
	if d.Website != "" {
		contact.Add(item(A(signature.WebsiteHref(d.Website), "flex items-center gap-2").Css("color", s.TextColor), "W").
			Add(Span("", Text(signature.DisplayURL(d.Website)))))
	}
	if d.Location != "" {
		contact.Add(item(Span("flex items-center gap-2"), "L").Add(Span("", Text(d.Location))))
	}

	details := Div("space-y-3",
		section(SectionIdentity, identity),
		section(SectionContact, contact),
		section(SectionSocial, socialList(d, Div("flex flex-wrap items-center gap-3 pt-1 text-sm"), "p-2 rounded-full", muted)),
	)
	if len(details.Children) == 0 {
		details = nil
	}

	return Div("grid grid-cols-auto-1fr gap-6 items-center font-inter p-4", logo, details).
		Css("background-color", s.BackgroundColor, "color", s.TextColor)
}
