package render

import "github.com/dmitrymomot/sigkit/pkg/signature"

// minimal renders a left-ruled block with an optional round logo.
func minimal(d signature.Data, s signature.Style) *Node {
	muted := s.Pick("#666666", "#999999")

	var logo, name, title *Node
	if d.Logo != "" {
		logo = Img(d.Logo, "w-10 h-10 rounded-full")
	}
	if d.Name != "" {
		name = H3("text-base font-medium", Text(d.Name)).Css("color", s.PrimaryColor)
	}
	if d.Title != "" {
		title = P("text-sm", Text(d.Title)).Css("color", muted)
	}
	var identity *Node
	if logo != nil || name != nil || title != nil {
		var text *Node
		if name != nil || title != nil {
			text = Div("", name, title)
		}
		identity = section(SectionIdentity, Div("flex items-center gap-3", logo, text))
	}

	contact := Div("text-sm space-y-1").Css("color", muted)
	if d.Email != "" {
		contact.Add(A(mailto(d.Email), "block", Text(d.Email)).Css("color", "inherit"))
	}
	if d.Phone != "" {
		contact.Add(P("", Text(d.Phone)))
	}
	if d.Website != "" {
		contact.Add(A(signature.WebsiteHref(d.Website), "block", Text(signature.DisplayURL(d.Website))).Css("color", "inherit"))
	}
	if d.Location != "" {
		contact.Add(P("", Text(d.Location)))
	}

	return Div("font-inter space-y-4 pl-4 border-l",
		identity,
		section(SectionContact, contact),
		section(SectionSocial, socialList(d, Div("flex flex-wrap gap-2 pt-1 text-sm"), "", muted)),
	).Css("background-color", s.BackgroundColor, "color", s.TextColor, "border-color", s.PrimaryColor)
}
