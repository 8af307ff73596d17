package render

import "github.com/dmitrymomot/sigkit/pkg/signature"

// elegant renders a centered serif layout framed by two faded rules.
func elegant(d signature.Data, s signature.Style) *Node {
	muted := s.Pick("#666666", "#999999")
	fade := "linear-gradient(90deg, transparent 0%, " + s.PrimaryColor + " 50%, transparent 100%)"

	rule := func(edge string) *Node {
		return Div("absolute w-24 h-px").
			Css(edge, "0", "left", "50%", "margin-left", "-48px", "background", fade, "opacity", "0.3")
	}

	var logo *Node
	if d.Logo != "" {
		logo = Div("flex justify-center mb-4",
			Div("p-1 rounded-full", Img(d.Logo, "w-16 h-16 rounded-full")).Css("background-color", s.PrimaryColor),
		)
	}

	identity := Div("")
	if d.Name != "" {
		identity.Add(H3("text-2xl font-light tracking-widest", Text(d.Name)).Css("color", s.PrimaryColor))
	}
	if d.Title != "" || d.Company != "" {
		role := P("text-sm italic mt-2").Css("color", muted)
		if d.Title != "" {
			role.Add(Text(d.Title))
		}
		if d.Title != "" && d.Company != "" {
			role.Add(Span("mx-2", Text("·")).Css("color", muted))
		}
		if d.Company != "" {
			role.Add(Span("", Text(d.Company)))
		}
		identity.Add(role)
	}

	contact := Div("font-inter text-sm space-y-1")
	if d.Email != "" {
		contact.Add(A(mailto(d.Email), "block", Text(d.Email)).Css("color", s.PrimaryColor))
	}
	if d.Phone != "" {
		contact.Add(P("", Text(d.Phone)).Css("color", muted))
	}
	if d.Website != "" {
		contact.Add(A(signature.WebsiteHref(d.Website), "block", Text(signature.DisplayURL(d.Website))).Css("color", s.PrimaryColor))
	}
	if d.Location != "" {
		contact.Add(P("", Text(d.Location)).Css("color", muted))
	}

	return Div("relative font-playfair py-6",
		rule("top"),
		rule("bottom"),
		Div("text-center space-y-4",
			logo,
			section(SectionIdentity, identity),
			Div("w-12 h-px mx-auto").Css("background-color", s.PrimaryColor, "opacity", "0.3"),
			section(SectionContact, contact),
			section(SectionSocial, socialList(d, Div("flex flex-wrap justify-center gap-4 pt-2 font-inter text-sm"), "", muted)),
		),
	).Css("background-color", s.BackgroundColor, "color", s.TextColor)
}
