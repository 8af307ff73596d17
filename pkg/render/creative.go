package render

import "github.com/dmitrymomot/sigkit/pkg/signature"

// creative renders a rounded card with a tinted diagonal wash, decorative
// circles and a two column contact grid. It only uses the primary color.
func creative(d signature.Data, s signature.Style) *Node {
	var wash string
	if t := tint(s.PrimaryColor, float64(0x22)/255); t != "" {
		wash = "linear-gradient(135deg, " + t + " 0%, transparent 100%)"
	}

	circle := func(class, offset string) *Node {
		return Div("absolute rounded-full opacity-10 "+class).
			Css("right", offset, "top", offset, "background-color", s.PrimaryColor)
	}

	var logo *Node
	if d.Logo != "" {
		logo = Img(d.Logo, "w-24 h-24 rounded-2xl shrink-0")
	}

	identity := Div("")
	if d.Name != "" {
		identity.Add(H3("text-2xl font-bold", Text(d.Name)).Css("color", s.PrimaryColor))
	}
	if d.Title != "" || d.Company != "" {
		role := P("text-sm font-medium mt-1 tracking-wide uppercase text-gray-600")
		if d.Title != "" {
			role.Add(Text(d.Title))
		}
		if d.Company != "" {
			role.Add(Span("normal-case", Span("mx-2", Text("at")), Text(d.Company)))
		}
		identity.Add(role)
	}

	tile := func(n *Node, value string) *Node {
		return n.Add(Span("truncate", Text(value)))
	}
	const tileClass = "flex items-center gap-2 px-3 py-2 rounded-lg bg-white-50"
	contact := Div("grid grid-cols-2 gap-3 text-sm")
	if d.Email != "" {
		contact.Add(tile(A(mailto(d.Email), tileClass), d.Email))
	}
	if d.Phone != "" {
		contact.Add(tile(Span(tileClass), d.Phone))
	}
	if d.Website != "" {
		contact.Add(tile(A(signature.WebsiteHref(d.Website), tileClass), signature.DisplayURL(d.Website)))
	}
	if d.Location != "" {
		contact.Add(tile(Span(tileClass), d.Location))
	}

	return Div("font-montserrat p-6 rounded-2xl border-2 relative overflow-hidden",
		circle("w-24 h-24", "-32px"),
		circle("w-16 h-16", "-16px"),
		Div("relative flex items-start gap-6",
			logo,
			Div("space-y-4 flex-1",
				section(SectionIdentity, identity),
				section(SectionContact, contact),
				section(SectionSocial, socialList(d, Div("flex flex-wrap gap-2 text-sm"), "p-2 rounded-lg bg-white-50", s.PrimaryColor)),
			),
		),
	).Css("background", wash, "border-color", s.PrimaryColor)
}
