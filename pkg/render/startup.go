package render

import "github.com/dmitrymomot/sigkit/pkg/signature"

// startup renders a bold header, an accent bar and a contact grid. It only
// uses the primary color.
func startup(d signature.Data, s signature.Style) *Node {
	var logo *Node
	if d.Logo != "" {
		logo = Img(d.Logo, "w-16 h-16 rounded-xl shrink-0")
	}

	var text *Node
	if d.Name != "" || d.Title != "" || d.Company != "" {
		text = Div("")
		if d.Name != "" {
			text.Add(H3("text-xl font-bold tracking-tight", Text(d.Name)).Css("color", s.PrimaryColor))
		}
		if d.Title != "" || d.Company != "" {
			role := P("text-sm font-semibold mt-1")
			if d.Title != "" {
				role.Add(Text(d.Title))
			}
			if d.Company != "" {
				role.Add(Span("font-normal text-gray-500",
					Span("mx-2", Text("at")),
					Span("font-medium", Text(d.Company)),
				))
			}
			text.Add(role)
		}
	}

	contact := Div("grid grid-cols-2 gap-2 text-sm")
	if d.Email != "" {
		contact.Add(A(mailto(d.Email), "flex items-center gap-2", Span("", Text(d.Email))).Css("color", s.PrimaryColor))
	}
	if d.Phone != "" {
		contact.Add(Div("flex items-center gap-2 text-gray-600", Span("", Text(d.Phone))))
	}
	if d.Website != "" {
		contact.Add(A(signature.WebsiteHref(d.Website), "flex items-center gap-2", Span("", Text(signature.DisplayURL(d.Website)))).
			Css("color", s.PrimaryColor))
	}
	if d.Location != "" {
		contact.Add(Div("flex items-center gap-2 text-gray-600", Span("", Text(d.Location))))
	}

	return Div("font-montserrat p-6 space-y-4",
		section(SectionIdentity, Div("flex items-center gap-4", logo, text)),
		Div("h-1 w-12 rounded-full").Css("background-color", s.PrimaryColor),
		section(SectionContact, contact),
		section(SectionSocial, socialList(d, Div("flex flex-wrap gap-3 text-sm"), "p-2 rounded-lg", s.PrimaryColor)),
	)
}
