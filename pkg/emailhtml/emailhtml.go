// Package emailhtml generates table based signature HTML for mail clients
// that ignore flexbox and most of CSS. The layout is fixed: an optional round
// logo cell next to a text cell, whatever template is selected.
package emailhtml

import (
	"bytes"
	"errors"
	"html/template"
	"strings"

	"github.com/dmitrymomot/sigkit/pkg/normalize"
	"github.com/dmitrymomot/sigkit/pkg/render"
	"github.com/dmitrymomot/sigkit/pkg/signature"
	"github.com/dmitrymomot/sigkit/pkg/style"
)

// ErrEmpty is returned when the data carries nothing to show.
var ErrEmpty = errors.New("emailhtml: signature has no content")

// FontImport is the stylesheet import of the email font.
const FontImport = "https://fonts.googleapis.com/css2?family=Inter:wght@400;500;600&display=swap"

var page = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    {{.Import}}
    .signature { font-family: 'Inter', sans-serif; color: {{.Text}}; background-color: {{.Background}}; padding: 20px; max-width: 600px; border-radius: 8px; }
    .signature a { color: {{.Primary}}; text-decoration: none; }
    .signature a:hover { text-decoration: underline; }
    .signature img { border-radius: 50%; width: 80px; height: 80px; object-fit: cover; }
    .social-links a { margin-right: 10px; }
  </style>
</head>
<body>
  <div class="signature">{{.Body}}</div>
</body>
</html>
`))

// Generate renders the email HTML for d using the colors of st.
func Generate(d signature.Data, st signature.Style) (string, error) {
	if d.IsZero() {
		return "", ErrEmpty
	}
	st = st.Normalize()
	primary, text, bg := color(st.PrimaryColor), color(st.TextColor), color(st.BackgroundColor)

	body, err := normalize.Serialize(table(d, primary, text))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = page.Execute(&buf, struct {
		Import                    template.CSS
		Primary, Text, Background template.CSS
		Body                      template.HTML
	}{
		Import:     template.CSS("@import url('" + FontImport + "');"),
		Primary:    template.CSS(primary),
		Text:       template.CSS(text),
		Background: template.CSS(bg),
		Body:       template.HTML(body),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// color re-serializes a user supplied color so it cannot break out of a
// declaration. Unparseable values fall back to black.
func color(v string) string {
	c, err := style.ParseColor(v)
	if err != nil {
		return "#000000"
	}
	if c.Opaque() {
		return c.Hex()
	}
	return c.CSS()
}

func table(d signature.Data, primary, text string) *render.Node {
	row := render.El("tr", "")
	if d.Logo != "" {
		row.Add(render.El("td", "",
			render.Img(d.Logo, "").Attr("alt", d.Name).Css("border-radius", "50%"),
		).Css("padding-right", "20px", "vertical-align", "top"))
	}

	cell := render.El("td", "").Css("vertical-align", "top")
	if d.Name != "" {
		cell.Add(render.H3("", render.Text(d.Name)).Css(
			"margin", "0 0 5px", "color", primary, "font-size", "18px", "font-weight", "600"))
	}
	if role := roleLine(d.Title, d.Company); role != "" {
		cell.Add(render.P("", render.Text(role)).Css("margin", "0 0 10px", "color", text, "font-size", "14px"))
	}
	line := func(margin string, n *render.Node) {
		cell.Add(render.P("", n).Css("margin", margin, "font-size", "14px"))
	}
	if d.Email != "" {
		line("0 0 5px", render.A("mailto:"+d.Email, "", render.Text(d.Email)))
	}
	if d.Phone != "" {
		line("0 0 5px", render.Text(d.Phone))
	}
	if d.Website != "" {
		line("0 0 5px", render.A(signature.WebsiteHref(d.Website), "", render.Text(signature.DisplayURL(d.Website))))
	}
	if d.Location != "" {
		line("0 0 10px", render.Text(d.Location))
	}

	if links := d.Socials.Active(); len(links) > 0 {
		socials := render.Div("social-links").Css("margin-top", "10px")
		for _, l := range links {
			if l.Linkable {
				socials.Add(render.A(l.Href, "", render.Text(l.Label())).Css("color", primary))
			} else {
				socials.Add(render.Span("", render.Text(l.Label())).Attr("title", l.Value).Css("margin-right", "10px"))
			}
		}
		cell.Add(socials)
	}
	row.Add(cell)

	return render.El("table", "", row).
		Attr("cellpadding", "0").
		Attr("cellspacing", "0").
		Attr("border", "0")
}

func roleLine(title, company string) string {
	title, company = strings.TrimSpace(title), strings.TrimSpace(company)
	switch {
	case company == "":
		return title
	case title == "":
		return "at " + company
	default:
		return title + " at " + company
	}
}
