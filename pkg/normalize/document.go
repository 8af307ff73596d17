package normalize

import (
	"bytes"
	"html/template"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/render"
	"github.com/dmitrymomot/sigkit/pkg/style"
)

// Reset is the stylesheet embedded in every exported document.
const Reset = "* { margin: 0; padding: 0; box-sizing: border-box; }"

var shell = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <link href="{{.FontHref}}" rel="stylesheet">
  <style>
    {{.Reset}}
    body { font-family: {{.FontStack}}; }
  </style>
</head>
<body style="margin: 0; padding: 16px;">
  {{.Body}}
</body>
</html>
`))

// Document flattens the snapshot into a standalone HTML document with every
// element's resolved style inlined. A snapshot without a staged tree yields
// an empty string. The output depends only on the snapshot.
func Document(snap preview.Snapshot) (string, error) {
	body, err := Fragment(snap)
	if err != nil || body == "" {
		return "", err
	}
	font := snap.Font()
	var buf bytes.Buffer
	err = shell.Execute(&buf, struct {
		FontHref  string
		FontStack template.CSS
		Reset     template.CSS
		Body      template.HTML
	}{
		FontHref:  font.Href,
		FontStack: template.CSS(font.Stack),
		Reset:     template.CSS(Reset),
		Body:      template.HTML(body),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Fragment is the flattened signature markup without the document shell.
func Fragment(snap preview.Snapshot) (string, error) {
	if !snap.Ready() {
		return "", nil
	}
	return Serialize(Flatten(snap.Tree, nil))
}

// Flatten returns a stripped copy of root with the allowed computed
// properties appended to each element's inline style. The input is not
// modified. A nil sheet means the built-in utility classes.
func Flatten(root *render.Node, sheet *style.Sheet) *render.Node {
	out := root.Clone()
	if out == nil {
		return nil
	}
	Strip(out)
	styles := render.Compute(out, sheet)
	out.Walk(func(n *render.Node) bool {
		if c, ok := styles[n]; ok {
			n.Style = append(n.Style, c.AllowList()...)
		}
		return !n.IsText()
	})
	return out
}

// Serialize renders a tree as HTML. Attributes are written in node order,
// followed by class and style.
func Serialize(root *render.Node) (string, error) {
	if root == nil {
		return "", nil
	}
	var b strings.Builder
	if err := html.Render(&b, toHTML(root)); err != nil {
		return "", err
	}
	return b.String(), nil
}

func toHTML(n *render.Node) *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		h.Attr = append(h.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.Class != "" {
		h.Attr = append(h.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	if len(n.Style) > 0 {
		h.Attr = append(h.Attr, html.Attribute{Key: "style", Val: n.Style.String()})
	}
	for _, c := range n.Children {
		h.AppendChild(toHTML(c))
	}
	return h
}
