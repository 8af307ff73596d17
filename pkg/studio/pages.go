package studio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/sigkit/handler"
	"github.com/dmitrymomot/sigkit/pkg/export"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/render"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// DatastarScript is the client bundle the editor page loads.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

const studioCSS = `body{margin:0;font-family:system-ui,sans-serif;background:#f4f4f5;color:#18181b}
.studio{display:grid;grid-template-columns:minmax(320px,420px) 1fr;gap:24px;padding:24px}
fieldset{border:1px solid #e4e4e7;border-radius:8px;margin:0 0 16px;padding:12px;background:#fff}
label{display:block;font-size:12px;margin:8px 0 4px;color:#52525b}
input[type=text],input[type=email],input[type=tel],input[type=url]{width:100%;box-sizing:border-box;padding:6px 8px}
button,.button{cursor:pointer;padding:6px 10px;border:1px solid #d4d4d8;border-radius:6px;background:#fff;color:inherit;text-decoration:none;font-size:13px}
button.active{background:#18181b;color:#fff}
.stage{background:#fff;padding:16px;overflow:auto}
.source{background:#18181b;color:#e4e4e7;padding:16px;overflow:auto;white-space:pre-wrap;font-size:12px}
.actions,.tabs,.nudge{display:flex;flex-wrap:wrap;gap:8px;margin:12px 0}
#toasts{position:fixed;right:16px;bottom:16px;display:flex;flex-direction:column;gap:8px}
.toast{padding:10px 14px;border-radius:8px;background:#18181b;color:#fff;font-size:13px}
.toast-failed,.toast-error{background:#b91c1c}.toast-warning{background:#b45309}`

// writer mirrors what generated templ code does: it stops at the first
// write error and reports it once.
type writer struct {
	w   io.Writer
	err error
}

func (p *writer) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *writer) text(s string) {
	p.raw(templ.EscapeString(s))
}

func component(fn func(p *writer)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &writer{w: w}
		fn(p)
		return p.err
	})
}

func workspacePath(id string, elems ...string) string {
	out := "/w/" + url.PathEscape(id)
	for _, e := range elems {
		out += "/" + url.PathEscape(e)
	}
	return out
}

// action builds a datastar action expression for an attribute value.
func action(method, path string) string {
	return templ.EscapeString(fmt.Sprintf("@%s('%s')", method, path))
}

// editorSignals is the initial client state. Its keys match the json tags
// of signature.Patch and signature.StylePatch so the whole set can be
// posted to either endpoint.
func editorSignals(snap preview.Snapshot) map[string]any {
	socials := make(map[string]string)
	for _, p := range signature.Platforms() {
		socials[string(p)] = snap.Data.Socials[p]
	}
	return map[string]any{
		"name":            snap.Data.Name,
		"title":           snap.Data.Title,
		"company":         snap.Data.Company,
		"phone":           snap.Data.Phone,
		"email":           snap.Data.Email,
		"website":         snap.Data.Website,
		"location":        snap.Data.Location,
		"socials":         socials,
		"template":        string(snap.Style.Template),
		"primaryColor":    snap.Style.PrimaryColor,
		"textColor":       snap.Style.TextColor,
		"backgroundColor": snap.Style.BackgroundColor,
	}
}

var dataFields = []struct {
	key, label, kind string
}{
	{"name", "Full name", "text"},
	{"title", "Job title", "text"},
	{"company", "Company", "text"},
	{"phone", "Phone", "tel"},
	{"email", "Email", "email"},
	{"website", "Website", "url"},
	{"location", "Location", "text"},
}

var colorFields = []struct {
	key, label string
}{
	{"primaryColor", "Primary color"},
	{"textColor", "Text color"},
	{"backgroundColor", "Background color"},
}

// HomePage is the landing page. Starting a workspace is a POST so crawlers
// and link previews never create one.
func HomePage() templ.Component {
	return component(func(p *writer) {
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>Signature Studio</title><style>`, studioCSS, `</style></head>`,
			`<body><main class="studio"><section><h1>Signature Studio</h1>`,
			`<p>Design an email signature and export it as an image or HTML.</p>`,
			`<form method="post" action="/w"><button type="submit">New signature</button></form>`,
			`</section></main></body></html>`)
	})
}

// EditorPage is the full editor with the live preview pane.
func EditorPage(params EditorParams) templ.Component {
	return component(func(p *writer) {
		signals, err := json.Marshal(editorSignals(params.Preview.Snapshot))
		if err != nil {
			p.err = err
			return
		}
		dataURL := workspacePath(params.Workspace, "data")
		styleURL := workspacePath(params.Workspace, "style")

		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>Signature Studio</title>`,
			`<script type="module" src="`, DatastarScript, `"></script>`,
			`<style>`, studioCSS, `</style></head>`)
		p.raw(`<body data-signals="`)
		p.text(string(signals))
		p.raw(`"><main class="studio"><section class="editor"><h1>Signature Studio</h1>`)

		p.raw(`<fieldset><legend>Template</legend><div class="actions">`)
		for _, entry := range params.Catalog {
			p.raw(`<button type="button" title="`)
			p.text(entry.Description)
			p.raw(`" data-class:active="$template == '`, templ.EscapeString(string(entry.ID)), `'"`,
				` data-on:click="`, action("post", workspacePath(params.Workspace, "template", string(entry.ID))), `">`)
			p.text(entry.Name)
			p.raw(`</button>`)
		}
		p.raw(`</div><button type="button" data-on:click="`,
			templ.EscapeString(fmt.Sprintf("@post('%s/' + $template + '?preset=true')", workspacePath(params.Workspace, "template"))),
			`">Load demo data</button></fieldset>`)

		p.raw(`<fieldset><legend>Details</legend>`)
		for _, f := range dataFields {
			p.raw(`<label for="f-`, f.key, `">`)
			p.text(f.label)
			p.raw(`</label><input id="f-`, f.key, `" type="`, f.kind, `" data-bind="`, f.key,
				`" data-on:input__debounce.300ms="`, action("post", dataURL), `">`)
		}
		p.raw(`</fieldset>`)

		p.raw(`<fieldset><legend>Social</legend>`)
		for _, pl := range params.Platforms {
			key := templ.EscapeString(string(pl))
			p.raw(`<label for="s-`, key, `">`)
			p.text(pl.Label())
			p.raw(`</label><input id="s-`, key, `" type="text" data-bind="socials.`, key,
				`" data-on:input__debounce.300ms="`, action("post", dataURL), `">`)
		}
		p.raw(`</fieldset>`)

		p.raw(`<fieldset><legend>Colors</legend>`)
		for _, f := range colorFields {
			p.raw(`<label for="c-`, f.key, `">`)
			p.text(f.label)
			p.raw(`</label><input id="c-`, f.key, `" type="color" data-bind="`, f.key,
				`" data-on:input__debounce.200ms="`, action("post", styleURL), `">`)
		}
		p.raw(`</fieldset>`)

		logoURL := workspacePath(params.Workspace, "logo")
		p.raw(`<fieldset><legend>Logo</legend><form enctype="multipart/form-data" data-on:submit="`,
			templ.EscapeString(fmt.Sprintf("@post('%s', {contentType: 'form'})", logoURL)), `">`,
			`<input type="file" name="logo" accept="image/jpeg,image/png,image/gif,image/webp">`,
			`<div class="actions"><button type="submit">Upload</button>`,
			`<button type="button" data-on:click="`, action("delete", logoURL), `">Remove</button></div>`,
			`</form></fieldset></section>`)

		p.raw(`<section class="output">`)
		if p.err == nil {
			p.err = PreviewPane(params.Preview).Render(context.Background(), p.w)
		}
		p.raw(`</section></main><div id="toasts"></div></body></html>`)
	})
}

var nudges = []struct {
	label  string
	dx, dy int
}{
	{"↑", 0, -8},
	{"↓", 0, 8},
	{"←", -8, 0},
	{"→", 8, 0},
}

// PreviewPane is the part of the editor patched after every change.
func PreviewPane(params PreviewParams) templ.Component {
	return component(func(p *writer) {
		snap := params.Snapshot
		font := snap.Font()
		ws := params.Workspace

		p.raw(`<div id="preview" class="preview" data-mode="`, templ.EscapeString(string(snap.Mode)),
			`" data-version="`, strconv.FormatUint(snap.Version, 10), `">`)
		if font.Href != "" {
			p.raw(`<link rel="stylesheet" href="`, templ.EscapeString(font.Href), `">`)
		}

		p.raw(`<div class="tabs">`)
		for _, m := range []preview.Mode{preview.Rendered, preview.HTML} {
			class := ""
			if m == snap.Mode {
				class = ` class="active"`
			}
			label := "Preview"
			if m == preview.HTML {
				label = "HTML"
			}
			p.raw(`<button type="button"`, class, ` data-on:click="`,
				action("post", workspacePath(ws, "mode", string(m))), `">`, label, `</button>`)
		}
		p.raw(`</div>`)

		switch {
		case !snap.Ready():
			p.raw(`<p class="stage">Nothing to preview yet.</p>`)
		case snap.Mode == preview.HTML:
			p.raw(`<pre class="source"><code>`)
			p.text(params.Markup)
			p.raw(`</code></pre>`)
		default:
			p.raw(`<div class="stage" style="width: `, strconv.FormatFloat(snap.Width, 'f', -1, 64),
				`px; font-family: `, templ.EscapeString(font.Stack), `">`, params.Markup, `</div>`)
		}

		primary := "Download PNG"
		if snap.Mode == preview.HTML {
			primary = "Copy HTML"
		}
		p.raw(`<div class="actions">`,
			`<button type="button" data-on:click="`, action("post", workspacePath(ws, "export", string(export.ActionPrimary))), `">`, primary, `</button>`,
			`<button type="button" data-on:click="`, action("post", workspacePath(ws, "export", string(export.ActionCopyImage))), `">Copy image</button>`,
			`<button type="button" data-on:click="`, action("post", workspacePath(ws, "export", string(export.ActionCopyRichText))), `">Copy for email client</button>`,
			`<a class="button" download href="`, templ.EscapeString(workspacePath(ws, "download", string(export.PNG))), `">Save .png</a>`,
			`<a class="button" download href="`, templ.EscapeString(workspacePath(ws, "download", string(export.Document))), `">Save .html</a>`,
			`</div>`)

		p.raw(`<div class="nudge">`)
		for _, section := range []string{render.SectionIdentity, render.SectionContact, render.SectionSocial} {
			p.raw(`<span>`, section, `</span>`)
			for _, n := range nudges {
				q := url.Values{
					"section": {section},
					"dx":      {strconv.Itoa(n.dx)},
					"dy":      {strconv.Itoa(n.dy)},
				}
				p.raw(`<button type="button" data-on:click="`,
					action("post", workspacePath(ws, "drag")+"?"+q.Encode()), `">`, n.label, `</button>`)
			}
		}
		p.raw(`<button type="button" data-on:click="`, action("post", workspacePath(ws, "drop")), `">Drop</button></div>`)
		p.raw(`</div>`)
	})
}

// OutcomeToast reports an export result.
func OutcomeToast(params OutcomeParams) templ.Component {
	return component(func(p *writer) {
		o := params.Outcome
		p.raw(`<div class="toast toast-`, templ.EscapeString(string(o.Status)), `" role="status">`)
		p.text(o.Message())
		switch {
		case !o.OK():
		case o.Destination == export.DestDownload && o.Location != "":
			p.raw(` <a href="`, templ.EscapeString(o.Location), `" target="_blank" rel="noopener">Open</a>`)
		case o.Destination == export.DestClipboard:
			p.raw(` <a href="`, templ.EscapeString(workspacePath(params.Workspace, "clipboard")), `" target="_blank">View</a>`)
		}
		p.raw(` <button type="button" data-on:click="el.parentElement.remove()">×</button></div>`)
	})
}

// ErrorToast reports a failed request to the editor.
func ErrorToast(params handler.ErrorToastParams) templ.Component {
	return component(func(p *writer) {
		p.raw(`<div class="toast toast-`, templ.EscapeString(params.Type), `" role="alert">`)
		p.text(params.Message)
		p.raw(` <button type="button" data-on:click="el.parentElement.remove()">×</button></div>`)
	})
}

// ErrorPage is the full-page error.
func ErrorPage(params handler.ErrorPageParams) templ.Component {
	return component(func(p *writer) {
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"><title>`,
			strconv.Itoa(params.StatusCode), `</title><style>`, studioCSS, `</style></head><body><main class="studio"><section>`)
		p.raw(`<h1>`, strconv.Itoa(params.StatusCode), `</h1><p>`)
		p.text(params.Error)
		p.raw(`</p>`)
		if params.RequestID != "" {
			p.raw(`<p><small>Request `)
			p.text(params.RequestID)
			p.raw(`</small></p>`)
		}
		p.raw(`<p><a class="button" href="/">Start over</a></p></section></main></body></html>`)
	})
}
