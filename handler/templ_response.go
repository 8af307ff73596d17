package handler

import (
	"encoding/json"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"
)

// TemplOption configures how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget patches the element matching selector.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets the morph mode.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch pairs a component with its patch options.
type TemplPatch struct {
	Component templ.Component
	Options   []TemplOption
}

// Patch creates a TemplPatch for TemplMulti.
func Patch(c templ.Component, opts ...TemplOption) TemplPatch {
	return TemplPatch{Component: c, Options: opts}
}

type templResponse struct {
	status  int
	partial []TemplPatch
	full    templ.Component
	signals map[string]any
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := NewSSE(w, r)
		for _, p := range t.partial {
			if err := sse.PatchElementTempl(p.Component, p.Options...); err != nil {
				return err
			}
		}
		if len(t.signals) > 0 {
			data, err := json.Marshal(t.signals)
			if err != nil {
				return err
			}
			return sse.PatchSignals(data)
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	if t.full != nil {
		return t.full.Render(r.Context(), w)
	}
	for _, p := range t.partial {
		if err := p.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// Templ renders c. Datastar requests receive it as an element patch.
func Templ(c templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: []TemplPatch{Patch(c, opts...)}}
}

// TemplStatus renders c as a full page with the given status code.
func TemplStatus(status int, c templ.Component) Response {
	return templResponse{status: status, partial: []TemplPatch{Patch(c)}}
}

// TemplPartial patches partial for datastar requests and renders full
// for everything else.
func TemplPartial(partial, full templ.Component, opts ...TemplOption) Response {
	return templResponse{partial: []TemplPatch{Patch(partial, opts...)}, full: full}
}

// TemplMulti sends several patches in one stream. Plain requests get the
// components concatenated.
func TemplMulti(patches ...TemplPatch) Response {
	return templResponse{partial: patches}
}

// WithSignals returns a copy of resp that also patches the given signals
// on datastar requests. Responses other than templ ones are returned
// unchanged.
func WithSignals(resp Response, signals map[string]any) Response {
	t, ok := resp.(templResponse)
	if !ok {
		return resp
	}
	t.signals = signals
	return t
}

type signalsResponse map[string]any

func (s signalsResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return JSON(map[string]any(s)).Render(w, r)
	}
	data, err := json.Marshal(map[string]any(s))
	if err != nil {
		return err
	}
	return NewSSE(w, r).PatchSignals(data)
}

// Signals patches frontend signals. Plain requests receive them as JSON.
func Signals(signals map[string]any) Response {
	return signalsResponse(signals)
}
