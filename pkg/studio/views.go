package studio

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/sigkit/handler"
	"github.com/dmitrymomot/sigkit/pkg/export"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// Views holds the components the studio renders. Nil fields fall back to
// DefaultViews.
type Views struct {
	Home       func() templ.Component
	Editor     func(EditorParams) templ.Component
	Preview    func(PreviewParams) templ.Component
	Outcome    func(OutcomeParams) templ.Component
	ErrorPage  func(handler.ErrorPageParams) templ.Component
	ErrorToast func(handler.ErrorToastParams) templ.Component
}

// EditorParams feeds the full editor page.
type EditorParams struct {
	Workspace string
	Catalog   []signature.CatalogEntry
	Platforms []signature.Platform
	Preview   PreviewParams
}

// PreviewParams feeds the live preview pane.
type PreviewParams struct {
	Workspace string
	Snapshot  preview.Snapshot
	// Markup is the flattened fragment in rendered mode and the normalized
	// document in html mode.
	Markup string
}

// OutcomeParams feeds the toast shown after an export.
type OutcomeParams struct {
	Workspace string
	Outcome   export.Outcome
}

// DefaultViews returns the built-in components.
func DefaultViews() Views {
	return Views{
		Home:       HomePage,
		Editor:     EditorPage,
		Preview:    PreviewPane,
		Outcome:    OutcomeToast,
		ErrorPage:  ErrorPage,
		ErrorToast: ErrorToast,
	}
}

func (v Views) withDefaults() Views {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Editor == nil {
		v.Editor = d.Editor
	}
	if v.Preview == nil {
		v.Preview = d.Preview
	}
	if v.Outcome == nil {
		v.Outcome = d.Outcome
	}
	if v.ErrorPage == nil {
		v.ErrorPage = d.ErrorPage
	}
	if v.ErrorToast == nil {
		v.ErrorToast = d.ErrorToast
	}
	return v
}
