package studio

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sigkit/binder"
	"github.com/dmitrymomot/sigkit/handler"
	"github.com/dmitrymomot/sigkit/pkg/export"
	"github.com/dmitrymomot/sigkit/pkg/file"
	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/normalize"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

var (
	errWorkspaceNotFound = handler.NewHTTPError(http.StatusNotFound, "workspace_not_found")
	errNotReady          = handler.NewHTTPError(http.StatusConflict, "not_ready")
	errClipboardEmpty    = handler.NewHTTPError(http.StatusNotFound, "clipboard_empty")
)

func (s *Service) workspaceRoutes(r chi.Router) {
	path := binder.Path(chi.URLParam)

	r.Get("/", handler.Wrap(s.editor,
		handler.WithBinders[handler.Context, workspaceRequest](path),
		handler.WithErrorHandler[handler.Context, workspaceRequest](s.errorHandler),
	))
	r.Delete("/", handler.Wrap(s.deleteWorkspace,
		handler.WithBinders[handler.Context, workspaceRequest](path),
		handler.WithErrorHandler[handler.Context, workspaceRequest](s.errorHandler),
	))
	r.Get("/preview", handler.Wrap(s.preview,
		handler.WithBinders[handler.Context, workspaceRequest](path),
		handler.WithErrorHandler[handler.Context, workspaceRequest](s.errorHandler),
	))
	r.Post("/data", handler.Wrap(s.updateData,
		handler.WithBinders[handler.Context, dataRequest](path, binder.Signals(), binder.JSON()),
		handler.WithErrorHandler[handler.Context, dataRequest](s.errorHandler),
	))
	r.Post("/style", handler.Wrap(s.updateStyle,
		handler.WithBinders[handler.Context, styleRequest](path, binder.Signals(), binder.JSON()),
		handler.WithErrorHandler[handler.Context, styleRequest](s.errorHandler),
	))
	r.Post("/template/{template}", handler.Wrap(s.selectTemplate,
		handler.WithBinders[handler.Context, templateRequest](path, binder.Query()),
		handler.WithErrorHandler[handler.Context, templateRequest](s.errorHandler),
	))
	r.Post("/mode/{mode}", handler.Wrap(s.setMode,
		handler.WithBinders[handler.Context, modeRequest](path),
		handler.WithErrorHandler[handler.Context, modeRequest](s.errorHandler),
	))
	r.Post("/drag", handler.Wrap(s.drag,
		handler.WithBinders[handler.Context, dragRequest](path, binder.Query(), binder.Form()),
		handler.WithErrorHandler[handler.Context, dragRequest](s.errorHandler),
	))
	r.Post("/drop", handler.Wrap(s.drop,
		handler.WithBinders[handler.Context, workspaceRequest](path),
		handler.WithErrorHandler[handler.Context, workspaceRequest](s.errorHandler),
	))
	r.Post("/logo", handler.Wrap(s.uploadLogo,
		handler.WithBinders[handler.Context, logoRequest](path, binder.File()),
		handler.WithErrorHandler[handler.Context, logoRequest](s.errorHandler),
	))
	r.Delete("/logo", handler.Wrap(s.removeLogo,
		handler.WithBinders[handler.Context, workspaceRequest](path),
		handler.WithErrorHandler[handler.Context, workspaceRequest](s.errorHandler),
	))
	r.With(s.throttle).Post("/export/{action}", handler.Wrap(s.export,
		handler.WithBinders[handler.Context, exportRequest](path, binder.Query()),
		handler.WithErrorHandler[handler.Context, exportRequest](s.errorHandler),
	))
	r.With(s.throttle).Get("/download/{kind}", handler.Wrap(s.download,
		handler.WithBinders[handler.Context, downloadRequest](path),
		handler.WithErrorHandler[handler.Context, downloadRequest](s.errorHandler),
	))
	r.Get("/clipboard", handler.Wrap(s.readClipboard,
		handler.WithBinders[handler.Context, workspaceRequest](path),
		handler.WithErrorHandler[handler.Context, workspaceRequest](s.errorHandler),
	))
}

type workspaceRequest struct {
	Workspace string `path:"workspace" json:"-"`
}

type dataRequest struct {
	Workspace string `path:"workspace" json:"-"`
	signature.Patch
}

type styleRequest struct {
	Workspace string `path:"workspace" json:"-"`
	signature.StylePatch
}

type templateRequest struct {
	Workspace string `path:"workspace"`
	Template  string `path:"template"`
	Preset    bool   `query:"preset"`
}

type modeRequest struct {
	Workspace string `path:"workspace"`
	Mode      string `path:"mode"`
}

type dragRequest struct {
	Workspace string  `path:"workspace"`
	Section   string  `query:"section" form:"section"`
	DX        float64 `query:"dx" form:"dx"`
	DY        float64 `query:"dy" form:"dy"`
}

type logoRequest struct {
	Workspace string                `path:"workspace"`
	Logo      *multipart.FileHeader `file:"logo,required"`
}

type exportRequest struct {
	Workspace string `path:"workspace"`
	Action    string `path:"action"`
	Kind      string `query:"kind"`
}

type downloadRequest struct {
	Workspace string `path:"workspace"`
	Kind      string `path:"kind"`
}

// stateView is the JSON shape of a workspace for non-datastar clients.
type stateView struct {
	Workspace string          `json:"workspace"`
	Data      signature.Data  `json:"data"`
	Config    signature.Style `json:"config"`
	Mode      preview.Mode    `json:"mode"`
	Version   uint64          `json:"version"`
	Ready     bool            `json:"ready"`
}

type outcomeView struct {
	Action      export.Action `json:"action"`
	Status      export.Status `json:"status"`
	Message     string        `json:"message"`
	Mode        preview.Mode  `json:"mode"`
	Destination string        `json:"destination,omitempty"`
	Location    string        `json:"location,omitempty"`
	Kind        export.Kind   `json:"kind,omitempty"`
	Filename    string        `json:"filename,omitempty"`
	Size        int           `json:"size,omitempty"`
	Error       string        `json:"error,omitempty"`
}

func (s *Service) surface(id string) (*preview.Surface, error) {
	sf, err := s.workspaces.Get(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errWorkspaceNotFound, err)
	}
	return sf, nil
}

func (s *Service) home(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.Home())
}

func (s *Service) createWorkspace(ctx handler.Context, _ struct{}) handler.Response {
	id, _ := s.workspaces.Create()
	s.log.InfoContext(ctx, "workspace created", logger.WorkspaceID(id))
	return handler.Redirect(workspacePath(id))
}

func (s *Service) deleteWorkspace(ctx handler.Context, req workspaceRequest) handler.Response {
	s.purge(ctx, req.Workspace, s.forget(req.Workspace))
	s.workspaces.Delete(req.Workspace)
	return handler.Empty()
}

func (s *Service) editor(_ handler.Context, req workspaceRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	pp, err := s.previewParams(req.Workspace, sf.Snapshot())
	if err != nil {
		return handler.Error(err)
	}
	return handler.Templ(s.views.Editor(EditorParams{
		Workspace: req.Workspace,
		Catalog:   signature.Catalog(),
		Platforms: signature.Platforms(),
		Preview:   pp,
	}))
}

func (s *Service) preview(_ handler.Context, req workspaceRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	return s.view(req.Workspace, sf.Snapshot())
}

func (s *Service) updateData(_ handler.Context, req dataRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	return s.view(req.Workspace, sf.Update(req.Patch))
}

func (s *Service) updateStyle(_ handler.Context, req styleRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	return s.view(req.Workspace, sf.UpdateStyle(req.StylePatch))
}

func (s *Service) selectTemplate(_ handler.Context, req templateRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	t := signature.ParseTemplate(req.Template)
	if req.Preset {
		snap := sf.ApplyPreset(t)
		// the form fields follow the preset
		return s.viewSignals(req.Workspace, snap, editorSignals(snap))
	}
	snap := sf.SelectTemplate(t)
	return s.viewSignals(req.Workspace, snap, map[string]any{"template": string(snap.Style.Template)})
}

func (s *Service) setMode(_ handler.Context, req modeRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	m, err := preview.ParseMode(req.Mode)
	if err != nil {
		return handler.Error(fmt.Errorf("%w: %v", handler.ErrBadRequest, err))
	}
	if err := sf.SetMode(m); err != nil {
		return handler.Error(fmt.Errorf("%w: %v", handler.ErrBadRequest, err))
	}
	return s.view(req.Workspace, sf.Snapshot())
}

func (s *Service) drag(_ handler.Context, req dragRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	if err := sf.Drag(req.Section, req.DX, req.DY); err != nil {
		return handler.Error(fmt.Errorf("%w: %v", handler.ErrBadRequest, err))
	}
	return s.view(req.Workspace, sf.Snapshot())
}

func (s *Service) drop(_ handler.Context, req workspaceRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	sf.Drop()
	return s.view(req.Workspace, sf.Snapshot())
}

func (s *Service) uploadLogo(_ handler.Context, req logoRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	uri, err := file.ImportLogo(req.Logo, s.logoMaxBytes, s.logoMaxSide)
	if err != nil {
		return handler.Error(logoError(err))
	}
	return s.view(req.Workspace, sf.Update(signature.Patch{Logo: &uri}))
}

func (s *Service) removeLogo(_ handler.Context, req workspaceRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	return s.view(req.Workspace, sf.Update(signature.Patch{Logo: signature.String("")}))
}

func logoError(err error) error {
	switch {
	case errors.Is(err, file.ErrFileTooLarge):
		return fmt.Errorf("%w: %v", handler.ErrRequestEntityTooLarge, err)
	case errors.Is(err, file.ErrMIMETypeNotAllowed):
		return fmt.Errorf("%w: %v", handler.ErrUnsupportedMediaType, err)
	case errors.Is(err, file.ErrInvalidImage):
		return fmt.Errorf("%w: %v", handler.ErrUnprocessableEntity, err)
	}
	return err
}

func (s *Service) export(ctx handler.Context, req exportRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	snap := sf.Snapshot()
	d := s.dispatcher(req.Workspace)

	var o export.Outcome
	switch export.Action(req.Action) {
	case export.ActionPrimary:
		o = d.Primary(ctx, snap)
	case export.ActionCopyImage:
		o = d.CopyImage(ctx, snap)
	case export.ActionCopyRichText:
		o = d.CopyRichText(ctx, snap)
	case export.ActionCopyHTML:
		o = d.CopyHTML(ctx, snap)
	case export.ActionDownload:
		k, err := export.ParseKind(req.Kind)
		if err != nil {
			return handler.Error(fmt.Errorf("%w: %v", handler.ErrBadRequest, err))
		}
		o = d.Download(ctx, snap, k)
	default:
		return handler.Error(fmt.Errorf("%w: unknown export action %q", handler.ErrNotFound, req.Action))
	}

	if handler.IsDataStar(ctx.Request()) {
		return handler.Templ(s.views.Outcome(OutcomeParams{Workspace: req.Workspace, Outcome: o}),
			handler.WithTarget("#toasts"), handler.WithPatchMode(handler.PatchAppend))
	}
	status := http.StatusOK
	if o.Status == export.StatusFailed {
		status = http.StatusUnprocessableEntity
	}
	return handler.JSON(newOutcomeView(o), handler.WithJSONStatus(status))
}

func newOutcomeView(o export.Outcome) outcomeView {
	v := outcomeView{
		Action:      o.Action,
		Status:      o.Status,
		Message:     o.Message(),
		Mode:        o.Mode,
		Destination: o.Destination,
		Location:    o.Location,
	}
	if !o.Artifact.Empty() {
		v.Kind = o.Artifact.Kind
		v.Filename = o.Artifact.Name
		v.Size = o.Artifact.Size()
	}
	if o.Err != nil {
		v.Error = o.Err.Error()
	}
	return v
}

// download streams an artifact straight to the browser.
func (s *Service) download(ctx handler.Context, req downloadRequest) handler.Response {
	sf, err := s.surface(req.Workspace)
	if err != nil {
		return handler.Error(err)
	}
	k, err := export.ParseKind(req.Kind)
	if err != nil || !k.Downloadable() {
		return handler.Error(fmt.Errorf("%w: %q cannot be downloaded", handler.ErrNotFound, req.Kind))
	}
	a, err := s.dispatcher(req.Workspace).Build(ctx, sf.Snapshot(), k)
	if err != nil {
		return handler.Error(err)
	}
	if a.Empty() {
		return handler.Error(errNotReady)
	}
	return handler.Attachment(a.Name, a.ContentType, a.Body)
}

// readClipboard returns the last thing a workspace copied.
func (s *Service) readClipboard(_ handler.Context, req workspaceRequest) handler.Response {
	if _, err := s.surface(req.Workspace); err != nil {
		return handler.Error(err)
	}
	if s.clipboard != nil {
		return handler.Error(errClipboardEmpty)
	}
	e, ok := s.memoryFor(req.Workspace).Read()
	if !ok {
		return handler.Error(errClipboardEmpty)
	}
	return handler.Blob(e.ContentType, e.Data)
}

// view answers a state change: a preview patch for the editor and the
// workspace state for everyone else.
func (s *Service) view(id string, snap preview.Snapshot) handler.Response {
	return s.viewSignals(id, snap, nil)
}

// viewSignals is view that also patches client signals.
func (s *Service) viewSignals(id string, snap preview.Snapshot, signals map[string]any) handler.Response {
	pp, err := s.previewParams(id, snap)
	if err != nil {
		return handler.Error(err)
	}
	return viewResponse{
		html: handler.WithSignals(handler.Templ(s.views.Preview(pp)), signals),
		json: handler.JSON(stateView{
			Workspace: id,
			Data:      snap.Data,
			Config:    snap.Style,
			Mode:      snap.Mode,
			Version:   snap.Version,
			Ready:     snap.Ready(),
		}),
	}
}

func (s *Service) previewParams(id string, snap preview.Snapshot) (PreviewParams, error) {
	var markup string
	var err error
	if snap.Mode == preview.HTML {
		markup, err = normalize.Document(snap)
	} else {
		markup, err = normalize.Fragment(snap)
	}
	if err != nil {
		return PreviewParams{}, err
	}
	return PreviewParams{Workspace: id, Snapshot: snap, Markup: markup}, nil
}

type viewResponse struct {
	html handler.Response
	json handler.Response
}

func (v viewResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if handler.IsDataStar(r) || !wantsJSON(r) {
		return v.html.Render(w, r)
	}
	return v.json.Render(w, r)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
