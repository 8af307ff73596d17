package studio_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/file"
	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/raster"
	"github.com/dmitrymomot/sigkit/pkg/ratelimiter"
	"github.com/dmitrymomot/sigkit/pkg/signature"
	"github.com/dmitrymomot/sigkit/pkg/studio"
)

var fakePNG = []byte("\x89PNG\r\n\x1a\nfake")

type stubRaster struct{}

func (stubRaster) Rasterize(_ context.Context, snap preview.Snapshot) (raster.Image, error) {
	if !snap.Ready() {
		return raster.Image{}, raster.ErrNotReady
	}
	return raster.Image{PNG: fakePNG, Width: 2, Height: 2, Ratio: 2}, nil
}

type env struct {
	t   *testing.T
	svc *studio.Service
	h   http.Handler
}

func newEnv(t *testing.T, opts ...studio.Option) *env {
	t.Helper()
	svc := studio.New(stubRaster{}, opts...)
	return &env{t: t, svc: svc, h: svc.Handle()}
}

func (e *env) do(r *http.Request) *httptest.ResponseRecorder {
	e.t.Helper()
	rec := httptest.NewRecorder()
	e.h.ServeHTTP(rec, r)
	return rec
}

func (e *env) workspace() string {
	e.t.Helper()
	rec := e.do(httptest.NewRequest(http.MethodPost, "/w", nil))
	require.Equal(e.t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(e.t, strings.HasPrefix(loc, "/w/"), loc)
	return strings.TrimPrefix(loc, "/w/")
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Accept", "application/json")
	return r
}

type state struct {
	Data struct {
		Workspace string          `json:"workspace"`
		Data      signature.Data  `json:"data"`
		Config    signature.Style `json:"config"`
		Mode      string          `json:"mode"`
		Ready     bool            `json:"ready"`
	} `json:"data"`
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) state {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var s state
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func TestService_Editor(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()
	assert.Equal(t, 1, e.svc.Workspaces().Len())

	rec := e.do(httptest.NewRequest(http.MethodGet, "/w/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Signature Studio</title>")
	assert.Contains(t, body, `id="preview"`)
	assert.Contains(t, body, "data-signals=")
	assert.Contains(t, body, studio.DatastarScript)
	assert.Contains(t, body, `id="toasts"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestService_UnknownWorkspace(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/w/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>404</h1>")

	rec = e.do(jsonRequest(http.MethodPost, "/w/missing/data", `{"name":"Jane"}`))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"workspace_not_found"`)
}

func TestService_UpdateData(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		id := e.workspace()

		s := decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/data",
			`{"name":"Jane Lee","socials":{"github":"octocat"}}`)))
		assert.Equal(t, id, s.Data.Workspace)
		assert.Equal(t, "Jane Lee", s.Data.Data.Name)
		assert.Equal(t, "octocat", s.Data.Data.Socials[signature.GitHub])
		assert.True(t, s.Data.Ready)
	})

	t.Run("datastar", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		id := e.workspace()

		r := httptest.NewRequest(http.MethodPost, "/w/"+id+"/data",
			strings.NewReader(`{"name":"Jane Lee","template":"tech","primaryColor":"#6366f1"}`))
		r.Header.Set("Datastar-Request", "true")
		r.Header.Set("Content-Type", "application/json")
		rec := e.do(r)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, rec.Body.String(), "datastar-patch-elements")
		assert.Contains(t, rec.Body.String(), "Jane Lee")
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		id := e.workspace()

		rec := e.do(jsonRequest(http.MethodPost, "/w/"+id+"/data", `{"name":`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestService_Style(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()

	s := decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/style", `{"primaryColor":"#ff0000"}`)))
	assert.Equal(t, "#ff0000", s.Data.Config.PrimaryColor)
}

func TestService_Template(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()
	decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/data", `{"name":"Jane Lee"}`)))

	s := decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/template/modern", "")))
	assert.Equal(t, signature.Modern, s.Data.Config.Template)
	assert.Equal(t, "Jane Lee", s.Data.Data.Name)

	s = decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/template/minimal?preset=true", "")))
	assert.Equal(t, signature.Minimal, s.Data.Config.Template)
	assert.Equal(t, signature.Preset(signature.Minimal).Name, s.Data.Data.Name)

	s = decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/template/unknown", "")))
	assert.Equal(t, signature.DefaultTemplate, s.Data.Config.Template)
}

func TestService_TemplateSignals(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()

	r := httptest.NewRequest(http.MethodPost, "/w/"+id+"/template/elegant", nil)
	r.Header.Set("Datastar-Request", "true")
	rec := e.do(r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "datastar-patch-elements")
	assert.Contains(t, body, "datastar-patch-signals")
	assert.Contains(t, body, `"template":"elegant"`)
}

func TestService_Mode(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()

	s := decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/mode/html", "")))
	assert.Equal(t, "html", s.Data.Mode)

	rec := e.do(httptest.NewRequest(http.MethodGet, "/w/"+id+"/preview", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<pre class="source"><code>&lt;!DOCTYPE html&gt;`)
	assert.Contains(t, rec.Body.String(), "Copy HTML")

	rec = e.do(jsonRequest(http.MethodPost, "/w/"+id+"/mode/pdf", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestService_DragDrop(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()

	rec := e.do(jsonRequest(http.MethodPost, "/w/"+id+"/drag?section=identity&dx=8&dy=-8", ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(jsonRequest(http.MethodPost, "/w/"+id+"/drag?section=footer&dx=1", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(jsonRequest(http.MethodPost, "/w/"+id+"/drop", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func logoUpload(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("logo", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.Header.Set("Accept", "application/json")
	return r
}

func TestService_Logo(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var logo bytes.Buffer
	require.NoError(t, png.Encode(&logo, img))

	e := newEnv(t)
	id := e.workspace()

	s := decodeState(t, e.do(logoUpload(t, "/w/"+id+"/logo", "logo.png", logo.Bytes())))
	assert.True(t, strings.HasPrefix(s.Data.Data.Logo, "data:image/png;base64,"), s.Data.Data.Logo)

	rec := e.do(logoUpload(t, "/w/"+id+"/logo", "notes.txt", []byte("just some text")))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	r := httptest.NewRequest(http.MethodDelete, "/w/"+id+"/logo", nil)
	r.Header.Set("Accept", "application/json")
	s = decodeState(t, e.do(r))
	assert.Empty(t, s.Data.Data.Logo)
}

type outcome struct {
	Data struct {
		Action      string `json:"action"`
		Status      string `json:"status"`
		Message     string `json:"message"`
		Destination string `json:"destination"`
		Location    string `json:"location"`
		Filename    string `json:"filename"`
		Error       string `json:"error"`
	} `json:"data"`
}

func exportAction(t *testing.T, e *env, id, action string) (int, outcome) {
	t.Helper()
	rec := e.do(jsonRequest(http.MethodPost, "/w/"+id+"/export/"+action, ""))
	var o outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o), rec.Body.String())
	return rec.Code, o
}

func TestService_ExportClipboard(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()

	rec := e.do(httptest.NewRequest(http.MethodGet, "/w/"+id+"/clipboard", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	code, o := exportAction(t, e, id, "copy-html")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "done", o.Data.Status)
	assert.Equal(t, "clipboard", o.Data.Destination)
	assert.Equal(t, "Copied to clipboard", o.Data.Message)

	rec = e.do(httptest.NewRequest(http.MethodGet, "/w/"+id+"/clipboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<!DOCTYPE html>"))

	code, o = exportAction(t, e, id, "copy-image")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "done", o.Data.Status)
	rec = e.do(httptest.NewRequest(http.MethodGet, "/w/"+id+"/clipboard", nil))
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, fakePNG, rec.Body.Bytes())
}

func TestService_ExportDownload(t *testing.T) {
	t.Parallel()

	t.Run("no storage", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		id := e.workspace()

		code, o := exportAction(t, e, id, "primary")
		assert.Equal(t, http.StatusUnprocessableEntity, code)
		assert.Equal(t, "failed", o.Data.Status)
		assert.Equal(t, "Export failed", o.Data.Message)
		assert.NotEmpty(t, o.Data.Error)
	})

	t.Run("local storage", func(t *testing.T) {
		t.Parallel()
		store, err := file.NewLocalStorage(t.TempDir(), "/exports")
		require.NoError(t, err)
		e := newEnv(t, studio.WithStorage(store))
		id := e.workspace()
		decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/data", `{"name":"Jane Lee"}`)))

		code, o := exportAction(t, e, id, "download?kind=html")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "done", o.Data.Status)
		assert.Equal(t, "jane-lee.html", o.Data.Filename)
		assert.NotContains(t, o.Data.Location, id)
		assert.True(t, strings.HasSuffix(o.Data.Location, "/jane-lee.html"), o.Data.Location)
		assert.True(t, store.Exists(context.Background(), strings.TrimPrefix(o.Data.Location, "/exports/")))

		code, _ = exportAction(t, e, id, "download?kind=richtext")
		assert.Equal(t, http.StatusUnprocessableEntity, code)

		code, _ = exportAction(t, e, id, "download?kind=bogus")
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("unknown action", func(t *testing.T) {
		t.Parallel()
		e := newEnv(t)
		id := e.workspace()
		rec := e.do(jsonRequest(http.MethodPost, "/w/"+id+"/export/print", ""))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestService_ExportToast(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()

	r := httptest.NewRequest(http.MethodPost, "/w/"+id+"/export/copy-richtext", nil)
	r.Header.Set("Datastar-Request", "true")
	rec := e.do(r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "selector #toasts")
	assert.Contains(t, body, "mode append")
	assert.Contains(t, body, "Copied to clipboard")
	assert.Contains(t, body, "/w/"+id+"/clipboard")
}

func TestService_Download(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()
	decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/data", `{"name":"Jane Lee"}`)))

	rec := e.do(httptest.NewRequest(http.MethodGet, "/w/"+id+"/download/png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=jane-lee.png", rec.Header().Get("Content-Disposition"))
	assert.Equal(t, fakePNG, rec.Body.Bytes())

	rec = e.do(httptest.NewRequest(http.MethodGet, "/w/"+id+"/download/html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=jane-lee.html", rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "Jane Lee")

	rec = e.do(httptest.NewRequest(http.MethodGet, "/w/"+id+"/download/text", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestService_DeleteWorkspace(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	id := e.workspace()

	rec := e.do(httptest.NewRequest(http.MethodDelete, "/w/"+id, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, e.svc.Workspaces().Len())

	rec = e.do(httptest.NewRequest(http.MethodGet, "/w/"+id+"/preview", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestService_API(t *testing.T) {
	t.Parallel()

	e := newEnv(t)

	t.Run("templates", func(t *testing.T) {
		t.Parallel()
		rec := e.do(httptest.NewRequest(http.MethodGet, "/api/templates", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var out struct {
			Data []signature.CatalogEntry `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, signature.Catalog(), out.Data)
	})

	t.Run("save and fetch", func(t *testing.T) {
		t.Parallel()
		rec := e.do(jsonRequest(http.MethodPost, "/api/signatures",
			`{"data":{"name":"Jane Lee","email":"jane@acme.io"},"config":{"template":"modern"}}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var saved signature.Saved
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
		assert.NotEmpty(t, saved.ID)
		assert.Equal(t, "Jane Lee", saved.Data.Name)
		assert.Equal(t, signature.Modern, saved.Config.Template)
		assert.False(t, saved.CreatedAt.IsZero())

		rec = e.do(httptest.NewRequest(http.MethodGet, "/api/signatures/"+saved.ID, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), saved.ID)

		rec = e.do(httptest.NewRequest(http.MethodGet, "/api/signatures/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing payload", func(t *testing.T) {
		t.Parallel()
		for _, path := range []string{"/api/signatures", "/api/signature-to-html"} {
			rec := e.do(jsonRequest(http.MethodPost, path, `{"data":{"name":"Jane"}}`))
			assert.Equal(t, http.StatusBadRequest, rec.Code, path)
			assert.Contains(t, rec.Body.String(), "missing required data", path)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		t.Parallel()
		rec := e.do(httptest.NewRequest(http.MethodPut, "/api/signatures", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Contains(t, rec.Body.String(), "method_not_allowed")
	})

	t.Run("signature to html", func(t *testing.T) {
		t.Parallel()
		rec := e.do(jsonRequest(http.MethodPost, "/api/signature-to-html",
			`{"data":{"name":"Jane Lee","socials":{"github":"octocat"}},"config":{}}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "Jane Lee")
		assert.Contains(t, rec.Body.String(), "Github")

		rec = e.do(jsonRequest(http.MethodPost, "/api/signature-to-html", `{"data":{},"config":{}}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestService_Health(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	rec := e.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ALIVE", rec.Body.String())
	rec = e.do(httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, "READY", rec.Body.String())

	h := studio.New(nil).Handle()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
}

func TestService_Exports(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := file.NewLocalStorage(dir, "/exports")
	require.NoError(t, err)
	e := newEnv(t, studio.WithStorage(store), studio.WithExports("/exports", file.Server(dir)))
	id := e.workspace()
	decodeState(t, e.do(jsonRequest(http.MethodPost, "/w/"+id+"/data", `{"name":"Jane Lee"}`)))

	code, o := exportAction(t, e, id, "download?kind=html")
	require.Equal(t, http.StatusOK, code)
	key := strings.TrimPrefix(o.Data.Location, "/exports/")

	rec := e.do(httptest.NewRequest(http.MethodGet, o.Data.Location, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Lee")

	for _, listing := range []string{"/exports/", "/exports/" + strings.TrimSuffix(key, "jane-lee.html")} {
		rec = e.do(httptest.NewRequest(http.MethodGet, listing, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, listing)
		assert.NotContains(t, rec.Body.String(), id, listing)
	}

	rec = e.do(httptest.NewRequest(http.MethodDelete, "/w/"+id, nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, store.Exists(context.Background(), key), "artifacts go with their workspace")
	rec = e.do(httptest.NewRequest(http.MethodGet, o.Data.Location, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestService_Home(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	for range 3 {
		rec := e.do(httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<form method="post" action="/w">`)
	}
	assert.Equal(t, 0, e.svc.Workspaces().Len())

	e.workspace()
	assert.Equal(t, 1, e.svc.Workspaces().Len())
}

func TestService_EvictedWorkspace(t *testing.T) {
	t.Parallel()

	e := newEnv(t, studio.WithRegistry(preview.NewRegistry(preview.RegistryConfig{Capacity: 1})))
	first := e.workspace()
	second := e.workspace()
	assert.Equal(t, 1, e.svc.Workspaces().Len())

	rec := e.do(httptest.NewRequest(http.MethodGet, "/w/"+first+"/preview", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = e.do(httptest.NewRequest(http.MethodGet, "/w/"+second+"/preview", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestService_ExportLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithFormat(logger.FormatJSON), logger.WithOutput(&buf), logger.WithLevel(slog.LevelDebug))
	e := newEnv(t, studio.WithLogger(log))
	id := e.workspace()

	code, _ := exportAction(t, e, id, "copy-html")
	require.Equal(t, http.StatusOK, code)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var exports int
	for _, line := range lines {
		assert.LessOrEqual(t, strings.Count(line, `"component":`), 1, line)
		if strings.Contains(line, `"component":"export"`) {
			exports++
		}
	}
	assert.Positive(t, exports)
}

func TestThrottle(t *testing.T) {
	t.Parallel()

	limiter, err := ratelimiter.New(ratelimiter.Config{Burst: 1, Interval: time.Hour})
	require.NoError(t, err)
	t.Cleanup(limiter.Close)
	e := newEnv(t, studio.WithRateLimit(limiter))
	id := e.workspace()

	download := func(ip string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/w/"+id+"/download/png", nil)
		r.Header.Set("X-Forwarded-For", ip)
		return e.do(r)
	}

	rec := download("203.0.113.7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = download("203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, download("203.0.113.8").Code)

	r := httptest.NewRequest(http.MethodGet, "/w/"+id+"/preview", nil)
	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	assert.Equal(t, http.StatusOK, e.do(r).Code, "editing is not throttled")
}
