package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/binder"
)

type saveRequest struct {
	Data   map[string]string `json:"data"`
	Config map[string]string `json:"config"`
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/api/signatures",
			strings.NewReader(`{"data":{"name":"Jane Lee"},"config":{"template":"modern"}}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		var req saveRequest
		require.NoError(t, binder.JSON()(r, &req))
		assert.Equal(t, "Jane Lee", req.Data["name"])
		assert.Equal(t, "modern", req.Config["template"])
	})

	tests := []struct {
		name        string
		contentType string
		body        string
		want        error
	}{
		{"missing content type", "", `{}`, binder.ErrMissingContentType},
		{"wrong media type", "text/plain", `{}`, binder.ErrUnsupportedMediaType},
		{"empty body", "application/json", ``, binder.ErrInvalidJSON},
		{"malformed", "application/json", `{"data":`, binder.ErrInvalidJSON},
		{"trailing data", "application/json", `{} {}`, binder.ErrInvalidJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				r.Header.Set("Content-Type", tt.contentType)
			}
			var req saveRequest
			assert.ErrorIs(t, binder.JSON()(r, &req), tt.want)
		})
	}

	t.Run("body limit", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"data":{"name":"`+strings.Repeat("x", 64)+`"}}`))
		r.Header.Set("Content-Type", "application/json")
		r.Body = http.MaxBytesReader(rec, r.Body, 16)

		var req saveRequest
		assert.ErrorIs(t, binder.JSON()(r, &req), binder.ErrBodyTooLarge)
	})
}

type exportRequest struct {
	Workspace string   `path:"workspace"`
	Kind      string   `path:"kind"`
	Mode      string   `query:"mode"`
	Ratio     float64  `query:"ratio"`
	Sections  []string `query:"section"`
	Preview   *bool    `query:"preview"`
	Ignored   string
}

func TestQueryAndPath(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/w/ws-1/export/png?mode=html&ratio=1.5&section=identity,contact&section=social&preview=on&ignored=x", nil)
	params := map[string]string{"workspace": "ws-1", "kind": "png"}
	lookup := func(_ *http.Request, name string) string { return params[name] }

	var req exportRequest
	require.NoError(t, binder.Path(lookup)(r, &req))
	require.NoError(t, binder.Query()(r, &req))

	assert.Equal(t, "ws-1", req.Workspace)
	assert.Equal(t, "png", req.Kind)
	assert.Equal(t, "html", req.Mode)
	assert.Equal(t, 1.5, req.Ratio)
	assert.Equal(t, []string{"identity", "contact", "social"}, req.Sections)
	require.NotNil(t, req.Preview)
	assert.True(t, *req.Preview)
	assert.Empty(t, req.Ignored)
}

func TestQuery_Invalid(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?ratio=two", nil)
	var req exportRequest
	assert.ErrorIs(t, binder.Query()(r, &req), binder.ErrInvalidQuery)

	assert.ErrorIs(t, binder.Query()(r, req), binder.ErrInvalidQuery)
	assert.ErrorIs(t, binder.Path(nil)(r, &req), binder.ErrInvalidPath)
}

type styleForm struct {
	Primary  string `form:"primaryColor"`
	FontSize int    `form:"fontSize"`
	Rounded  bool   `form:"rounded"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		body := url.Values{"primaryColor": {"#6366f1"}, "fontSize": {"14"}, "rounded": {"yes"}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var f styleForm
		require.NoError(t, binder.Form()(r, &f))
		assert.Equal(t, styleForm{Primary: "#6366f1", FontSize: 14, Rounded: true}, f)
	})

	t.Run("json is not applicable", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")
		var f styleForm
		assert.ErrorIs(t, binder.Form()(r, &f), binder.ErrNotApplicable)
	})

	t.Run("bad number", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("fontSize=big"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var f styleForm
		assert.ErrorIs(t, binder.Form()(r, &f), binder.ErrInvalidForm)
	})
}

type logoRequest struct {
	Logo  *multipart.FileHeader   `file:"logo,required"`
	Alt   string                  `form:"alt"`
	Extra []*multipart.FileHeader `file:"extra"`
}

func multipartRequest(t *testing.T, field, name string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("alt", "Acme logo"))
	if field != "" {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/logo", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	return r
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("binds header and form values", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, "logo", "acme.png", []byte("png bytes"))

		var req logoRequest
		require.NoError(t, binder.File()(r, &req))
		require.NoError(t, binder.Form()(r, &req))

		require.NotNil(t, req.Logo)
		assert.Equal(t, "acme.png", req.Logo.Filename)
		assert.Equal(t, int64(len("png bytes")), req.Logo.Size)
		assert.Equal(t, "Acme logo", req.Alt)
		assert.Empty(t, req.Extra)
	})

	t.Run("required part missing", func(t *testing.T) {
		t.Parallel()
		r := multipartRequest(t, "", "", nil)
		var req logoRequest
		assert.ErrorIs(t, binder.File()(r, &req), binder.ErrMissingFile)
	})

	t.Run("not multipart", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")
		var req logoRequest
		assert.ErrorIs(t, binder.File()(r, &req), binder.ErrNotApplicable)
	})
}

type editorSignals struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

func TestSignals(t *testing.T) {
	t.Parallel()

	t.Run("query", func(t *testing.T) {
		t.Parallel()
		q := url.Values{"datastar": {`{"name":"Jane Lee","title":"CTO"}`}}
		r := httptest.NewRequest(http.MethodGet, "/w/ws-1/preview?"+q.Encode(), nil)

		var s editorSignals
		require.NoError(t, binder.Signals()(r, &s))
		assert.Equal(t, editorSignals{Name: "Jane Lee", Title: "CTO"}, s)
	})

	t.Run("body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/w/ws-1/data", strings.NewReader(`{"name":"Jane Lee"}`))
		r.Header.Set("Datastar-Request", "true")
		r.Header.Set("Content-Type", "application/json")

		var s editorSignals
		require.NoError(t, binder.Signals()(r, &s))
		assert.Equal(t, "Jane Lee", s.Name)

		var again editorSignals
		assert.ErrorIs(t, binder.JSON()(r, &again), binder.ErrNotApplicable)
	})

	t.Run("plain request", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		var s editorSignals
		assert.ErrorIs(t, binder.Signals()(r, &s), binder.ErrNotApplicable)
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		r.Header.Set("Datastar-Request", "true")
		var s editorSignals
		assert.ErrorIs(t, binder.Signals()(r, &s), binder.ErrInvalidSignals)
	})
}
