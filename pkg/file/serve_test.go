package file_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sigkit/pkg/file"
)

func TestServer(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a1", "jane-lee.png"), []byte("png"), 0o644))
	h := file.Server(dir)

	tests := []struct {
		path string
		code int
	}{
		{"/a1/jane-lee.png", http.StatusOK},
		{"/", http.StatusNotFound},
		{"/a1/", http.StatusNotFound},
		{"/a1", http.StatusNotFound},
		{"/a1/missing.png", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code)
			assert.NotContains(t, rec.Body.String(), "jane-lee.png")
		})
	}
}
