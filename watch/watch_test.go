package watch

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestHandleGenerateSuccess(t *testing.T) {
	file := tempSource(t, "graph TD\n    A --> B\n")
	wa := newTestWatcher(t, file)

	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	rec := httptest.NewRecorder()

	wa.handleGenerate(rec, req)

	assert.EqualValuesf(t, rec.Code, http.StatusOK, "status code")
	assert.Truef(t, strings.Contains(rec.Header().Get("Content-Type"), "text/plain"), "Content-Type")
	assert.Truef(t, strings.Contains(rec.Body.String(), "┌"), "body should contain rendered box-drawing output")
}

func TestHandleGenerateInvalidSource(t *testing.T) {
	file := tempSource(t, "not a diagram at all\n")
	wa := newTestWatcher(t, file)

	req := httptest.NewRequest(http.MethodGet, "/graph", nil)
	rec := httptest.NewRecorder()

	wa.handleGenerate(rec, req)

	assert.EqualValuesf(t, rec.Code, http.StatusInternalServerError, "status code")
	assert.Truef(t, strings.Contains(rec.Body.String(), "render failed"), "body should describe the render failure")
}

func tempSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mmd")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func newTestWatcher(t *testing.T, file string) *Watcher {
	t.Helper()
	wa, err := New(Config{
		File:   file,
		Port:   "0",
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	return wa
}
