package web

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEmbeddedAssetsPresent(t *testing.T) {
	for _, name := range []string{"embed.js", "widget.html"} {
		if _, err := fs.Stat(StaticFS(), name); err != nil {
			t.Errorf("Expected embedded asset %s: %v", name, err)
		}
	}
}

func TestScriptHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/embed.js", nil)
	w := httptest.NewRecorder()

	ScriptHandler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "javascript") {
		t.Errorf("Expected javascript content type, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "AskioEmbed") {
		t.Error("Expected embed script to expose the AskioEmbed global")
	}
}

func TestWidgetHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/widget/some-id", nil)
	w := httptest.NewRecorder()

	WidgetHandler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Expected html content type, got %q", ct)
	}
}
