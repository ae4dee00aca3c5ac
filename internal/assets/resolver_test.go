package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssetResolver_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver: %v", err)
	}
	if r.custom != nil {
		t.Error("custom loader set without a base path")
	}
	if _, err := r.LoadTemplate(DefaultTemplateName); err != nil {
		t.Errorf("LoadTemplate(default) unexpected error: %v", err)
	}
}

func TestAssetResolver_CustomFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "templates/default.html", "custom {{ Content }}")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver: %v", err)
	}
	if r.custom == nil {
		t.Fatal("custom loader not set")
	}

	tmpl, err := r.LoadTemplate(DefaultTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if tmpl != "custom {{ Content }}" {
		t.Errorf("LoadTemplate(default) = %q, want custom template", tmpl)
	}

	// No custom stylesheet: falls back to the embedded one.
	css, err := r.LoadStyle(DefaultStyleName)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	if !strings.Contains(css, "body") {
		t.Error("fallback stylesheet should be the embedded default")
	}
}

func TestAssetResolver_InvalidBasePath(t *testing.T) {
	t.Parallel()

	_, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_ReadErrorNotMasked(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A directory where a file is expected makes ReadFile fail with a non-NotExist error.
	if err := os.MkdirAll(filepath.Join(dir, "styles", "default.css"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver: %v", err)
	}
	if _, err := r.LoadStyle(DefaultStyleName); !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle error = %v, want ErrAssetRead", err)
	}
}
