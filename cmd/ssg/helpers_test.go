package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testTemplate is a minimal page template with both placeholders.
const testTemplate = `<!DOCTYPE html>
<html><head><title>{{ Title }}</title><link href="/index.css" rel="stylesheet"></head>
<body>{{ Content }}</body></html>`

// testEnv returns an Environment writing to buffers, with vars as the
// whole process environment.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	env := &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, stdout, stderr
}

// writeFiles creates files below root, keyed by slash-separated relative
// path.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

// setupSite lays out a site under a temp dir and returns the root.
func setupSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, files)
	return root
}

// siteArgs points build at the content, static, public and template
// locations of a site root.
func siteArgs(root string) []string {
	return []string{
		"--content", filepath.Join(root, "content"),
		"--static", filepath.Join(root, "static"),
		"--public", filepath.Join(root, "public"),
		"--template", filepath.Join(root, "template.html"),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
