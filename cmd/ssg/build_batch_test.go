package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	ssg "github.com/michaeldebetaz/static-site-generator"
	"github.com/michaeldebetaz/static-site-generator/internal/fileutil"
)

// mockConverter renders "<p>" + markdown + "</p>" and records calls.
type mockConverter struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (m *mockConverter) Convert(_ context.Context, input ssg.Input) (*ssg.Page, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &ssg.Page{Title: "T", HTML: "<p>" + input.Markdown + "</p>"}, nil
}

// testPool hands out a single shared converter, or nil when failing.
type testPool struct {
	conv PageConverter
	size int
}

func (p *testPool) Acquire() PageConverter { return p.conv }
func (p *testPool) Release(PageConverter)  {}
func (p *testPool) Size() int              { return p.size }

func writePages(t *testing.T, names ...string) (string, []PageToBuild) {
	t.Helper()
	root := t.TempDir()
	files := make(map[string]string, len(names))
	for _, n := range names {
		files["content/"+n] = "# " + n
	}
	writeFiles(t, root, files)

	pages, err := discoverPages(filepath.Join(root, "content"), filepath.Join(root, "public"))
	if err != nil {
		t.Fatalf("discoverPages: %v", err)
	}
	return root, pages
}

func TestBuildBatch(t *testing.T) {
	t.Parallel()

	root, pages := writePages(t, "a.md", "b.md", "c/d.md")
	mock := &mockConverter{}

	results := buildBatch(context.Background(), &testPool{conv: mock, size: 2}, pages, &buildParams{})

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("result %d: unexpected error %v", i, r.Err)
		}
		if r.InputPath != pages[i].InputPath {
			t.Errorf("result %d: InputPath = %q, want %q (order must be kept)", i, r.InputPath, pages[i].InputPath)
		}
	}
	if mock.calls != 3 {
		t.Errorf("Convert called %d times, want 3", mock.calls)
	}

	got := readFile(t, filepath.Join(root, "public", "c", "d.html"))
	if got != "<p># c/d.md</p>" {
		t.Errorf("d.html = %q", got)
	}
}

func TestBuildBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := buildBatch(context.Background(), &testPool{size: 1}, nil, &buildParams{}); got != nil {
		t.Errorf("buildBatch(nil) = %v, want nil", got)
	}
}

func TestBuildBatch_AcquireFailure(t *testing.T) {
	t.Parallel()

	_, pages := writePages(t, "a.md", "b.md")

	results := buildBatch(context.Background(), &testPool{conv: nil, size: 2}, pages, &buildParams{})

	for i, r := range results {
		if !errors.Is(r.Err, ErrConverterInit) {
			t.Errorf("result %d: error = %v, want ErrConverterInit", i, r.Err)
		}
	}
}

func TestBuildBatch_Cancelled(t *testing.T) {
	t.Parallel()

	_, pages := writePages(t, "a.md", "b.md")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &mockConverter{}
	results := buildBatch(ctx, &testPool{conv: mock, size: 1}, pages, &buildParams{})

	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d: error = %v, want context.Canceled", i, r.Err)
		}
	}
	if mock.calls != 0 {
		t.Errorf("Convert called %d times after cancel, want 0", mock.calls)
	}
}

func TestBuildPage(t *testing.T) {
	t.Parallel()

	t.Run("timeout is reported as page timeout", func(t *testing.T) {
		t.Parallel()

		_, pages := writePages(t, "a.md")
		mock := &mockConverter{err: context.DeadlineExceeded}

		r := buildPage(context.Background(), mock, pages[0], &buildParams{})
		if !errors.Is(r.Err, ErrPageTimeout) {
			t.Errorf("error = %v, want ErrPageTimeout", r.Err)
		}
	})

	t.Run("converter error passes through", func(t *testing.T) {
		t.Parallel()

		_, pages := writePages(t, "a.md")
		mock := &mockConverter{err: ssg.ErrNoTitle}

		r := buildPage(context.Background(), mock, pages[0], &buildParams{})
		if !errors.Is(r.Err, ssg.ErrNoTitle) {
			t.Errorf("error = %v, want ErrNoTitle", r.Err)
		}
	})

	t.Run("unreadable source", func(t *testing.T) {
		t.Parallel()

		p := PageToBuild{InputPath: filepath.Join(t.TempDir(), "gone.md"), OutputPath: filepath.Join(t.TempDir(), "gone.html")}
		r := buildPage(context.Background(), &mockConverter{}, p, &buildParams{})
		if !errors.Is(r.Err, ErrReadMarkdown) {
			t.Errorf("error = %v, want ErrReadMarkdown", r.Err)
		}
	})

	t.Run("unwritable output", func(t *testing.T) {
		t.Parallel()

		root, pages := writePages(t, "a.md")
		// A file where the output directory should be.
		writeFiles(t, root, map[string]string{"blocker": "x"})
		p := pages[0]
		p.OutputPath = filepath.Join(root, "blocker", "a.html")

		r := buildPage(context.Background(), &mockConverter{}, p, &buildParams{})
		if !errors.Is(r.Err, ErrWritePage) {
			t.Errorf("error = %v, want ErrWritePage", r.Err)
		}
	})

	t.Run("draft skipped without converting", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeFiles(t, root, map[string]string{"d.md": "---\ndraft: true\n---\n# D"})
		p := PageToBuild{InputPath: filepath.Join(root, "d.md"), OutputPath: filepath.Join(root, "d.html")}
		mock := &mockConverter{}

		r := buildPage(context.Background(), mock, p, &buildParams{})
		if !r.Skipped || r.Err != nil {
			t.Errorf("result = %+v, want skipped", r)
		}
		if mock.calls != 0 {
			t.Error("drafts should not be converted")
		}
		if fileutil.FileExists(p.OutputPath) {
			t.Error("drafts should not be written")
		}
	})
}

func TestDiscoverPages(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"content/index.md":             "# i",
		"content/guide/setup.markdown": "# s",
		"content/notes.txt":            "skip",
	})

	pages, err := discoverPages(filepath.Join(root, "content"), filepath.Join(root, "public"))
	if err != nil {
		t.Fatalf("discoverPages: %v", err)
	}

	want := []PageToBuild{
		{filepath.Join(root, "content", "guide", "setup.markdown"), filepath.Join(root, "public", "guide", "setup.html")},
		{filepath.Join(root, "content", "index.md"), filepath.Join(root, "public", "index.html")},
	}
	if len(pages) != len(want) {
		t.Fatalf("pages = %v, want %v", pages, want)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("pages[%d] = %+v, want %+v", i, pages[i], want[i])
		}
	}

	t.Run("content is a file", func(t *testing.T) {
		t.Parallel()

		_, err := discoverPages(filepath.Join(root, "content", "index.md"), filepath.Join(root, "public"))
		if !errors.Is(err, fileutil.ErrNotDirectory) {
			t.Errorf("error = %v, want ErrNotDirectory", err)
		}
	})
}

func TestSummarizeAndPrint(t *testing.T) {
	t.Parallel()

	results := []BuildResult{
		{InputPath: "content/a.md", OutputPath: "public/a.html", Title: "A", Bytes: 1500},
		{InputPath: "content/b.md", OutputPath: "public/b.html", Title: "B", Bytes: 500},
		{InputPath: "content/c.md", Skipped: true},
		{InputPath: "content/d.md", Err: ssg.ErrNoTitle},
	}
	summary := summarize(results, fileutil.CopyStats{Files: 1, Bytes: 2048}, 1500*time.Millisecond)

	want := BuildSummary{Succeeded: 2, Failed: 1, Skipped: 1, Bytes: 2000, StaticFiles: 1, StaticBytes: 2048, Elapsed: 1500 * time.Millisecond}
	if summary != want {
		t.Errorf("summarize() = %+v, want %+v", summary, want)
	}

	t.Run("normal", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		printResults(results, summary, false, false, env)

		out := stdout.String()
		for _, s := range []string{"Created public/a.html", "Built 2 pages (2.0 kB)", "copied 1 static file (2.0 kB)", "1 skipped, 1 failed"} {
			if !strings.Contains(out, s) {
				t.Errorf("stdout should contain %q, got:\n%s", s, out)
			}
		}
		if strings.Contains(out, "content/c.md") {
			t.Error("skipped drafts are only listed in verbose mode")
		}
		if !strings.Contains(stderr.String(), "FAILED content/d.md") {
			t.Errorf("stderr should list the failure, got:\n%s", stderr.String())
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		printResults(results, summary, true, false, env)

		if stdout.Len() != 0 {
			t.Errorf("quiet stdout should be empty, got:\n%s", stdout.String())
		}
		if !strings.Contains(stderr.String(), "FAILED") {
			t.Error("quiet mode still reports failures")
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		printResults(results, summary, false, true, env)

		out := stdout.String()
		for _, s := range []string{`content/a.md -> public/a.html "A"`, "Skipped draft content/c.md"} {
			if !strings.Contains(out, s) {
				t.Errorf("stdout should contain %q, got:\n%s", s, out)
			}
		}
	})
}

func TestConverterPoolAdapter(t *testing.T) {
	t.Parallel()

	t.Run("failed creation is an untyped nil", func(t *testing.T) {
		t.Parallel()

		pool := ssg.NewConverterPool(1, ssg.WithEngine("unknown"))
		defer pool.Close()

		adapter := converterPool{pool}
		if conv := adapter.Acquire(); conv != nil {
			t.Errorf("Acquire() = %#v, want nil interface", conv)
		}
	})

	t.Run("acquire and release", func(t *testing.T) {
		t.Parallel()

		pool := ssg.NewConverterPool(2)
		defer pool.Close()

		adapter := converterPool{pool}
		if adapter.Size() != 2 {
			t.Errorf("Size() = %d, want 2", adapter.Size())
		}
		conv := adapter.Acquire()
		if conv == nil {
			t.Fatalf("Acquire() = nil, init error: %v", pool.InitError())
		}
		adapter.Release(conv)
		adapter.Release(&mockConverter{}) // foreign converters are ignored
	})
}
