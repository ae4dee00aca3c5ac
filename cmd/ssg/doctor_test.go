package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

// doctorSite writes a site plus a config pointing at it and returns the
// config path. extra is appended to the config file.
func doctorSite(t *testing.T, files map[string]string, extra ...string) string {
	t.Helper()
	root := setupSite(t, files)
	cfg := "site:\n" +
		"  contentDir: " + filepath.Join(root, "content") + "\n" +
		"  staticDir: " + filepath.Join(root, "static") + "\n" +
		"  publicDir: " + filepath.Join(root, "public") + "\n" +
		"  template: " + filepath.Join(root, "template.html") + "\n" +
		strings.Join(extra, "")
	writeFiles(t, root, map[string]string{"site.yaml": cfg})
	return filepath.Join(root, "site.yaml")
}

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		files        map[string]string
		vars         map[string]string
		extraConfig  string
		wantStatus   string
		wantPages    int
		wantDrafts   int
		wantMessages []string
	}{
		{
			name: "ready",
			files: map[string]string{
				"template.html":    testTemplate,
				"content/index.md": "# Home",
				"content/draft.md": "---\ndraft: true\n---\n# Draft",
				"static/index.css": "body{}",
			},
			wantStatus: statusReady,
			wantPages:  2,
			wantDrafts: 1,
		},
		{
			name: "warnings",
			files: map[string]string{
				"template.html":    "<body>{{ Content }}</body>",
				"content/index.md": "# Home",
				"content/wip.md":   "---\ndraft: true\n---\nno heading yet",
			},
			vars:         map[string]string{"SSG_THEME": "dark"},
			wantStatus:   statusWarnings,
			wantPages:    2,
			wantDrafts:   1,
			wantMessages: []string{"wip.md has no title heading (draft, skipped)", "no {{ Title }} placeholder", "not found, nothing will be copied", "SSG_THEME"},
		},
		{
			name: "untitled page",
			files: map[string]string{
				"template.html":    testTemplate,
				"content/index.md": "no heading",
				"static/index.css": "body{}",
			},
			wantStatus:   statusErrors,
			wantPages:    1,
			wantMessages: []string{"index.md has no title heading"},
		},
		{
			name: "untitled draft built with drafts",
			files: map[string]string{
				"template.html":    testTemplate,
				"content/wip.md":   "---\ndraft: true\n---\nno heading yet",
				"static/index.css": "body{}",
			},
			extraConfig:  "build:\n  includeDrafts: true\n",
			wantStatus:   statusErrors,
			wantPages:    1,
			wantDrafts:   1,
			wantMessages: []string{"wip.md has no title heading"},
		},
		{
			name: "errors",
			files: map[string]string{
				"template.html": "<body></body>",
				"content/x.txt": "no pages",
			},
			vars:         map[string]string{"SSG_ENGINE": "blackfriday"},
			wantStatus:   statusErrors,
			wantMessages: []string{"no markdown pages", "missing placeholder", "build.engine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := doctorSite(t, tt.files, tt.extraConfig)
			env, _, _ := testEnv(tt.vars)

			result := runDoctor(configPath, env)

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (warnings %v, errors %v)", result.Status, tt.wantStatus, result.Warnings, result.Errors)
			}
			if result.Site.Pages != tt.wantPages {
				t.Errorf("Pages = %d, want %d", result.Site.Pages, tt.wantPages)
			}
			if result.Site.Drafts != tt.wantDrafts {
				t.Errorf("Drafts = %d, want %d", result.Site.Drafts, tt.wantDrafts)
			}
			messages := strings.Join(append(result.Warnings, result.Errors...), "\n")
			for _, want := range tt.wantMessages {
				if !strings.Contains(messages, want) {
					t.Errorf("messages should contain %q, got:\n%s", want, messages)
				}
			}
		})
	}
}

func TestRunDoctor_PublicOverlapsSources(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"template.html":    testTemplate,
		"content/index.md": "# Home",
		"static/index.css": "body{}",
	}
	for _, public := range []string{".", "static"} {
		t.Run(public, func(t *testing.T) {
			t.Parallel()

			configPath := doctorSite(t, files)
			root := filepath.Dir(configPath)
			env, _, _ := testEnv(map[string]string{"SSG_PUBLIC_DIR": filepath.Join(root, public)})

			result := runDoctor(configPath, env)

			if result.Status != statusErrors {
				t.Fatalf("Status = %q, want %q (errors %v)", result.Status, statusErrors, result.Errors)
			}
			if !strings.Contains(strings.Join(result.Errors, "\n"), "site.publicDir") {
				t.Errorf("errors should name site.publicDir, got %v", result.Errors)
			}
		})
	}
}

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	configPath := doctorSite(t, map[string]string{
		"template.html":    testTemplate,
		"content/index.md": "# Home",
		"static/a.css":     "",
	})

	t.Run("text output", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		if code := runDoctorCmd([]string{"-c", configPath}, env); code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		for _, want := range []string{"ssg doctor", "1 page(s)", "Engine: native", "Status: Ready to build"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("output should contain %q, got:\n%s", want, stdout.String())
			}
		}
	})

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		if code := runDoctorCmd([]string{"--json", "--config", configPath}, env); code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}

		var got doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
		}
		if got.Status != statusReady || got.Site.Pages != 1 || !got.Site.TemplateFound {
			t.Errorf("result = %+v", got)
		}
	})

	t.Run("errors exit 1", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(nil)
		code := runDoctorCmd([]string{"-c", filepath.Join(t.TempDir(), "missing.yaml")}, env)
		if code != ExitGeneral {
			t.Errorf("exit code = %d, want %d", code, ExitGeneral)
		}
		if !strings.Contains(stdout.String(), "Not ready") {
			t.Errorf("output should report not ready, got:\n%s", stdout.String())
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(nil)
		if code := runDoctorCmd([]string{"--yaml"}, env); code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}
