package hints

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join(string(filepath.Separator)+"home", "frodo", ".config", "ssg", "blog.yaml")

	tests := []struct {
		name     string
		searched []string
		want     []string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"blog.yaml", "blog.yml", userPath},
			want:     []string{"--config", "or create " + userPath},
		},
		{
			name:     "local paths only",
			searched: []string{"blog.yaml"},
			want:     []string{"--config"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.searched)
			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint should be prefixed, got %q", hint)
			}
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint %q should contain %q", hint, w)
				}
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("ForStyleNotFound(nil) = %q, want empty", got)
	}
	got := ForStyleNotFound([]string{"default", "minimal"})
	if got != "\n  hint: available: default, minimal" {
		t.Errorf("ForStyleNotFound = %q", got)
	}
}

func TestForUnknownEngine(t *testing.T) {
	t.Parallel()

	got := ForUnknownEngine([]string{"native", "goldmark"})
	if !strings.Contains(got, "native, goldmark") {
		t.Errorf("ForUnknownEngine = %q, should list engines", got)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"timeout", ForTimeout(), "--timeout"},
		{"output directory", ForOutputDirectory(), "writable"},
		{"no title", ForNoTitle(), "# Title"},
		{"no title front matter", ForNoTitle(), "title:"},
		{"template placeholder", ForTemplatePlaceholder(), "{{ Content }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !strings.HasPrefix(tt.got, "\n  hint: ") {
				t.Errorf("hint should be prefixed, got %q", tt.got)
			}
			if !strings.Contains(tt.got, tt.want) {
				t.Errorf("hint %q should contain %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormat_Empty(t *testing.T) {
	t.Parallel()

	if format("") != "" {
		t.Error("format(\"\") should be empty")
	}
	if formatHints(nil) != "" {
		t.Error("formatHints(nil) should be empty")
	}
}
