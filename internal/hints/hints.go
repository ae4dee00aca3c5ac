// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForTimeout returns a hint about increasing the per-page timeout.
func ForTimeout() string {
	return format("for large pages, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the user config location among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := string(filepath.Separator) + "ssg" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForNoTitle returns hints for pages without a level-1 heading.
func ForNoTitle() string {
	return formatHints([]string{
		"start the page with a '# Title' line",
		"or set 'title:' in the front matter",
	})
}

// ForTemplatePlaceholder returns hints for templates missing a placeholder.
func ForTemplatePlaceholder() string {
	return format("the template must contain {{ Content }}; {{ Title }} is optional")
}

// ForStyleNotFound returns hints listing the available names.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownEngine returns hints listing the supported engines.
func ForUnknownEngine(engines []string) string {
	return ForStyleNotFound(engines)
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
