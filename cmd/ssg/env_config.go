package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/michaeldebetaz/static-site-generator/internal/config"
)

const envPrefix = "SSG_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // SSG_CONFIG: config file name or path
	ContentDir string        // SSG_CONTENT_DIR
	StaticDir  string        // SSG_STATIC_DIR
	PublicDir  string        // SSG_PUBLIC_DIR
	Template   string        // SSG_TEMPLATE
	BasePath   string        // SSG_BASE_PATH: e.g. /repo/ for GitHub Pages
	Engine     string        // SSG_ENGINE: native, goldmark
	Style      string        // SSG_STYLE: CSS style name or path
	Timeout    time.Duration // SSG_TIMEOUT: per-page timeout
	Workers    int           // SSG_WORKERS: parallel workers
}

// knownEnvVars lists valid SSG_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SSG_CONFIG":      true,
	"SSG_CONTENT_DIR": true,
	"SSG_STATIC_DIR":  true,
	"SSG_PUBLIC_DIR":  true,
	"SSG_TEMPLATE":    true,
	"SSG_BASE_PATH":   true,
	"SSG_ENGINE":      true,
	"SSG_STYLE":       true,
	"SSG_TIMEOUT":     true,
	"SSG_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable SSG_TIMEOUT and SSG_WORKERS values are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("SSG_CONFIG"),
		ContentDir: getenv("SSG_CONTENT_DIR"),
		StaticDir:  getenv("SSG_STATIC_DIR"),
		PublicDir:  getenv("SSG_PUBLIC_DIR"),
		Template:   getenv("SSG_TEMPLATE"),
		BasePath:   getenv("SSG_BASE_PATH"),
		Engine:     getenv("SSG_ENGINE"),
		Style:      getenv("SSG_STYLE"),
	}

	if timeout := getenv("SSG_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("SSG_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized SSG_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with set environment variables.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	setString(&cfg.Site.ContentDir, env.ContentDir)
	setString(&cfg.Site.StaticDir, env.StaticDir)
	setString(&cfg.Site.PublicDir, env.PublicDir)
	setString(&cfg.Site.Template, env.Template)
	setString(&cfg.Site.BasePath, env.BasePath)
	setString(&cfg.Build.Engine, env.Engine)
	setString(&cfg.CSS.Style, env.Style)
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
