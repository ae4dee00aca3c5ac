package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/michaeldebetaz/static-site-generator/internal/fileutil"
	"github.com/michaeldebetaz/static-site-generator/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxBasePathLength = 256
	MaxNameLength     = 64 // style, engine and highlight names
	MaxWorkers        = 64
)

// Engine names accepted by Site.Engine.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// Defaults mirroring the conventional site layout.
const (
	DefaultContentDir = "content"
	DefaultStaticDir  = "static"
	DefaultPublicDir  = "public"
	DefaultTemplate   = "template.html"
	DefaultBasePath   = "/"
)

// Config holds all configuration for a site build.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Build  BuildConfig  `yaml:"build"`
	CSS    CSSConfig    `yaml:"css"`
	Assets AssetsConfig `yaml:"assets"`
}

// SiteConfig defines where the site reads from and writes to.
type SiteConfig struct {
	ContentDir string `yaml:"contentDir"`
	StaticDir  string `yaml:"staticDir"`
	PublicDir  string `yaml:"publicDir"`
	Template   string `yaml:"template"` // HTML file path; missing default falls back to the embedded template
	BasePath   string `yaml:"basePath"` // "/" when served from the domain root
}

// BuildConfig defines how pages are generated.
type BuildConfig struct {
	Engine         string `yaml:"engine"`         // "native" or "goldmark"
	HighlightStyle string `yaml:"highlightStyle"` // chroma style, goldmark engine only
	Workers        int    `yaml:"workers"`        // 0 = auto
	IncludeDrafts  bool   `yaml:"includeDrafts"`
}

// CSSConfig defines inline styling.
type CSSConfig struct {
	Style string `yaml:"style"` // Asset style name (empty = none)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and enumerated values.
// Called by LoadConfig; available to callers building a Config by hand.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.contentDir", c.Site.ContentDir, MaxPathLength},
		{"site.staticDir", c.Site.StaticDir, MaxPathLength},
		{"site.publicDir", c.Site.PublicDir, MaxPathLength},
		{"site.template", c.Site.Template, MaxPathLength},
		{"site.basePath", c.Site.BasePath, MaxBasePathLength},
		{"build.engine", c.Build.Engine, MaxNameLength},
		{"build.highlightStyle", c.Build.HighlightStyle, MaxNameLength},
		{"css.style", c.CSS.Style, MaxNameLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch c.Build.Engine {
	case "", EngineNative, EngineGoldmark:
	default:
		return fmt.Errorf("%w: build.engine must be %q or %q, got %q",
			ErrInvalidValue, EngineNative, EngineGoldmark, c.Build.Engine)
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d",
			ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	if c.Site.BasePath != "" && !strings.HasPrefix(c.Site.BasePath, "/") {
		return fmt.Errorf("%w: site.basePath must start with '/', got %q", ErrInvalidValue, c.Site.BasePath)
	}

	return c.validatePublicDir()
}

// validatePublicDir rejects a public directory whose cleaning would remove
// source files: one equal to the static directory, or equal to or
// containing the content or static directory.
func (c *Config) validatePublicDir() error {
	if c.Site.PublicDir == "" {
		return nil
	}
	public, err := fileutil.ResolvePath(c.Site.PublicDir)
	if err != nil {
		return fmt.Errorf("%w: site.publicDir: %v", ErrInvalidValue, err)
	}

	sources := []struct{ field, dir string }{
		{"site.contentDir", c.Site.ContentDir},
		{"site.staticDir", c.Site.StaticDir},
	}
	for _, src := range sources {
		if src.dir == "" {
			continue
		}
		dir, err := fileutil.ResolvePath(src.dir)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, src.field, err)
		}
		if fileutil.Within(public, dir) {
			return fmt.Errorf("%w: site.publicDir %q is cleaned before each build and must not contain %s %q",
				ErrInvalidValue, c.Site.PublicDir, src.field, src.dir)
		}
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the conventional layout: content/, static/ and
// public/ next to template.html, served from the domain root.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			ContentDir: DefaultContentDir,
			StaticDir:  DefaultStaticDir,
			PublicDir:  DefaultPublicDir,
			Template:   DefaultTemplate,
			BasePath:   DefaultBasePath,
		},
		Build: BuildConfig{Engine: EngineNative},
	}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched in standard locations. A missing file is an error.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func isFilePath(s string) bool {
	if strings.ContainsRune(s, '/') {
		return true
	}
	return runtime.GOOS == "windows" && strings.ContainsRune(s, '\\')
}

// SearchPaths lists the files LoadConfig tries for a config name, in
// order: ./name.yaml, ./name.yml, then the same under the user config
// directory's ssg/ folder.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "ssg", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
