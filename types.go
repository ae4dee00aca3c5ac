package ssg

import (
	"time"

	"github.com/michaeldebetaz/static-site-generator/internal/pipeline"
)

// Engine names accepted by WithEngine.
const (
	EngineNative   = pipeline.EngineNative
	EngineGoldmark = pipeline.EngineGoldmark
)

// DefaultHighlightStyle is the chroma style used by the goldmark engine.
const DefaultHighlightStyle = pipeline.DefaultHighlightStyle

// Input contains conversion parameters for one page.
type Input struct {
	Markdown string // Markdown content, optionally with YAML front matter (required)
	Template string // Page template overriding the converter's (optional)
}

// FrontMatter holds the metadata block at the top of a page.
type FrontMatter struct {
	Title       string
	Description string
	Draft       bool
}

// Page is a rendered page.
type Page struct {
	Title       string      // From front matter, else the first "# " heading
	Content     string      // HTML fragment rendered from the Markdown body
	HTML        string      // Full document: template, styles and base path applied
	FrontMatter FrontMatter // Parsed front matter, zero if absent
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	template       string
	templateSet    bool
	basePath       string
	engine         string
	highlightStyle string
	styleInput     string // name, path, or CSS content
	resolvedStyle  string
	assetPath      string
}

// defaultTimeout bounds a single page conversion.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-page conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("ssg: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithTemplate sets the page template content. It must contain
// {{ Content }}; {{ Title }} is optional.
func WithTemplate(tmpl string) Option {
	return func(c *Converter) {
		c.cfg.template = tmpl
		c.cfg.templateSet = true
	}
}

// WithBasePath serves the site from a sub path: root-relative href and
// src values are prefixed with basePath ("/repo/" turns "/x.png" into
// "/repo/x.png").
func WithBasePath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.basePath = basePath
	}
}

// WithEngine selects the Markdown engine: EngineNative (default) or EngineGoldmark.
func WithEngine(engine string) Option {
	return func(c *Converter) {
		c.cfg.engine = engine
	}
}

// WithHighlightStyle sets the chroma style for code blocks rendered by
// the goldmark engine. Ignored by the native engine.
func WithHighlightStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = style
	}
}

// WithStyle sets the stylesheet inlined into every page. It accepts a
// style name ("default"), a file path ("./site.css") or CSS content
// ("body { margin: 0 }").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath loads styles and templates from a custom directory,
// falling back to the embedded defaults.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader.
// Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}
