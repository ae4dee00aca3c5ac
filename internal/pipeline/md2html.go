package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Sentinel errors for HTML conversion.
var (
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrUnknownEngine  = errors.New("unknown markdown engine")
	ErrUnknownHLStyle = errors.New("unknown highlight style")
)

// Engine names.
const (
	EngineNative   = "native"
	EngineGoldmark = "goldmark"
)

// DefaultHighlightStyle is the chroma style used by the goldmark engine.
const DefaultHighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML conversion.
// Implementations return an HTML fragment rooted at a single <div>.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// NewHTMLConverter returns the converter for engine.
// An empty engine selects the native engine.
func NewHTMLConverter(engine, highlightStyle string) (HTMLConverter, error) {
	switch engine {
	case "", EngineNative:
		return &NativeConverter{}, nil
	case EngineGoldmark:
		return NewGoldmarkConverter(highlightStyle)
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, engine, EngineNative, EngineGoldmark)
	}
}

// NativeConverter renders Markdown with the package's own block and
// inline parser.
type NativeConverter struct{}

// ToHTML builds the node tree of content and serializes it.
func (c *NativeConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := MarkdownToHTMLNode(content)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	out, err := root.HTML()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}
	return out, nil
}

// GoldmarkConverter converts Markdown with goldmark (CommonMark + GFM).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and
// class-based syntax highlighting. An empty style selects
// DefaultHighlightStyle.
func NewGoldmarkConverter(highlightStyle string) (*GoldmarkConverter, error) {
	if highlightStyle == "" {
		highlightStyle = DefaultHighlightStyle
	}
	if err := ValidateHighlightStyle(highlightStyle); err != nil {
		return nil, err
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					html.WithClasses(true), // pairs with HighlightCSS
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(), // raw HTML passes through like the native engine
		),
	)
	return &GoldmarkConverter{md: md}, nil
}

// ToHTML converts Markdown content to an HTML fragment wrapped in <div>.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: "<div>" + buf.String() + "</div>"}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// ValidateHighlightStyle checks that name is a registered chroma style.
func ValidateHighlightStyle(name string) error {
	if _, ok := styles.Registry[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownHLStyle, name)
	}
	return nil
}

// HighlightStyles lists the available chroma style names, sorted.
func HighlightStyles() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HighlightCSS returns the stylesheet for the classes emitted by the
// goldmark engine with the given style.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultHighlightStyle
	}
	if err := ValidateHighlightStyle(style); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	formatter := html.New(html.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
