package ssg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/michaeldebetaz/static-site-generator/internal/fileutil"
	"github.com/michaeldebetaz/static-site-generator/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.SourcePreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.NativeConverter)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TemplateInjector     = (*pipeline.TemplateInjection)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
)

// Converter renders Markdown pages into complete HTML documents.
// Create with NewConverter and call Convert once per page. A Converter is
// safe for concurrent use.
type Converter struct {
	cfg              converterConfig
	assetLoader      AssetLoader
	preprocessor     pipeline.MarkdownPreprocessor
	htmlConverter    pipeline.HTMLConverter
	templateInjector pipeline.TemplateInjector
	cssInjector      pipeline.CSSInjector
	css              string // page style plus highlight CSS
}

// NewConverter creates a Converter.
// Returns an error if the engine, highlight style, style, asset path or
// template is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			engine:  EngineNative,
		},
		preprocessor:     &pipeline.SourcePreprocessor{},
		templateInjector: &pipeline.TemplateInjection{},
		cssInjector:      &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	if c.htmlConverter == nil {
		conv, err := pipeline.NewHTMLConverter(c.cfg.engine, c.cfg.highlightStyle)
		if err != nil {
			return nil, convertPipelineError(err)
		}
		c.htmlConverter = conv
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}
	c.css = c.cfg.resolvedStyle

	if c.cfg.engine == EngineGoldmark {
		hlCSS, err := pipeline.HighlightCSS(c.cfg.highlightStyle)
		if err != nil {
			return nil, convertPipelineError(err)
		}
		c.css = joinCSS(c.css, hlCSS)
	}

	if !c.cfg.templateSet {
		tmpl, err := c.assetLoader.LoadTemplate(DefaultTemplate)
		if err != nil {
			return nil, fmt.Errorf("loading default template: %w", err)
		}
		c.cfg.template = tmpl
	}
	if err := pipeline.ValidateTemplate(c.cfg.template); err != nil {
		return nil, convertPipelineError(err)
	}

	return c, nil
}

// Convert runs the pipeline for one page: front matter, Markdown to HTML,
// title, template, styles and base path.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (page *Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	src, err := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err != nil {
		return nil, convertPipelineError(err)
	}

	content, err := c.htmlConverter.ToHTML(ctx, src.Body)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", convertPipelineError(err))
	}

	title := strings.TrimSpace(src.FrontMatter.Title)
	if title == "" {
		title, err = pipeline.ExtractTitle(src.Body)
		if err != nil {
			return nil, convertPipelineError(err)
		}
	}

	tmpl := c.cfg.template
	if input.Template != "" {
		tmpl = input.Template
	}
	htmlContent, err := c.templateInjector.InjectPage(ctx, tmpl, pipeline.PageData{
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("applying template: %w", convertPipelineError(err))
	}

	htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, c.css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err = pipeline.RewriteRootPaths(htmlContent, c.cfg.basePath)
	if err != nil {
		return nil, wrapError(ErrBasePath, err)
	}

	return &Page{
		Title:       title,
		Content:     content,
		HTML:        htmlContent,
		FrontMatter: FrontMatter(src.FrontMatter),
	}, nil
}

// Engine returns the Markdown engine in use.
func (c *Converter) Engine() string {
	return c.cfg.engine
}

// resolveStyle turns the style input (name, path, or CSS content) into CSS.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if strings.Contains(input, "{") {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput is the trust boundary for library users building Input by hand.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if input.Template != "" {
		if err := pipeline.ValidateTemplate(input.Template); err != nil {
			return convertPipelineError(err)
		}
	}
	return nil
}

// MarkdownToHTML renders Markdown with the native engine and returns the
// HTML fragment rooted at <div>. Front matter is not interpreted.
func MarkdownToHTML(markdown string) (string, error) {
	root, err := pipeline.MarkdownToHTMLNode(markdown)
	if err != nil {
		return "", wrapError(ErrHTMLConversion, err)
	}
	out, err := root.HTML()
	if err != nil {
		return "", wrapError(ErrHTMLConversion, err)
	}
	return out, nil
}

// Engines lists the supported Markdown engines.
func Engines() []string {
	return []string{EngineNative, EngineGoldmark}
}

// HighlightStyles lists the chroma styles accepted by WithHighlightStyle.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

func joinCSS(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n")
}

// convertPipelineError maps internal pipeline errors to public errors.
func convertPipelineError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pipeline.ErrNoTitle):
		return wrapError(ErrNoTitle, err)
	case errors.Is(err, pipeline.ErrFrontMatter):
		return wrapError(ErrFrontMatter, err)
	case errors.Is(err, pipeline.ErrTemplatePlaceholder):
		return wrapError(ErrTemplatePlaceholder, err)
	case errors.Is(err, pipeline.ErrUnknownEngine):
		return wrapError(ErrUnknownEngine, err)
	case errors.Is(err, pipeline.ErrUnknownHLStyle):
		return wrapError(ErrUnknownHighlightStyle, err)
	case errors.Is(err, pipeline.ErrHTMLConversion):
		return wrapError(ErrHTMLConversion, err)
	default:
		return err
	}
}
