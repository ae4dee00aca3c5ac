package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Page template placeholders.
const (
	TitlePlaceholder   = "{{ Title }}"
	ContentPlaceholder = "{{ Content }}"
)

// ErrTemplatePlaceholder indicates a page template without a content slot.
var ErrTemplatePlaceholder = errors.New("template missing placeholder")

// PageData holds the values substituted into a page template.
type PageData struct {
	Title   string
	Content string
}

// TemplateInjector defines the contract for rendering a page into a template.
type TemplateInjector interface {
	InjectPage(ctx context.Context, tmpl string, data PageData) (string, error)
}

// TemplateInjection fills the {{ Title }} and {{ Content }} placeholders
// of a page template.
type TemplateInjection struct{}

// ValidateTemplate checks that tmpl has a content placeholder.
// A missing title placeholder is allowed.
func ValidateTemplate(tmpl string) error {
	if !strings.Contains(tmpl, ContentPlaceholder) {
		return fmt.Errorf("%w: %s", ErrTemplatePlaceholder, ContentPlaceholder)
	}
	return nil
}

// InjectPage substitutes every placeholder occurrence in a single pass, so
// placeholder text inside the title or content is left alone.
func (t *TemplateInjection) InjectPage(ctx context.Context, tmpl string, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := ValidateTemplate(tmpl); err != nil {
		return "", err
	}

	r := strings.NewReplacer(
		TitlePlaceholder, data.Title,
		ContentPlaceholder, data.Content,
	)
	return r.Replace(tmpl), nil
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body ...>, or
// at the start of the document, whichever is found first.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		if closeIdx := strings.Index(htmlContent[idx:], ">"); closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
