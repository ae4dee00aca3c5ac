package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/michaeldebetaz/static-site-generator/internal/yamlutil"
)

// ErrFrontMatter indicates a front matter block that is not valid YAML.
var ErrFrontMatter = errors.New("invalid front matter")

const frontMatterFence = "---"

var crlfOrCR = regexp.MustCompile(`\r\n?`)

// FrontMatter holds the optional YAML header of a page.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Draft       bool   `yaml:"draft"`
}

// Source is a preprocessed Markdown document.
type Source struct {
	Body        string
	FrontMatter FrontMatter
}

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) (Source, error)
}

// SourcePreprocessor normalizes raw page sources before parsing.
type SourcePreprocessor struct{}

// PreprocessMarkdown converts line endings to \n, applies Unicode NFC
// normalization and splits off the front matter.
func (p *SourcePreprocessor) PreprocessMarkdown(ctx context.Context, content string) (Source, error) {
	if err := ctx.Err(); err != nil {
		return Source{}, err
	}

	content = normalizeLineEndings(content)
	content = norm.NFC.String(content)

	fm, body, err := SplitFrontMatter(content)
	if err != nil {
		return Source{}, err
	}
	return Source{Body: body, FrontMatter: fm}, nil
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// body. Content without an opening fence on its first line, or without a
// closing fence, is returned unchanged as the body.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	var fm FrontMatter

	if !strings.HasPrefix(content, frontMatterFence+"\n") {
		return fm, content, nil
	}

	rest := content[len(frontMatterFence)+1:]
	var raw, body string
	switch {
	case strings.HasPrefix(rest, frontMatterFence+"\n"):
		body = rest[len(frontMatterFence)+1:]
	case rest == frontMatterFence:
	default:
		end := strings.Index(rest, "\n"+frontMatterFence+"\n")
		if end < 0 {
			if !strings.HasSuffix(rest, "\n"+frontMatterFence) {
				return fm, content, nil
			}
			end = len(rest) - len(frontMatterFence) - 1
			raw = rest[:end]
		} else {
			raw = rest[:end]
			body = rest[end+len(frontMatterFence)+2:]
		}
	}

	if strings.TrimSpace(raw) != "" {
		if err := yamlutil.Unmarshal([]byte(raw), &fm); err != nil {
			return FrontMatter{}, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
		}
	}
	return fm, body, nil
}
