package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// TextKind identifies the inline style of a TextSpan.
type TextKind int

// Inline span kinds.
const (
	Plain TextKind = iota
	Bold
	Italic
	Code
	Link
	Image
)

var textKindNames = [...]string{
	Plain:  "plain",
	Bold:   "bold",
	Italic: "italic",
	Code:   "code",
	Link:   "link",
	Image:  "image",
}

func (k TextKind) String() string {
	if k < 0 || int(k) >= len(textKindNames) {
		return fmt.Sprintf("TextKind(%d)", int(k))
	}
	return textKindNames[k]
}

// TextSpan is a typed run of inline text.
// URL is only meaningful for Link and Image spans.
// Two spans are equal when Text, Kind and URL all match (==).
type TextSpan struct {
	Text string
	Kind TextKind
	URL  string
}

func (s TextSpan) String() string {
	return fmt.Sprintf("TextSpan(%q, %s, %q)", s.Text, s.Kind, s.URL)
}

// Ref is a reference extracted from image or link syntax.
type Ref struct {
	Text string
	URL  string
}

// Image and link syntax. Bracket content may not contain ']' and the
// target may not contain ')'; nesting and escaping are not supported.
var (
	imagePattern = regexp.MustCompile(`!\[([^\]]*)\]\(([^\)]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\]]*)\]\(([^\)]*)\)`)
)

// TextToTextSpans tokenizes inline text.
//
// Passes run in a fixed order: bold (**), italic (*), code (`), images,
// then links. Bold runs before italic so that "**" is consumed whole.
// Links run after images so image markers are already carved out.
func TextToTextSpans(text string) []TextSpan {
	spans := []TextSpan{{Text: text, Kind: Plain}}
	spans = SplitByDelimiter(spans, "**", Bold)
	spans = SplitByDelimiter(spans, "*", Italic)
	spans = SplitByDelimiter(spans, "`", Code)
	spans = SplitImages(spans)
	spans = SplitLinks(spans)
	return spans
}

// SplitByDelimiter cuts every span on each occurrence of delimiter.
//
// A span with fewer than two occurrences passes through unchanged, so an
// unterminated marker stays literal text. Otherwise pieces alternate:
// even pieces keep the span's kind and are dropped when empty, odd pieces
// take kind. The last piece always keeps the span's kind, which means text
// after an odd trailing delimiter is never styled.
func SplitByDelimiter(spans []TextSpan, delimiter string, kind TextKind) []TextSpan {
	out := make([]TextSpan, 0, len(spans))
	if delimiter == "" {
		return append(out, spans...)
	}

	for _, span := range spans {
		pieces := cutAll(span.Text, delimiter)
		if len(pieces) < 3 {
			out = append(out, span)
			continue
		}

		last := len(pieces) - 1
		for i, piece := range pieces {
			switch {
			case i%2 == 0:
				if piece != "" {
					out = append(out, TextSpan{Text: piece, Kind: span.Kind})
				}
			case i == last:
				out = append(out, TextSpan{Text: piece, Kind: span.Kind})
			default:
				out = append(out, TextSpan{Text: piece, Kind: kind})
			}
		}
	}
	return out
}

// cutAll splits s around every occurrence of sep using a single cursor.
// It yields the same pieces as strings.Split for a non-empty sep.
func cutAll(s, sep string) []string {
	pieces := make([]string, 0, strings.Count(s, sep)+1)
	cursor := 0
	for {
		idx := strings.Index(s[cursor:], sep)
		if idx < 0 {
			break
		}
		pieces = append(pieces, s[cursor:cursor+idx])
		cursor += idx + len(sep)
	}
	return append(pieces, s[cursor:])
}

// ExtractImages returns every ![alt](url) reference in left-to-right order.
func ExtractImages(text string) []Ref {
	return extractRefs(imagePattern, text)
}

// ExtractLinks returns every [text](url) reference in left-to-right order.
//
// Image markers are not excluded: on raw text containing ![alt](url) the
// trailing [alt](url) also matches. TextToTextSpans avoids this by carving
// out images before links.
func ExtractLinks(text string) []Ref {
	return extractRefs(linkPattern, text)
}

func extractRefs(re *regexp.Regexp, text string) []Ref {
	matches := re.FindAllStringSubmatch(text, -1)
	refs := make([]Ref, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, Ref{Text: m[1], URL: m[2]})
	}
	return refs
}

// SplitImages replaces image markers inside spans with Image spans.
func SplitImages(spans []TextSpan) []TextSpan {
	return splitByPattern(spans, imagePattern, Image)
}

// SplitLinks replaces link markers inside spans with Link spans.
func SplitLinks(spans []TextSpan) []TextSpan {
	return splitByPattern(spans, linkPattern, Link)
}

// splitByPattern walks the matches of re left to right. Text before each
// match is emitted with the span's kind when non-empty, the match becomes
// a span of kind, and any non-empty tail follows. Spans without matches
// pass through unchanged.
func splitByPattern(spans []TextSpan, re *regexp.Regexp, kind TextKind) []TextSpan {
	out := make([]TextSpan, 0, len(spans))
	for _, span := range spans {
		matches := re.FindAllStringSubmatchIndex(span.Text, -1)
		if len(matches) == 0 {
			out = append(out, span)
			continue
		}

		cursor := 0
		for _, m := range matches {
			if before := span.Text[cursor:m[0]]; before != "" {
				out = append(out, TextSpan{Text: before, Kind: span.Kind})
			}
			out = append(out, TextSpan{
				Text: span.Text[m[2]:m[3]],
				Kind: kind,
				URL:  span.Text[m[4]:m[5]],
			})
			cursor = m[1]
		}
		if rest := span.Text[cursor:]; rest != "" {
			out = append(out, TextSpan{Text: rest, Kind: span.Kind})
		}
	}
	return out
}
