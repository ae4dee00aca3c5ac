package pipeline

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// rewrittenAttrs are the URL attributes prefixed by RewriteRootPaths.
var rewrittenAttrs = map[string]bool{
	"href": true,
	"src":  true,
}

// NormalizeBasePath returns basePath with exactly one leading and one
// trailing slash. Empty means the site root "/".
func NormalizeBasePath(basePath string) string {
	trimmed := strings.Trim(basePath, "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed + "/"
}

// RewriteRootPaths prefixes root-relative href and src values with
// basePath so a site can be served from a sub path, e.g. "/docs/x.png"
// becomes "/repo/docs/x.png" for base path "/repo/".
//
// Protocol-relative ("//host") and absolute URLs, anchors and relative
// paths are left alone. Only rewritten tags are re-serialized; all other
// bytes are copied through unchanged.
func RewriteRootPaths(htmlContent, basePath string) (string, error) {
	prefix := NormalizeBasePath(basePath)
	if prefix == "/" {
		return htmlContent, nil
	}

	z := html.NewTokenizer(strings.NewReader(htmlContent))
	var b strings.Builder
	b.Grow(len(htmlContent))

	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return b.String(), nil

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			tok := z.Token()
			if rewriteAttrs(&tok, prefix) {
				b.WriteString(tok.String())
			} else {
				b.WriteString(raw)
			}

		default:
			b.Write(z.Raw())
		}
	}
}

// rewriteAttrs prefixes root-relative URL attributes of tok in place and
// reports whether any changed.
func rewriteAttrs(tok *html.Token, prefix string) bool {
	changed := false
	for i, attr := range tok.Attr {
		if !rewrittenAttrs[attr.Key] || !isRootRelative(attr.Val) {
			continue
		}
		tok.Attr[i].Val = prefix + strings.TrimPrefix(attr.Val, "/")
		changed = true
	}
	return changed
}

// isRootRelative reports whether path starts with a single "/".
func isRootRelative(path string) bool {
	return strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//")
}
