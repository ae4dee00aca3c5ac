package pipeline

import (
	"errors"
	"fmt"

	"github.com/michaeldebetaz/static-site-generator/internal/htmlnode"
)

// ErrUnknownTextKind indicates a span whose kind is outside the TextKind set.
var ErrUnknownTextKind = errors.New("unknown text kind")

// SpanToNode converts a span to its leaf element.
//
// Links always carry href and images always carry src, even when the
// URL is empty: [x]() renders <a href="">x</a>. Images become <img>
// leaves with an empty value and src/alt attributes, in that order.
func SpanToNode(span TextSpan) (htmlnode.Node, error) {
	switch span.Kind {
	case Plain:
		return htmlnode.NewText(span.Text), nil
	case Bold:
		return htmlnode.NewLeaf("b", span.Text), nil
	case Italic:
		return htmlnode.NewLeaf("i", span.Text), nil
	case Code:
		return htmlnode.NewLeaf("code", span.Text), nil
	case Link:
		return htmlnode.NewLeaf("a", span.Text, htmlnode.Attr{Key: "href", Value: span.URL}), nil
	case Image:
		return htmlnode.NewLeaf("img", "",
			htmlnode.Attr{Key: "src", Value: span.URL},
			htmlnode.Attr{Key: "alt", Value: span.Text},
		), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownTextKind, int(span.Kind))
	}
}

// TextToNodes tokenizes text and converts every span to a node.
func TextToNodes(text string) ([]htmlnode.Node, error) {
	spans := TextToTextSpans(text)
	nodes := make([]htmlnode.Node, 0, len(spans))
	for _, span := range spans {
		n, err := SpanToNode(span)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
