package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/michaeldebetaz/static-site-generator/internal/htmlnode"
)

// ErrNoTitle indicates a document without a heading block.
var ErrNoTitle = errors.New("no title heading found")

// Tag of the synthetic root node wrapping all blocks.
const rootTag = "div"

// MarkdownToHTMLNode builds the node tree of a document: one node per
// block, in order, under a root <div>.
func MarkdownToHTMLNode(markdown string) (*htmlnode.Parent, error) {
	blocks := MarkdownToBlocks(markdown)
	children := make([]htmlnode.Node, 0, len(blocks))
	for i, block := range blocks {
		n, err := BlockToNode(block)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		children = append(children, n)
	}
	return htmlnode.NewParent(rootTag, children), nil
}

// BlockToNode classifies a block and converts it to a single node.
func BlockToNode(block string) (htmlnode.Node, error) {
	switch t := ClassifyBlock(block); t {
	case Heading:
		return headingToNode(block), nil
	case CodeBlock:
		return codeToNode(block), nil
	case Quote:
		return quoteToNode(block), nil
	case UnorderedList:
		return listToNode(block, "ul", unorderedPrefixLen)
	case OrderedList:
		return listToNode(block, "ol", orderedPrefixLen)
	case Paragraph:
		return paragraphToNode(block)
	default:
		return nil, fmt.Errorf("unhandled block type %s", t)
	}
}

// ExtractTitle returns the text of the first heading block.
func ExtractTitle(markdown string) (string, error) {
	for _, block := range MarkdownToBlocks(markdown) {
		if ClassifyBlock(block) == Heading {
			return headingText(block), nil
		}
	}
	return "", ErrNoTitle
}

// headingText trims every leading '#' and space, so "### Title" is "Title".
func headingText(block string) string {
	return strings.TrimLeft(block, "# ")
}

func headingToNode(block string) htmlnode.Node {
	return htmlnode.NewLeaf("h1", headingText(block))
}

// codeToNode trims backtick runs from both ends. The remaining text,
// including any info string and newlines, is kept verbatim.
func codeToNode(block string) htmlnode.Node {
	return htmlnode.NewLeaf("code", strings.Trim(block, "`"))
}

// quoteToNode renders a one-line quote as bare text and a multi-line
// quote as a <blockquote> of <p> lines.
func quoteToNode(block string) htmlnode.Node {
	lines := strings.Split(block, "\n")
	if len(lines) == 1 {
		return htmlnode.NewText(quoteLineText(lines[0]))
	}

	children := make([]htmlnode.Node, 0, len(lines))
	for _, line := range lines {
		children = append(children, htmlnode.NewLeaf("p", quoteLineText(line)))
	}
	return htmlnode.NewParent("blockquote", children)
}

func quoteLineText(line string) string {
	return strings.TrimLeft(strings.TrimPrefix(line, quotePrefix), " \t")
}

func paragraphToNode(block string) (htmlnode.Node, error) {
	children, err := TextToNodes(block)
	if err != nil {
		return nil, err
	}
	return htmlnode.NewParent("p", children), nil
}

// unorderedPrefixLen is the width of "- " and "* ".
func unorderedPrefixLen(int) int { return 2 }

// orderedPrefixLen is the width of the "{i+1}. " marker of line i.
func orderedPrefixLen(i int) int { return len(orderedMarker(i)) }

// listToNode builds a list whose items are the block lines with their
// marker stripped. A line yielding a single inline node becomes an <li>
// leaf carrying that node's value; otherwise the nodes are wrapped in an
// <li> parent.
func listToNode(block, tag string, prefixLen func(i int) int) (htmlnode.Node, error) {
	lines := strings.Split(block, "\n")
	items := make([]htmlnode.Node, 0, len(lines))
	for i, line := range lines {
		nodes, err := TextToNodes(line[prefixLen(i):])
		if err != nil {
			return nil, fmt.Errorf("list item %d: %w", i+1, err)
		}
		items = append(items, listItem(nodes))
	}
	return htmlnode.NewParent(tag, items), nil
}

func listItem(nodes []htmlnode.Node) htmlnode.Node {
	if len(nodes) == 1 {
		if leaf, ok := nodes[0].(*htmlnode.Leaf); ok {
			value, _ := leaf.Value()
			return htmlnode.NewLeaf("li", value)
		}
	}
	return htmlnode.NewParent("li", nodes)
}
