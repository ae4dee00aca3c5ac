package pipeline

import (
	"strconv"
	"strings"
)

// BlockType is the structural kind of a Markdown block.
type BlockType int

// Block kinds. Every block classifies as exactly one of these.
const (
	Paragraph BlockType = iota
	Heading
	CodeBlock
	Quote
	UnorderedList
	OrderedList
)

var blockTypeNames = [...]string{
	Paragraph:     "paragraph",
	Heading:       "heading",
	CodeBlock:     "code",
	Quote:         "quote",
	UnorderedList: "unordered_list",
	OrderedList:   "ordered_list",
}

func (t BlockType) String() string {
	if t < 0 || int(t) >= len(blockTypeNames) {
		return "BlockType(" + strconv.Itoa(int(t)) + ")"
	}
	return blockTypeNames[t]
}

const (
	blockSeparator = "\n\n"
	codeFence      = "```"
	headingPrefix  = "# "
	quotePrefix    = ">"
)

// MarkdownToBlocks splits a document on blank lines. Blocks are trimmed
// and empty blocks dropped; order is preserved.
func MarkdownToBlocks(markdown string) []string {
	pieces := strings.Split(markdown, blockSeparator)
	blocks := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if block := strings.TrimSpace(piece); block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// ClassifyBlock returns the type of a block. First matching rule wins:
// "# " heading, fenced code, then (when the first line carries a quote or
// list marker) quote, unordered list or ordered list when every line
// agrees. Anything else, including blocks with inconsistent markers, is a
// paragraph.
func ClassifyBlock(block string) BlockType {
	if strings.HasPrefix(block, headingPrefix) {
		return Heading
	}

	if strings.HasPrefix(block, codeFence) && strings.HasSuffix(block, codeFence) {
		return CodeBlock
	}

	if strings.HasPrefix(block, quotePrefix) ||
		strings.HasPrefix(block, "- ") ||
		strings.HasPrefix(block, "* ") ||
		strings.HasPrefix(block, "1. ") {
		lines := strings.Split(block, "\n")

		switch {
		case allLines(lines, isQuoteLine):
			return Quote
		case allLines(lines, isUnorderedItem):
			return UnorderedList
		case allLines(lines, isOrderedItem):
			return OrderedList
		}
	}

	return Paragraph
}

func allLines(lines []string, pred func(i int, line string) bool) bool {
	for i, line := range lines {
		if !pred(i, line) {
			return false
		}
	}
	return true
}

func isQuoteLine(_ int, line string) bool {
	return strings.HasPrefix(line, quotePrefix)
}

func isUnorderedItem(_ int, line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}

// isOrderedItem requires strict numbering: line i starts with "{i+1}. ".
func isOrderedItem(i int, line string) bool {
	return strings.HasPrefix(line, orderedMarker(i))
}

func orderedMarker(i int) string {
	return strconv.Itoa(i+1) + ". "
}
