package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/mattn/go-runewidth"

	"github.com/michaeldebetaz/static-site-generator/internal/pipeline"
)

// defaultPreviewWidth is the block preview width in terminal cells.
const defaultPreviewWidth = 60

// minPreviewWidth keeps room for the ellipsis.
const minPreviewWidth = 8

const previewEllipsis = "…"

// Dumps go to files and pipes as often as to terminals.
func init() {
	pp.ColoringEnabled = false
}

// runInspect prints how a single Markdown file splits into blocks and how
// each block classifies. --dump adds the inline spans and node of every
// block.
func runInspect(args []string, env *Environment) error {
	flags, positional, err := parseInspectFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: inspect expects exactly one markdown file", ErrUsage)
	}
	if flags.width < minPreviewWidth {
		return fmt.Errorf("%w: --width must be at least %d", ErrUsage, minPreviewWidth)
	}

	path := positional[0]
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	src, err := (&pipeline.SourcePreprocessor{}).PreprocessMarkdown(context.Background(), string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return inspectSource(env.Stdout, src, flags)
}

// inspectSource writes the block table, and the dump when requested.
func inspectSource(w io.Writer, src pipeline.Source, flags *inspectFlags) error {
	if src.FrontMatter != (pipeline.FrontMatter{}) {
		fmt.Fprintf(w, "front matter: title=%q draft=%t\n", src.FrontMatter.Title, src.FrontMatter.Draft)
	}

	blocks := pipeline.MarkdownToBlocks(src.Body)
	fmt.Fprintf(w, "%d block(s)\n", len(blocks))

	for i, block := range blocks {
		kind := pipeline.ClassifyBlock(block)
		fmt.Fprintf(w, "%3d  %s  %s\n", i+1, runewidth.FillRight(kind.String(), 14), preview(block, flags.width))
		if !flags.dump {
			continue
		}

		if kind == pipeline.Paragraph {
			pp.Fprintln(w, pipeline.TextToTextSpans(block))
		}
		node, err := pipeline.BlockToNode(block)
		if err != nil {
			return fmt.Errorf("block %d: %w", i+1, err)
		}
		out, err := node.HTML()
		if err != nil {
			return fmt.Errorf("block %d: %w", i+1, err)
		}
		fmt.Fprintf(w, "     %s\n", out)
	}
	return nil
}

// preview flattens a block to one line and truncates it to width cells,
// counting wide runes as two.
func preview(block string, width int) string {
	flat := strings.Join(strings.Fields(block), " ")
	return runewidth.Truncate(flat, width, previewEllipsis)
}
