// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// The native engine works in two stages:
//   - Block parsing: MarkdownToBlocks splits a document on blank lines,
//     ClassifyBlock assigns each block one of six types, and BlockToNode
//     turns it into an htmlnode.Node.
//   - Inline tokenizing: TextToTextSpans turns paragraph, list item and
//     quote text into typed spans (plain, bold, italic, code, link, image).
//
// MarkdownToHTMLNode ties both stages together under a root <div>.
//
// Around the engine the package also provides source preprocessing
// (line endings, Unicode normalization, front matter), an alternative
// goldmark engine, page template injection and base path rewriting.
// None of these stages escape HTML.
package pipeline
