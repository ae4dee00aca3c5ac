// Package ssg renders Markdown pages into complete HTML documents for a
// static site.
//
// # Quick Start
//
//	conv, err := ssg.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := conv.Convert(ctx, ssg.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("index.html", []byte(page.HTML), 0644)
//
// # Conversion Pipeline
//
//  1. Preprocessing: line endings, NFC normalization, YAML front matter
//  2. Markdown to HTML with the native engine or goldmark
//  3. Title: front matter "title", else the first "# " heading
//  4. Template: {{ Title }} and {{ Content }} substitution
//  5. Styles inlined as a <style> block
//  6. Root-relative links rewritten for the base path
//
// # Native Markdown Dialect
//
// The native engine splits a document into blocks on blank lines and
// classifies each block as a heading, code block, quote, unordered list,
// ordered list or paragraph. Inline text supports **bold**, *italic*,
// `code`, [links](url) and ![images](url). Delimiters do not nest.
//
// # Configuration
//
//	conv, err := ssg.NewConverter(
//	    ssg.WithEngine(ssg.EngineGoldmark),
//	    ssg.WithHighlightStyle("monokai"),
//	    ssg.WithStyle("default"),
//	    ssg.WithBasePath("/repo/"),
//	    ssg.WithTimeout(5 * time.Second),
//	)
//
// # Parallel Processing
//
// For whole-site builds, ConverterPool bounds concurrency:
//
//	pool := ssg.NewConverterPool(ssg.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//
// # Errors
//
// Errors can be inspected with errors.Is against the exported sentinels,
// for example ErrNoTitle for a page without a heading or front matter title.
package ssg
