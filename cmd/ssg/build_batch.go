package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	ssg "github.com/michaeldebetaz/static-site-generator"
	"github.com/michaeldebetaz/static-site-generator/internal/fileutil"
	"github.com/michaeldebetaz/static-site-generator/internal/pipeline"
)

// PageConverter is the interface for the page conversion service.
type PageConverter interface {
	Convert(ctx context.Context, input ssg.Input) (*ssg.Page, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*ssg.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() PageConverter
	Release(PageConverter)
	Size() int
}

// converterPool adapts *ssg.ConverterPool to Pool.
type converterPool struct {
	p *ssg.ConverterPool
}

// Acquire returns nil, not a typed nil interface, when creation failed.
func (c converterPool) Acquire() PageConverter {
	conv := c.p.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

func (c converterPool) Release(conv PageConverter) {
	if sc, ok := conv.(*ssg.Converter); ok {
		c.p.Release(sc)
	}
}

func (c converterPool) Size() int { return c.p.Size() }

// PageToBuild pairs a content file with its output location.
type PageToBuild struct {
	InputPath  string
	OutputPath string
}

// BuildResult holds the outcome of a single page.
type BuildResult struct {
	InputPath  string
	OutputPath string
	Title      string
	Skipped    bool // draft page left out of the build
	Bytes      int
	Err        error
	Duration   time.Duration
}

// discoverPages maps every Markdown file under contentDir to its output path.
func discoverPages(contentDir, publicDir string) ([]PageToBuild, error) {
	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", fileutil.ErrNotDirectory, contentDir)
	}

	files, err := fileutil.FindMarkdown(contentDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPages, contentDir)
	}

	pages := make([]PageToBuild, 0, len(files))
	for _, f := range files {
		out, err := fileutil.HTMLOutputPath(contentDir, publicDir, f)
		if err != nil {
			return nil, err
		}
		pages = append(pages, PageToBuild{InputPath: f, OutputPath: out})
	}
	return pages, nil
}

// buildBatch renders pages concurrently using the converter pool.
// Results keep the order of pages.
func buildBatch(ctx context.Context, pool Pool, pages []PageToBuild, params *buildParams) []BuildResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(pages) {
		concurrency = len(pages)
	}

	results := make([]BuildResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// Converter creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = BuildResult{
						InputPath: pages[idx].InputPath,
						Err:       ErrConverterInit,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{
						InputPath: pages[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = buildPage(ctx, conv, pages[idx], params)
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildPage renders one page and writes it below the public directory.
func buildPage(ctx context.Context, conv PageConverter, p PageToBuild, params *buildParams) BuildResult {
	start := time.Now()
	result := BuildResult{
		InputPath:  p.InputPath,
		OutputPath: p.OutputPath,
	}
	finish := func(err error) BuildResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(p.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}

	if !params.includeDrafts && isDraft(ctx, string(content)) {
		result.Skipped = true
		return finish(nil)
	}

	page, err := conv.Convert(ctx, ssg.Input{Markdown: string(content)})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", ErrPageTimeout, err)
		}
		return finish(err)
	}
	result.Title = page.Title

	if err := fileutil.WriteFile(p.OutputPath, page.HTML); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWritePage, err))
	}
	result.Bytes = len(page.HTML)
	return finish(nil)
}

// isDraft reports whether the page front matter sets draft: true. Front
// matter errors are left for Convert to report.
func isDraft(ctx context.Context, content string) bool {
	src, err := (&pipeline.SourcePreprocessor{}).PreprocessMarkdown(ctx, content)
	return err == nil && src.FrontMatter.Draft
}

// BuildSummary tallies a build.
type BuildSummary struct {
	Succeeded   int
	Failed      int
	Skipped     int
	Bytes       int64
	StaticFiles int
	StaticBytes int64
	Elapsed     time.Duration
}

// summarize tallies page results and the static copy.
func summarize(results []BuildResult, static fileutil.CopyStats, elapsed time.Duration) BuildSummary {
	s := BuildSummary{
		StaticFiles: static.Files,
		StaticBytes: static.Bytes,
		Elapsed:     elapsed,
	}
	for _, r := range results {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Skipped:
			s.Skipped++
		default:
			s.Succeeded++
			s.Bytes += int64(r.Bytes)
		}
	}
	return s
}

// printResults outputs page results and the build summary.
func printResults(results []BuildResult, summary BuildSummary, quiet, verbose bool, env *Environment) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}
		if quiet {
			continue
		}
		switch {
		case r.Skipped:
			if verbose {
				fmt.Fprintf(env.Stdout, "Skipped draft %s\n", r.InputPath)
			}
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s %q (%v)\n", r.InputPath, r.OutputPath, r.Title, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if quiet {
		return
	}
	fmt.Fprintf(env.Stdout, "\nBuilt %s (%s), copied %s (%s) in %v\n",
		english.Plural(summary.Succeeded, "page", ""),
		humanize.Bytes(uint64(summary.Bytes)), // #nosec G115 -- byte counts are non-negative
		english.Plural(summary.StaticFiles, "static file", ""),
		humanize.Bytes(uint64(summary.StaticBytes)), // #nosec G115 -- byte counts are non-negative
		summary.Elapsed.Round(time.Millisecond),
	)
	if summary.Skipped > 0 || summary.Failed > 0 {
		fmt.Fprintf(env.Stdout, "%s skipped, %s failed\n",
			humanize.Comma(int64(summary.Skipped)),
			humanize.Comma(int64(summary.Failed)),
		)
	}
}
