package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds the directory layout flags.
type siteFlags struct {
	content  string
	static   string
	public   string
	template string
	basePath string
}

// renderFlags holds page rendering flags.
type renderFlags struct {
	engine         string
	highlightStyle string
	style          string
	assetPath      string
	noStyle        bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common        commonFlags
	site          siteFlags
	render        renderFlags
	workers       int
	timeout       string
	includeDrafts bool
}

// inspectFlags holds flags for the inspect command.
type inspectFlags struct {
	dump  bool
	width int
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSiteFlags adds directory layout flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.content, "content", "", "content directory with markdown pages (default \"content\")")
	fs.StringVar(&f.static, "static", "", "static directory copied as-is (default \"static\")")
	fs.StringVar(&f.public, "public", "", "output directory, wiped on each build (default \"public\")")
	fs.StringVar(&f.template, "template", "", "page template file (default \"template.html\")")
	fs.StringVar(&f.basePath, "base-path", "", "URL path the site is served from, e.g. /repo/")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.engine, "engine", "", "markdown engine: native, goldmark")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlight style (goldmark engine)")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path inlined into pages")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable inlined CSS")
}

// newBuildFlagSet registers every build flag on a new FlagSet.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-page timeout (e.g., 5s, 1m)")
	fs.BoolVar(&f.includeDrafts, "include-drafts", false, "render pages marked draft: true")

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	addRenderFlags(fs, &f.render)

	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// newInspectFlagSet registers every inspect flag on a new FlagSet.
func newInspectFlagSet(f *inspectFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.BoolVar(&f.dump, "dump", false, "pretty-print inline spans and the node tree")
	fs.IntVar(&f.width, "width", defaultPreviewWidth, "preview width in terminal cells")
	return fs
}

// parseInspectFlags parses inspect command flags and returns positional args.
func parseInspectFlags(args []string, usage io.Writer) (*inspectFlags, []string, error) {
	f := &inspectFlags{}
	fs := newInspectFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printInspectUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}
