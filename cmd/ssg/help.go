package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ssg <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build the site into the public directory")
	fmt.Fprintln(w, "  inspect     Show how a markdown file splits into blocks")
	fmt.Fprintln(w, "  doctor      Check the site layout and configuration")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'ssg help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ssg build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Delete the public directory, copy the static directory into it, then")
	fmt.Fprintln(w, "render every markdown page of the content directory through the template.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --content <dir>         Markdown pages (default \"content\")")
	fmt.Fprintln(w, "      --static <dir>          Files copied as-is (default \"static\")")
	fmt.Fprintln(w, "      --public <dir>          Output, wiped on each build (default \"public\")")
	fmt.Fprintln(w, "      --template <path>       Page template (default \"template.html\")")
	fmt.Fprintln(w, "      --base-path <path>      URL path the site is served from, e.g. /repo/")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --engine <s>            Markdown engine: native, goldmark")
	fmt.Fprintln(w, "      --highlight-style <s>   Code highlight style (goldmark engine)")
	fmt.Fprintln(w, "      --style <s>             CSS style name or file inlined into pages")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom styles/ and templates/ directory")
	fmt.Fprintln(w, "      --no-style              Disable inlined CSS")
	fmt.Fprintln(w, "      --include-drafts        Render pages marked draft: true")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Execution:")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-page timeout (e.g., 5s, 1m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SSG_CONFIG, SSG_CONTENT_DIR, SSG_STATIC_DIR, SSG_PUBLIC_DIR, SSG_TEMPLATE,")
	fmt.Fprintln(w, "  SSG_BASE_PATH, SSG_ENGINE, SSG_STYLE, SSG_TIMEOUT, SSG_WORKERS")
	fmt.Fprintln(w, "  Flags override environment variables, which override the config file.")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ssg inspect <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the blocks of a markdown file and how each one classifies.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --dump        Pretty-print inline spans and the HTML of each block")
	fmt.Fprintf(w, "      --width <n>   Preview width in terminal cells (default %d)\n", defaultPreviewWidth)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ssg doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the content, static and template setup before a build.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "      --json            Print results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: ssg version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: ssg help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
