package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	ssg "github.com/michaeldebetaz/static-site-generator"
)

// Shell names a shell that completion scripts can be generated for.
type Shell string

const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned for a shell without a generator.
var ErrUnsupportedShell = errors.New("unsupported shell")

// shellSupport pairs a generator with the line that installs its script.
type shellSupport struct {
	shell    Shell
	generate func(io.Writer) error
	rcFile   string
	install  string
}

// supportedShells is ordered as listed in the usage text.
var supportedShells = []shellSupport{
	{ShellBash, generateBash, "~/.bashrc", `eval "$(ssg completion bash)"`},
	{ShellZsh, generateZsh, "~/.zshrc, before compinit", `eval "$(ssg completion zsh)"`},
	{ShellFish, generateFish, "", "ssg completion fish > ~/.config/fish/completions/ssg.fish"},
	{ShellPowerShell, generatePowerShell, "$PROFILE", "ssg completion powershell | Out-String | Invoke-Expression"},
}

// flagType selects how a flag value is completed.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagEnum
	flagFile
	flagDir
)

// flagDef is a flag as the script generators see it.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // flagEnum
	FileGlob string   // flagFile, comma separated
}

// commandDef is a subcommand as the script generators see it.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool
	FilePattern string
}

// valueHint refines the completion of a flag beyond its pflag type.
func valueHint(name string) (flagType, []string, string, bool) {
	switch name {
	case "engine":
		return flagEnum, ssg.Engines(), "", true
	case "config":
		return flagFile, nil, "*.yaml,*.yml", true
	case "style":
		return flagFile, nil, "*.css", true
	case "template":
		return flagFile, nil, "*.html", true
	case "content", "static", "public", "asset-path":
		return flagDir, nil, "", true
	}
	return flagString, nil, "", false
}

func typeOf(value flag.Value) flagType {
	t := value.Type()
	switch {
	case t == "bool":
		return flagBool
	case strings.HasPrefix(t, "int"), strings.HasPrefix(t, "uint"):
		return flagInt
	}
	return flagString
}

// extractFlagsFromFlagSet reads flags from the FlagSet a command really
// parses, so completion cannot drift from the CLI.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var defs []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		def := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage, Type: typeOf(f.Value)}
		if typ, values, glob, ok := valueHint(f.Name); ok {
			def.Type, def.Values, def.FileGlob = typ, values, glob
		}
		defs = append(defs, def)
	})
	return defs
}

func getCommands() []commandDef {
	build := extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{}))
	inspect := extractFlagsFromFlagSet(newInspectFlagSet(&inspectFlags{}))
	doctor := extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{}))

	return []commandDef{
		{Name: "build", Desc: "Build the site into the public directory", Flags: build},
		{Name: "inspect", Desc: "Show how a markdown file splits into blocks", Flags: inspect,
			TakesFiles: true, FilePattern: "*.md,*.markdown"},
		{Name: "doctor", Desc: "Check the site layout and configuration", Flags: doctor},
		{Name: "completion", Desc: "Generate shell completion script"},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	for _, s := range supportedShells {
		if s.shell == shell {
			return s.generate(w)
		}
	}
	return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(completionShells, ", "))
}

func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func printCompletionUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: ssg completion <shell>

Print a completion script for one of: `+strings.Join(completionShells, ", ")+`.

Installation:
`)
	for _, s := range supportedShells {
		fmt.Fprintf(w, "\n  %s", s.shell)
		if s.rcFile != "" {
			fmt.Fprintf(w, " (add to %s)", s.rcFile)
		}
		fmt.Fprintf(w, ":\n    %s\n", s.install)
	}
}
