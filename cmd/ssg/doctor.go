package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	ssg "github.com/michaeldebetaz/static-site-generator"
	"github.com/michaeldebetaz/static-site-generator/internal/config"
	"github.com/michaeldebetaz/static-site-generator/internal/fileutil"
	"github.com/michaeldebetaz/static-site-generator/internal/pipeline"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	config string
	json   bool
}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Site     siteInfo   `json:"site"`
	Render   renderInfo `json:"render"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// siteInfo holds site layout checks.
type siteInfo struct {
	Config           string `json:"config,omitempty"`
	ContentDir       string `json:"content_dir"`
	Pages            int    `json:"pages"`
	Drafts           int    `json:"drafts"`
	StaticDir        string `json:"static_dir"`
	StaticFound      bool   `json:"static_found"`
	PublicDir        string `json:"public_dir"`
	Template         string `json:"template"`
	TemplateFound    bool   `json:"template_found"`
	TemplateHasTitle bool   `json:"template_has_title"`
}

// renderInfo holds renderer settings after validation.
type renderInfo struct {
	Engine         string `json:"engine"`
	HighlightStyle string `json:"highlight_style,omitempty"`
	Style          string `json:"style,omitempty"`
	BasePath       string `json:"base_path"`
}

// systemInfo holds platform details.
type systemInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	Go   string `json:"go"`
}

// newDoctorFlagSet registers every doctor flag on a new FlagSet.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	return fs
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	f := &doctorFlags{}
	fs := newDoctorFlagSet(f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", usageError(err))
		return ExitUsage
	}

	result := runDoctor(f.config, env)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks against the resolved config.
func runDoctor(configName string, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		System: systemInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
			Go:   runtime.Version(),
		},
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(configName, envCfg.ConfigPath)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		cfg = config.DefaultConfig()
	} else if configName != "" || envCfg.ConfigPath != "" {
		result.Site.Config = firstNonEmpty(configName, envCfg.ConfigPath)
	}
	applyEnvConfig(envCfg, cfg)
	for _, kv := range env.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown environment variable %s", name))
		}
	}
	if err := cfg.Validate(); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}

	checkContent(result, cfg)
	checkStatic(result, cfg)
	checkTemplate(result, cfg)
	checkRender(result, cfg)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkContent counts pages and drafts under the content directory.
func checkContent(result *doctorResult, cfg *config.Config) {
	result.Site.ContentDir = cfg.Site.ContentDir
	result.Site.PublicDir = cfg.Site.PublicDir

	pages, err := discoverPages(cfg.Site.ContentDir, cfg.Site.PublicDir)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Site.Pages = len(pages)

	prep := &pipeline.SourcePreprocessor{}
	for _, p := range pages {
		data, err := os.ReadFile(p.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.InputPath, err))
			continue
		}
		src, err := prep.PreprocessMarkdown(context.Background(), string(data))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", p.InputPath, err))
			continue
		}
		if src.FrontMatter.Draft {
			result.Site.Drafts++
		}
		if src.FrontMatter.Title != "" {
			continue
		}
		if _, err := pipeline.ExtractTitle(src.Body); err != nil {
			// build fails on an untitled page unless it skips it as a draft.
			msg := fmt.Sprintf("%s has no title heading", p.InputPath)
			if src.FrontMatter.Draft && !cfg.Build.IncludeDrafts {
				result.Warnings = append(result.Warnings, msg+" (draft, skipped)")
			} else {
				result.Errors = append(result.Errors, msg)
			}
		}
	}
}

// checkStatic reports whether the static directory exists.
func checkStatic(result *doctorResult, cfg *config.Config) {
	result.Site.StaticDir = cfg.Site.StaticDir
	info, err := os.Stat(cfg.Site.StaticDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		result.Warnings = append(result.Warnings, fmt.Sprintf("Static directory %s not found, nothing will be copied", cfg.Site.StaticDir))
	case err != nil:
		result.Errors = append(result.Errors, err.Error())
	case !info.IsDir():
		result.Errors = append(result.Errors, fmt.Sprintf("%v: %s", fileutil.ErrNotDirectory, cfg.Site.StaticDir))
	default:
		result.Site.StaticFound = true
	}
}

// checkTemplate validates the page template placeholders.
func checkTemplate(result *doctorResult, cfg *config.Config) {
	result.Site.Template = cfg.Site.Template
	tmpl, found, err := readTemplate(cfg.Site.Template)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	if !found {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s not found, the built-in template will be used", cfg.Site.Template))
		return
	}
	result.Site.TemplateFound = true
	if err := pipeline.ValidateTemplate(tmpl); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", cfg.Site.Template, err))
		return
	}
	result.Site.TemplateHasTitle = strings.Contains(tmpl, pipeline.TitlePlaceholder)
	if !result.Site.TemplateHasTitle {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s has no %s placeholder", cfg.Site.Template, pipeline.TitlePlaceholder))
	}
}

// checkRender builds a converter to validate engine, highlight style and
// CSS style together.
func checkRender(result *doctorResult, cfg *config.Config) {
	result.Render = renderInfo{
		Engine:         firstNonEmpty(cfg.Build.Engine, ssg.EngineNative),
		HighlightStyle: cfg.Build.HighlightStyle,
		Style:          cfg.CSS.Style,
		BasePath:       pipeline.NormalizeBasePath(cfg.Site.BasePath),
	}

	opts := []ssg.Option{
		ssg.WithEngine(cfg.Build.Engine),
		ssg.WithHighlightStyle(cfg.Build.HighlightStyle),
		ssg.WithAssetPath(cfg.Assets.BasePath),
	}
	if cfg.CSS.Style != "" {
		opts = append(opts, ssg.WithStyle(cfg.CSS.Style))
	}
	if _, err := ssg.NewConverter(opts...); err != nil {
		result.Errors = append(result.Errors, err.Error())
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "ssg doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Site")
	if r.Site.Config != "" {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.Site.Config)
	}
	fmt.Fprintf(w, "  [OK] Content: %s (%d page(s), %d draft(s))\n", r.Site.ContentDir, r.Site.Pages, r.Site.Drafts)
	if r.Site.StaticFound {
		fmt.Fprintf(w, "  [OK] Static: %s\n", r.Site.StaticDir)
	}
	fmt.Fprintf(w, "  [OK] Public: %s\n", r.Site.PublicDir)
	if r.Site.TemplateFound {
		fmt.Fprintf(w, "  [OK] Template: %s\n", r.Site.Template)
	} else {
		fmt.Fprintln(w, "  [OK] Template: built-in")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Render")
	fmt.Fprintf(w, "  [OK] Engine: %s\n", r.Render.Engine)
	if r.Render.HighlightStyle != "" {
		fmt.Fprintf(w, "  [OK] Highlight style: %s\n", r.Render.HighlightStyle)
	}
	if r.Render.Style != "" {
		fmt.Fprintf(w, "  [OK] Style: %s\n", r.Render.Style)
	}
	fmt.Fprintf(w, "  [OK] Base path: %s\n", r.Render.BasePath)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s (%s)\n", r.System.OS, r.System.Arch, r.System.Go)
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
