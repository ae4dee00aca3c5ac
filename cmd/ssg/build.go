package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	ssg "github.com/michaeldebetaz/static-site-generator"
	"github.com/michaeldebetaz/static-site-generator/internal/config"
	"github.com/michaeldebetaz/static-site-generator/internal/fileutil"
)

// buildParams groups the settings shared by every page of a build.
type buildParams struct {
	contentDir    string
	publicDir     string
	staticDir     string
	includeDrafts bool
}

// runBuild regenerates the whole site: wipe public, copy static, render
// every page under content.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	opts, err := converterOptions(cfg, flags.render.noStyle, timeout, env, flags.common.verbose)
	if err != nil {
		return err
	}

	pages, err := discoverPages(cfg.Site.ContentDir, cfg.Site.PublicDir)
	if err != nil {
		return err
	}

	poolSize := ssg.ResolvePoolSize(cfg.Build.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := ssg.NewConverterPool(poolSize, opts...)
	defer pool.Close()

	// Surface option errors before the public directory is wiped.
	conv := pool.Acquire()
	if conv == nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, pool.InitError())
	}
	pool.Release(conv)

	start := env.Now()

	if err := fileutil.CleanDir(cfg.Site.PublicDir); err != nil {
		return fmt.Errorf("%w: %w", ErrWritePage, err)
	}
	copied, err := fileutil.CopyTree(cfg.Site.StaticDir, cfg.Site.PublicDir)
	if err != nil {
		return fmt.Errorf("copying static files: %w", err)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Copied %d static file(s) from %s\n", copied.Files, cfg.Site.StaticDir)
	}

	params := &buildParams{
		contentDir:    cfg.Site.ContentDir,
		publicDir:     cfg.Site.PublicDir,
		staticDir:     cfg.Site.StaticDir,
		includeDrafts: cfg.Build.IncludeDrafts,
	}
	results := buildBatch(ctx, converterPool{pool}, pages, params)

	summary := summarize(results, copied, env.Now().Sub(start))
	printResults(results, summary, flags.common.quiet, flags.common.verbose, env)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("build interrupted: %w", err)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPagesFailed, summary.Failed, len(results))
	}
	return nil
}

// loadConfig loads the config named by the flag, else by SSG_CONFIG, else
// returns the defaults.
func loadConfig(flagConfig, envConfig string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envConfig
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			err = &configNotFoundError{tried: config.SearchPaths(name), err: err}
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags over the config (CLI wins).
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	setString(&cfg.Site.ContentDir, flags.site.content)
	setString(&cfg.Site.StaticDir, flags.site.static)
	setString(&cfg.Site.PublicDir, flags.site.public)
	setString(&cfg.Site.Template, flags.site.template)
	setString(&cfg.Site.BasePath, flags.site.basePath)
	setString(&cfg.Build.Engine, flags.render.engine)
	setString(&cfg.Build.HighlightStyle, flags.render.highlightStyle)
	setString(&cfg.CSS.Style, flags.render.style)
	setString(&cfg.Assets.BasePath, flags.render.assetPath)
	if flags.workers > 0 {
		cfg.Build.Workers = flags.workers
	}
	if flags.includeDrafts {
		cfg.Build.IncludeDrafts = true
	}
}

// converterOptions translates the resolved config into library options.
func converterOptions(cfg *config.Config, noStyle bool, timeout time.Duration, env *Environment, verbose bool) ([]ssg.Option, error) {
	opts := []ssg.Option{
		ssg.WithEngine(cfg.Build.Engine),
		ssg.WithHighlightStyle(cfg.Build.HighlightStyle),
		ssg.WithBasePath(cfg.Site.BasePath),
		ssg.WithAssetPath(cfg.Assets.BasePath),
	}
	if timeout > 0 {
		opts = append(opts, ssg.WithTimeout(timeout))
	}
	if cfg.CSS.Style != "" && !noStyle {
		opts = append(opts, ssg.WithStyle(cfg.CSS.Style))
	}

	tmpl, found, err := readTemplate(cfg.Site.Template)
	if err != nil {
		return nil, err
	}
	if found {
		opts = append(opts, ssg.WithTemplate(tmpl))
	} else if verbose {
		fmt.Fprintf(env.Stderr, "No %s found, using the built-in template\n", cfg.Site.Template)
	}

	return opts, nil
}

// readTemplate reads the page template file. An empty path, or the
// conventional template.html when it does not exist, reports found=false
// so the embedded template is used. Any other missing file is an error.
func readTemplate(path string) (string, bool, error) {
	if path == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided template path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == config.DefaultTemplate {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %w", ErrReadTemplate, err)
	}
	return string(data), true, nil
}

// resolveTimeout picks the --timeout flag, else SSG_TIMEOUT. Zero keeps
// the library default.
func resolveTimeout(flagTimeout string, envTimeout time.Duration) (time.Duration, error) {
	if flagTimeout == "" {
		return envTimeout, nil
	}
	d, err := time.ParseDuration(flagTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagTimeout)
	}
	return d, nil
}

// validateWorkers checks the --workers flag range.
func validateWorkers(n int) error {
	if n < 0 || n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}
