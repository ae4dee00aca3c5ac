package main

import (
	"errors"
	"os"

	ssg "github.com/michaeldebetaz/static-site-generator"
	"github.com/michaeldebetaz/static-site-generator/internal/config"
	"github.com/michaeldebetaz/static-site-generator/internal/fileutil"
	"github.com/michaeldebetaz/static-site-generator/internal/hints"
)

// Exit codes for the ssg CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build or command succeeded
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitContent = 4 // A page could not be rendered (no title, bad front matter)
)

// exitCodeFor returns the exit code for an error.
// It uses errors.Is, so callers must wrap with fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Content errors (exit 4)
	if errors.Is(err, ssg.ErrNoTitle) ||
		errors.Is(err, ssg.ErrFrontMatter) ||
		errors.Is(err, ssg.ErrEmptyMarkdown) ||
		errors.Is(err, ErrPagesFailed) {
		return ExitContent
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ssg.ErrUnknownEngine) ||
		errors.Is(err, ssg.ErrUnknownHighlightStyle) ||
		errors.Is(err, ssg.ErrTemplatePlaceholder) ||
		errors.Is(err, ssg.ErrStyleNotFound) ||
		errors.Is(err, ssg.ErrTemplateNotFound) ||
		errors.Is(err, ssg.ErrInvalidAssetPath) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrUnsafePath) ||
		errors.Is(err, fileutil.ErrNotDirectory) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, ErrNoPages) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for well-known errors, or "".
func hintFor(err error) string {
	var notFound *configNotFoundError
	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.tried)
	case errors.Is(err, ssg.ErrNoTitle):
		return hints.ForNoTitle()
	case errors.Is(err, ssg.ErrTemplatePlaceholder):
		return hints.ForTemplatePlaceholder()
	case errors.Is(err, ssg.ErrStyleNotFound):
		return hints.ForStyleNotFound(ssg.StyleNames())
	case errors.Is(err, ssg.ErrUnknownEngine):
		return hints.ForUnknownEngine(ssg.Engines())
	case errors.Is(err, ErrWritePage), errors.Is(err, fileutil.ErrUnsafePath):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrPageTimeout):
		return hints.ForTimeout()
	default:
		return ""
	}
}
