package ssg

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrNoTitle        = errors.New("page has no title")
	ErrFrontMatter    = errors.New("invalid front matter")
	ErrBasePath       = errors.New("base path rewriting failed")

	// Configuration errors.
	ErrUnknownEngine         = errors.New("unknown markdown engine")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
	ErrTemplatePlaceholder   = errors.New("template missing placeholder")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// wrapError creates an error that keeps the original message and matches
// the public sentinel with errors.Is. Internal sentinels live in internal/
// packages callers cannot import.
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is matching.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
