package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoPages            = errors.New("no markdown pages found")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrReadTemplate       = errors.New("failed to read template file")
	ErrWritePage          = errors.New("failed to write page")
	ErrPagesFailed        = errors.New("pages failed to build")
	ErrPageTimeout        = errors.New("page conversion timed out")
	ErrConverterInit      = errors.New("failed to initialize converter")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// usageError marks flag parsing failures as usage errors. A help request
// is passed through so the caller can exit cleanly.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// configNotFoundError carries the paths searched for a named config.
type configNotFoundError struct {
	tried []string
	err   error
}

func (e *configNotFoundError) Error() string { return e.err.Error() }

func (e *configNotFoundError) Unwrap() error { return e.err }
