package assets

import (
	"fmt"
	"strings"
)

// MaxAssetNameLength bounds style and template names.
const MaxAssetNameLength = 64

// ValidateAssetName checks that name is safe to use as a file stem.
// Separators and dots are rejected so a name cannot traverse directories
// or change the extension.
func ValidateAssetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidAssetName, MaxAssetNameLength)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
