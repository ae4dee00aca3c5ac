package ssg

import (
	"errors"

	"github.com/michaeldebetaz/static-site-generator/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in stylesheet.
	DefaultStyle = assets.DefaultStyleName

	// DefaultTemplate is the name of the built-in page template.
	DefaultTemplate = assets.DefaultTemplateName
)

// AssetLoader defines the contract for loading stylesheets and page templates.
// Implementations may load from the filesystem, embedded assets, a database, etc.
//
// NewAssetLoader provides filesystem loading with fallback to the embedded
// defaults. Implement this interface for other backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// An empty basePath loads embedded assets only; otherwise custom assets
// take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for stylesheets
//   - templates/{name}.html for page templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// StyleNames lists the built-in stylesheet names.
func StyleNames() []string {
	return assets.StyleNames()
}

type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	return content, convertAssetError(err)
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	return content, convertAssetError(err)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath), errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrStyleNotFound, err) // an invalid name cannot exist
	default:
		return err
	}
}

// Compile-time interface check: the internal resolver satisfies the public contract.
var _ AssetLoader = (*assets.AssetResolver)(nil)
