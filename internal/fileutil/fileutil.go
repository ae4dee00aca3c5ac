// Package fileutil provides the file operations a site build performs:
// cleaning the output directory, copying static trees and mapping content
// files to their output paths.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrUnsafePath     = errors.New("refusing to operate on unsafe path")
	ErrNotDirectory   = errors.New("not a directory")
	ErrOutsideContent = errors.New("path is outside the content directory")
)

// MarkdownExtensions lists the extensions treated as content pages.
var MarkdownExtensions = []string{".md", ".markdown"}

// CopyStats reports what CopyTree copied.
type CopyStats struct {
	Files int
	Bytes int64
}

// CleanDir removes dir and everything below it, then recreates it empty.
// The filesystem root, the working directory and empty paths are refused.
func CleanDir(dir string) error {
	if err := checkSafeDir(dir); err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}

func checkSafeDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: empty path", ErrUnsafePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsafePath, err)
	}
	if abs == filepath.VolumeName(abs)+string(filepath.Separator) {
		return fmt.Errorf("%w: %s is the filesystem root", ErrUnsafePath, abs)
	}
	if wd, err := os.Getwd(); err == nil && abs == wd {
		return fmt.Errorf("%w: %s is the working directory", ErrUnsafePath, abs)
	}
	return nil
}

// CopyTree copies every regular file below src into dst, preserving the
// relative layout. A missing src copies nothing.
func CopyTree(src, dst string) (CopyStats, error) {
	var stats CopyStats

	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("reading %s: %w", src, err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("%w: %s", ErrNotDirectory, src)
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		n, err := copyFile(path, target)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += n
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return stats, nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src) // #nosec G304 -- path comes from walking a user-chosen directory
	if err != nil {
		return 0, err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return 0, err
	}
	out, err := os.Create(dst) // #nosec G304 -- destination is inside the output directory
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 -- published site files are world-readable
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "minimal" -> false (name)
//   - "./site.css" -> true (relative path)
//   - "/absolute/site.css" -> true (absolute)
//   - "C:\styles\site.css" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// Within reports whether path is dir or lies below it. Both must be
// absolute and clean. The separator suffix stops /base/path matching
// /base/pathevil.
func Within(dir, path string) bool {
	if path == dir {
		return true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// ResolvePath returns the absolute, clean form of path with symlinks
// resolved. A path that does not exist yet keeps its missing tail under
// its nearest existing ancestor, resolved.
func ResolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return resolveExisting(abs), nil
}

func resolveExisting(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	parent := filepath.Dir(path)
	if parent == path {
		return path
	}
	return filepath.Join(resolveExisting(parent), filepath.Base(path))
}

// IsMarkdown reports whether path has a Markdown extension (case-insensitive).
func IsMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, md := range MarkdownExtensions {
		if ext == md {
			return true
		}
	}
	return false
}

// HTMLOutputPath maps a Markdown file under contentDir to its .html
// counterpart under publicDir: content/blog/post.md -> public/blog/post.html.
func HTMLOutputPath(contentDir, publicDir, mdPath string) (string, error) {
	rel, err := filepath.Rel(contentDir, mdPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideContent, mdPath)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideContent, mdPath)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	return filepath.Join(publicDir, rel), nil
}

// FindMarkdown walks root and returns every Markdown file, in lexical order.
func FindMarkdown(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsMarkdown(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
