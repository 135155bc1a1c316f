// Package adapter contains the filesystem and persistence adapters used by
// the halint workflow.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	m "github.com/mouse-blink/halint/internal/model"
)

// DefaultExtensions are the file extensions linted when none are configured.
var DefaultExtensions = []string{"c", "cc", "cpp", "cxx", "c++", "cu", "h", "hh", "hpp", "hxx", "h++", "cuh"}

// Directories never descended into.
var skippedDirs = []string{".git", ".hg", ".svn", "vendor", "node_modules"}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when linting user projects, so the workflow can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// Get collects the source files under roots. A root ending in "/..." is
	// walked recursively.
	Get(roots []m.Path, filter FileFilter) ([]m.File, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// HashFile returns a stable fingerprint (SHA-256) for the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FileFilter narrows the files Get returns.
type FileFilter struct {
	// Exclude holds regular expressions; matching paths are dropped.
	Exclude []string
	// Extensions, without the dot, replace the adapter's own list when set.
	Extensions []string
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the SourceFSAdapter backed by the local disk.
type LocalSourceFSAdapter struct {
	extensions map[string]struct{}
}

// NewLocalSourceFSAdapter returns an adapter that picks up files with the
// given extensions (without the dot), or DefaultExtensions when none are given.
func NewLocalSourceFSAdapter(extensions ...string) *LocalSourceFSAdapter {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	return &LocalSourceFSAdapter{extensions: extensionSet(extensions)}
}

func extensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[strings.TrimPrefix(strings.ToLower(ext), ".")] = struct{}{}
	}

	return set
}

// Get collects source files for the provided roots. Explicitly named files are
// linted whatever their extension.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, filter FileFilter) ([]m.File, error) {
	if len(roots) == 0 {
		return []m.File{}, nil
	}

	excludes, err := compileExcludes(filter.Exclude)
	if err != nil {
		return nil, err
	}

	extensions := a.extensions
	if len(filter.Extensions) > 0 {
		extensions = extensionSet(filter.Extensions)
	}

	seen := make(map[string]struct{})

	var files []m.File

	add := func(path string) error {
		if slices.ContainsFunc(excludes, func(re *regexp.Regexp) bool { return re.MatchString(path) }) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		if _, ok := seen[abs]; ok {
			return nil
		}

		seen[abs] = struct{}{}

		hash, err := a.HashFile(m.Path(path))
		if err != nil {
			return fmt.Errorf("hash error for %s: %w", path, err)
		}

		files = append(files, m.File{Path: m.Path(path), Hash: hash})

		return nil
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := add(rootPath); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || !accepts(extensions, path) {
				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func accepts(extensions map[string]struct{}, path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	_, ok := extensions[ext]

	return ok
}

// Walk iterates over files under root, optionally descending into
// subdirectories. Version control and vendor directories are skipped.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || slices.Contains(skippedDirs, info.Name()) {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}

		res = append(res, re)
	}

	return res, nil
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	return filepath.Clean(rootStr), recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}
