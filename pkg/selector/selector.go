// Package selector enumerates candidate source files beneath a root
// directory, filtering by suffix and ignore patterns.
package selector

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures which files are selected
type Options struct {
	// Root is the directory to walk
	Root string

	// SourceSuffix selects files by name suffix (e.g. ".ts")
	SourceSuffix string

	// TestSuffix excludes files by name suffix (e.g. ".test.ts");
	// exclusion wins over inclusion
	TestSuffix string

	// IgnorePatterns are doublestar globs, matched against the path
	// relative to Root, for files to skip
	IgnorePatterns []string
}

// 🗂️ Selector produces candidate file paths under a root directory
type Selector struct {
	opts Options
}

// 🏭 New creates a selector, validating the options
func New(opts Options) (*Selector, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root is required")
	}
	if opts.SourceSuffix == "" {
		return nil, errors.Errorf("source suffix is required")
	}
	return &Selector{opts: opts}, nil
}

// 🔍 Select walks the root and returns candidate file paths in
// deterministic (lexical per directory) order. A missing or unreadable
// root is fatal; unreadable entries below it are logged and skipped.
func (s *Selector) Select(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var files []string
	err := filepath.WalkDir(s.opts.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == s.opts.Root {
				return errors.Errorf("reading root %s: %w", path, walkErr)
			}
			logger.Warn().Str("path", path).Err(walkErr).Msg("skipping unreadable entry")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !s.isCandidate(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", s.opts.Root, err)
	}

	logger.Debug().Int("count", len(files)).Str("root", s.opts.Root).Msg("selected files")
	return files, nil
}

// isCandidate applies the suffix and ignore filters to one path
func (s *Selector) isCandidate(path string) bool {
	name := filepath.Base(path)

	// Test suffix takes precedence: a file matching both is excluded
	if s.opts.TestSuffix != "" && strings.HasSuffix(name, s.opts.TestSuffix) {
		return false
	}
	if !strings.HasSuffix(name, s.opts.SourceSuffix) {
		return false
	}
	return !s.shouldIgnore(path)
}

// shouldIgnore checks the path against the ignore patterns
func (s *Selector) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(s.opts.Root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range s.opts.IgnorePatterns {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}
