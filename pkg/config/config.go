// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Defaults matching the tool's original hard-wired behavior: fix the
// TypeScript API route files of a backend rooted at the working
// directory, skipping test files.
const (
	DefaultRoutesDir    = "src/api/routes"
	DefaultSourceSuffix = ".ts"
	DefaultTestSuffix   = ".test.ts"
)

// 📚 Config represents the complete castfix configuration
type Config struct {
	// Root is the backend root directory the routes path is resolved
	// against and report paths are printed relative to
	Root string `json:"root,omitempty" yaml:"root,omitempty"`

	// RoutesDir is the slash-separated subpath under Root to walk
	RoutesDir string `json:"routes_dir,omitempty" yaml:"routes_dir,omitempty"`

	// SourceSuffix selects candidate files by name suffix
	SourceSuffix string `json:"source_suffix,omitempty" yaml:"source_suffix,omitempty"`

	// TestSuffix excludes files by name suffix; wins over SourceSuffix
	TestSuffix string `json:"test_suffix,omitempty" yaml:"test_suffix,omitempty"`

	// IgnorePatterns are doublestar globs, relative to the routes
	// directory, for files to skip
	IgnorePatterns []string `json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`

	// DryRun reports what would be fixed without writing anything
	DryRun bool `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`

	// Async runs the fix operation under a cancellable group
	Async bool `json:"async,omitempty" yaml:"async,omitempty"`

	// location is the path the config was loaded from, if any
	location string
}

// 🏭 Default returns the configuration the tool uses when no config
// file is present
func Default() *Config {
	return &Config{
		Root:         ".",
		RoutesDir:    DefaultRoutesDir,
		SourceSuffix: DefaultSourceSuffix,
		TestSuffix:   DefaultTestSuffix,
	}
}

// applyDefaults fills any unset field with its default value
func (c *Config) applyDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if c.RoutesDir == "" {
		c.RoutesDir = DefaultRoutesDir
	}
	if c.SourceSuffix == "" {
		c.SourceSuffix = DefaultSourceSuffix
	}
	if c.TestSuffix == "" {
		c.TestSuffix = DefaultTestSuffix
	}
}

// 🛣️ RoutesPath returns the absolute-or-relative walk root: the routes
// subpath resolved against Root
func (c *Config) RoutesPath() string {
	return filepath.Join(c.Root, filepath.FromSlash(c.RoutesDir))
}

// Location returns the path the config was loaded from, or "" for the
// built-in defaults
func (c *Config) Location() string {
	return c.location
}

// ✅ Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.Errorf("root is required")
	}
	if c.RoutesDir == "" {
		return errors.Errorf("routes_dir is required")
	}
	if !strings.HasPrefix(c.SourceSuffix, ".") {
		return errors.Errorf("source_suffix must start with a dot, got %q", c.SourceSuffix)
	}
	if c.TestSuffix != "" && !strings.HasSuffix(c.TestSuffix, c.SourceSuffix) {
		return errors.Errorf("test_suffix %q must end with source_suffix %q", c.TestSuffix, c.SourceSuffix)
	}
	return nil
}
