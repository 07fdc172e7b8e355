// Package operation provides the core fix operation: select candidate
// files, run the rewrite pipeline over each, and write back the ones
// that changed.
package operation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/castfix/pkg/config"
	"github.com/walteh/castfix/pkg/log"
	"github.com/walteh/castfix/pkg/rewrite"
	"github.com/walteh/castfix/pkg/selector"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the fix operation
type Options struct {
	// Config is the castfix configuration
	Config *config.Config
	// Logger is the console logger for per-file output
	Logger *log.Logger
	// UserLogger receives user-facing feedback for skipped files;
	// optional
	UserLogger *log.UserLogger
	// Engine is the rewrite pipeline; nil means the default rules
	Engine *rewrite.Engine
}

// 🏭 New creates a new fix operation with the given options
func New(opts Options) (*FixOperation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Engine == nil {
		opts.Engine = rewrite.NewEngine()
	}
	if err := opts.Engine.ValidateRules(); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}
	return &FixOperation{
		config:     opts.Config,
		logger:     opts.Logger,
		userLogger: opts.UserLogger,
		engine:     opts.Engine,
	}, nil
}

// 🎮 FixOperation walks the routes directory and fixes each candidate file
type FixOperation struct {
	config     *config.Config
	logger     *log.Logger
	userLogger *log.UserLogger
	engine     *rewrite.Engine
}

// 🏃 Execute runs the fix operation. Files are processed strictly one
// at a time in traversal order; per-file read/write errors are logged
// and skipped, a missing routes directory is fatal.
func (op *FixOperation) Execute(ctx context.Context) (*Report, error) {
	logger := zerolog.Ctx(ctx)

	sel, err := selector.New(selector.Options{
		Root:           op.config.RoutesPath(),
		SourceSuffix:   op.config.SourceSuffix,
		TestSuffix:     op.config.TestSuffix,
		IgnorePatterns: op.config.IgnorePatterns,
	})
	if err != nil {
		return nil, errors.Errorf("creating selector: %w", err)
	}

	files, err := sel.Select(ctx)
	if err != nil {
		return nil, errors.Errorf("selecting files: %w", err)
	}

	report := &Report{}
	for _, file := range files {
		if err := op.processFile(ctx, file, report); err != nil {
			// Per-file failures degrade gracefully: warn and move on.
			relPath := op.relPath(file)
			report.Skipped = append(report.Skipped, relPath)
			op.logger.LogFileOperation(ctx, log.FileOperation{
				Path:   relPath,
				Status: "skipped",
				IsSkip: true,
			})
			if op.userLogger != nil {
				op.userLogger.LogFileChange(log.FileChange{
					Type:        log.FileSkipped,
					Path:        file,
					Description: err.Error(),
				})
			}
			logger.Warn().Str("file", file).Err(err).Msg("skipping file")
		}
	}

	logger.Debug().
		Int("scanned", report.Scanned).
		Int("fixed", len(report.Fixed)).
		Int("skipped", len(report.Skipped)).
		Int("rewrites", report.Rewrites).
		Msg("fix operation complete")

	return report, nil
}

// 📄 processFile reads one file, rewrites it, and writes it back if it
// changed
func (op *FixOperation) processFile(ctx context.Context, file string, report *Report) error {
	report.Scanned++

	info, err := os.Stat(file)
	if err != nil {
		return errors.Errorf("stating file: %w", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return errors.Errorf("reading file: %w", err)
	}

	result, err := op.engine.Rewrite(ctx, bytes.NewReader(data))
	if err != nil {
		return errors.Errorf("rewriting content: %w", err)
	}

	relPath := op.relPath(file)
	if !result.Changed {
		op.logger.LogFileOperation(ctx, log.FileOperation{
			Path:   relPath,
			Status: "unchanged",
		})
		return nil
	}

	if !op.config.DryRun {
		// Same path, same mode as read.
		if err := os.WriteFile(file, result.FixedContent, info.Mode().Perm()); err != nil {
			return errors.Errorf("writing file: %w", err)
		}
	}

	report.Fixed = append(report.Fixed, relPath)
	report.Rewrites += totalRewrites(result.Matches)

	status := "fixed"
	if op.config.DryRun {
		status = "would fix"
	}
	op.logger.LogFileOperation(ctx, log.FileOperation{
		Path:     relPath,
		Status:   status,
		IsFixed:  true,
		Rewrites: totalRewrites(result.Matches),
	})
	return nil
}

// relPath makes a path relative to the configured root for reporting
func (op *FixOperation) relPath(file string) string {
	rel, err := filepath.Rel(op.config.Root, file)
	if err != nil {
		return file
	}
	return rel
}

func totalRewrites(matches []rewrite.RuleMatch) int {
	total := 0
	for _, m := range matches {
		total += m.Count
	}
	return total
}
