package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/castfix/cmd/castfix/opts"
	"github.com/walteh/castfix/pkg/log"
	"github.com/walteh/castfix/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewFixCmd creates a new fix command
func NewFixCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Rewrite implicitly-typed request accesses in API route files",
		Long: `Fix walks the API routes directory and rewrites implicitly-typed
request property accesses into explicitly-cast expressions. It will:
1. Select .ts route files (skipping .test.ts files)
2. Apply the ordered rule pipeline to each file
3. Write back files whose content changed
4. Report the total number of fixed files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "fix").Logger().WithContext(ctx)

			cfg, err := opts.LoadConfig(ctx)
			if err != nil {
				return errors.Errorf("loading config: %w", err)
			}

			level := zerolog.InfoLevel
			if opts.Debug {
				level = zerolog.DebugLevel
			}
			logger := log.New(cmd.OutOrStdout(), level)

			header := "fixing " + cfg.RoutesPath()
			if cfg.DryRun {
				header += " (dry run)"
			}
			logger.Header(header)

			op, err := operation.New(operation.Options{
				Config:     cfg,
				Logger:     logger,
				UserLogger: opts.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating operation: %w", err)
			}

			runner := operation.NewRunner(zerolog.Ctx(ctx), cfg.Async)
			report, err := runner.Run(ctx, op)
			if err != nil {
				return errors.Errorf("fixing files: %w", err)
			}

			logger.LogNewline()
			logger.Successf("Total files fixed: %d (%d rewrites)", report.FixedCount(), report.Rewrites)
			return nil
		},
	}

	return cmd
}
