package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/castfix/cmd/castfix/commands"
	"github.com/walteh/castfix/cmd/castfix/opts"
	"github.com/walteh/castfix/pkg/log"
)

func main() {
	// Setup logging
	setupLogging()
	ctx := zlog.Logger.WithContext(context.Background())

	// Create user logger
	userLogger := log.NewUserLogger(ctx)

	rootOpts := &opts.RootOpts{
		UserLogger: userLogger,
	}

	// Create root command; running it bare is the same as `castfix fix`
	fixCmd := commands.NewFixCmd(rootOpts)
	rootCmd := &cobra.Command{
		Use:   "castfix",
		Short: "A tool for fixing implicit-any request accesses in TypeScript API routes",
		Long: `castfix walks a backend's API route files and rewrites implicitly-typed
request property accesses (params, query, body, caught errors) into
explicitly-annotated or explicitly-cast expressions, writing changed
files back in place.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if rootOpts.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: fixCmd.RunE,
	}

	// Add shared flags
	addRootFlags(rootCmd, rootOpts)

	// Add commands
	rootCmd.AddCommand(
		fixCmd,
		commands.NewRulesCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".castfix", "config file path")
	cmd.PersistentFlags().StringVarP(&o.Root, "root", "r", "", "backend root directory (default from config)")
	cmd.PersistentFlags().StringVar(&o.RoutesDir, "routes", "", "routes subpath under the root (default from config)")
	cmd.PersistentFlags().BoolVarP(&o.DryRun, "dry-run", "n", false, "report fixes without writing files")
	cmd.PersistentFlags().BoolVar(&o.Async, "async", false, "run the operation under a cancellable group")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog for console output
func setupLogging() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	logger := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zlog.Logger = logger
	zerolog.DefaultContextLogger = &logger
}
