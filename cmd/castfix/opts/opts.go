package opts

import (
	"context"

	"github.com/walteh/castfix/pkg/config"
	"github.com/walteh/castfix/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flag values, bound on the root command
	ConfigFile string
	Root       string
	RoutesDir  string
	DryRun     bool
	Async      bool
	Debug      bool

	UserLogger *log.UserLogger
}

// LoadConfig loads the config file (or defaults) and applies flag
// overrides on top
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if o.Root != "" {
		cfg.Root = o.Root
	}
	if o.RoutesDir != "" {
		cfg.RoutesDir = o.RoutesDir
	}
	if o.DryRun {
		cfg.DryRun = true
	}
	if o.Async {
		cfg.Async = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
