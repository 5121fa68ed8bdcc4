package cmd

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/keggview/internal/config"
	"github.com/ziadkadry99/keggview/internal/progress"
	"github.com/ziadkadry99/keggview/internal/session"
	"github.com/ziadkadry99/keggview/internal/source"
)

// loadConfig loads and validates the config, providing a user-friendly error.
// Source flags override the file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `keggview init` to create a config file", err)
	}
	if pathwaysFlag != "" {
		cfg.PathwaySource = pathwaysFlag
	}
	if abundanceFlag != "" {
		cfg.AbundanceSource = abundanceFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	initLogging(cfg.LogLevel)
	return cfg, nil
}

// sessionOptions maps the config onto session options.
func sessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		PathwaySource:     cfg.PathwaySource,
		AbundanceSource:   cfg.AbundanceSource,
		Denylist:          cfg.ExcludedCategories,
		Include:           cfg.Include,
		ServiceURL:        cfg.ServiceURL,
		DefaultBackground: cfg.DefaultBackground,
		DefaultForeground: cfg.DefaultForeground,
	}
}

// newFetcher builds the document fetcher. quiet suppresses the progress bar.
func newFetcher(cfg *config.Config, quiet bool) *source.Fetcher {
	reporter := progress.NewReporter()
	if quiet {
		reporter = progress.Nop()
	}
	return source.New(
		source.WithTimeout(cfg.FetchTimeout),
		source.WithReporter(reporter),
	)
}

// loadSession fetches both documents and builds the session.
func loadSession(ctx context.Context, cfg *config.Config, quiet bool) (*session.Session, error) {
	return session.Load(ctx, newFetcher(cfg, quiet), sessionOptions(cfg))
}
