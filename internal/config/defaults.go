package config

import (
	"time"

	"github.com/ziadkadry99/keggview/internal/keggurl"
	"github.com/ziadkadry99/keggview/internal/pathway"
	"github.com/ziadkadry99/keggview/internal/selection"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".keggview.yml"

// Default document locations, relative to the working directory.
const (
	DefaultPathwaySource   = "data/pathways.json"
	DefaultAbundanceSource = "data/abundance.json"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		PathwaySource:      DefaultPathwaySource,
		AbundanceSource:    DefaultAbundanceSource,
		ServiceURL:         keggurl.DefaultBase,
		ExcludedCategories: append([]string(nil), pathway.DefaultDenylist...),
		Port:               8080,
		LogLevel:           "info",
		FetchTimeout:       30 * time.Second,
		DefaultBackground:  selection.DefaultBackground,
		DefaultForeground:  selection.DefaultForeground,
	}
}
