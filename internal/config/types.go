package config

import "time"

// Config is the top-level keggview configuration, corresponding to .keggview.yml.
type Config struct {
	PathwaySource      string        `yaml:"pathway_source" koanf:"pathway_source"`
	AbundanceSource    string        `yaml:"abundance_source" koanf:"abundance_source"`
	ServiceURL         string        `yaml:"service_url" koanf:"service_url"`
	ExcludedCategories []string      `yaml:"excluded_categories" koanf:"excluded_categories"`
	Include            []string      `yaml:"include" koanf:"include"`
	Port               int           `yaml:"port" koanf:"port"`
	LogLevel           string        `yaml:"log_level" koanf:"log_level"`
	FetchTimeout       time.Duration `yaml:"fetch_timeout" koanf:"fetch_timeout"`
	Watch              bool          `yaml:"watch" koanf:"watch"`
	DefaultBackground  string        `yaml:"default_background" koanf:"default_background"`
	DefaultForeground  string        `yaml:"default_foreground" koanf:"default_foreground"`
}
