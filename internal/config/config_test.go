package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ziadkadry99/keggview/internal/keggurl"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServiceURL != keggurl.DefaultBase {
		t.Errorf("expected default service_url %q, got %q", keggurl.DefaultBase, cfg.ServiceURL)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if len(cfg.ExcludedCategories) != 3 {
		t.Errorf("expected 3 excluded categories, got %v", cfg.ExcludedCategories)
	}
	if cfg.DefaultBackground != "#FF0000" || cfg.DefaultForeground != "#FFFFFF" {
		t.Errorf("unexpected default colours %q, %q", cfg.DefaultBackground, cfg.DefaultForeground)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.keggview.yml")

	original := DefaultConfig()
	original.PathwaySource = "https://example.org/ko00001.json"
	original.Include = []string{"Metabolism/**"}
	original.ExcludedCategories = []string{"Human Diseases"}
	original.Port = 9090
	original.FetchTimeout = 5 * time.Second
	original.Watch = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.PathwaySource != original.PathwaySource {
		t.Errorf("pathway_source: got %q, want %q", loaded.PathwaySource, original.PathwaySource)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.FetchTimeout != original.FetchTimeout {
		t.Errorf("fetch_timeout: got %v, want %v", loaded.FetchTimeout, original.FetchTimeout)
	}
	if !loaded.Watch {
		t.Error("watch: got false, want true")
	}
	if len(loaded.ExcludedCategories) != 1 || loaded.ExcludedCategories[0] != "Human Diseases" {
		t.Errorf("excluded_categories: got %v", loaded.ExcludedCategories)
	}
	if len(loaded.Include) != 1 || loaded.Include[0] != "Metabolism/**" {
		t.Errorf("include: got %v", loaded.Include)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.PathwaySource != DefaultPathwaySource {
		t.Errorf("expected default pathway_source, got %q", cfg.PathwaySource)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("port: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("KEGGVIEW_PORT", "9191")
	t.Setenv("KEGGVIEW_ABUNDANCE_SOURCE", "scores.json")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 9191 {
		t.Errorf("env override failed: got %d, want 9191", loaded.Port)
	}
	if loaded.AbundanceSource != "scores.json" {
		t.Errorf("env override failed: got %q, want %q", loaded.AbundanceSource, "scores.json")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty pathway source", func(c *Config) { c.PathwaySource = " " }},
		{"empty abundance source", func(c *Config) { c.AbundanceSource = "" }},
		{"bad service url", func(c *Config) { c.ServiceURL = "ftp://kegg" }},
		{"port out of range", func(c *Config) { c.Port = 70000 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative timeout", func(c *Config) { c.FetchTimeout = -time.Second }},
		{"bad background", func(c *Config) { c.DefaultBackground = "red" }},
		{"bad foreground", func(c *Config) { c.DefaultForeground = "#12345" }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestDetectSources(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "data"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"data/ko00001.json", "conservation_scores.json", "notes.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	p, a := detectSources(dir)
	if p != filepath.Join("data", "ko00001.json") {
		t.Errorf("pathways = %q", p)
	}
	if a != "conservation_scores.json" {
		t.Errorf("abundance = %q", a)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" Brite Hierarchies , Human Diseases ", []string{"Brite Hierarchies", "Human Diseases"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
