package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/keggview/internal/keggurl"
	"github.com/ziadkadry99/keggview/internal/pathway"
)

// serviceEndpoints are the KEGG mirrors offered by the wizard.
var serviceEndpoints = []string{
	keggurl.DefaultBase,
	"https://www.genome.jp/kegg-bin/show_pathway?",
}

// detectSources looks for JSON documents in dir whose names suggest a pathway
// hierarchy or an abundance table.
func detectSources(dir string) (pathways, abundance string) {
	matches, _ := filepath.Glob(filepath.Join(dir, "*.json"))
	matches2, _ := filepath.Glob(filepath.Join(dir, "*", "*.json"))
	for _, m := range append(matches, matches2...) {
		name := strings.ToLower(filepath.Base(m))
		rel, err := filepath.Rel(dir, m)
		if err != nil {
			rel = m
		}
		switch {
		case pathways == "" && (strings.Contains(name, "pathway") || strings.Contains(name, "ko00001")):
			pathways = rel
		case abundance == "" && (strings.Contains(name, "abundance") || strings.Contains(name, "conservation")):
			abundance = rel
		}
	}
	return pathways, abundance
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .keggview.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to keggview! Let's point it at your data.")
	fmt.Println()

	cfg := DefaultConfig()

	foundPathways, foundAbundance := detectSources(".")
	if foundPathways != "" {
		cfg.PathwaySource = foundPathways
	}
	if foundAbundance != "" {
		cfg.AbundanceSource = foundAbundance
	}
	if foundPathways != "" || foundAbundance != "" {
		fmt.Printf("Detected documents: %s %s\n\n", foundPathways, foundAbundance)
	}

	// 1. Documents.
	pathwayPrompt := promptui.Prompt{
		Label:   "Pathway hierarchy (file path or URL)",
		Default: cfg.PathwaySource,
	}
	src, err := pathwayPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("pathway source: %w", err)
	}
	cfg.PathwaySource = strings.TrimSpace(src)

	abundancePrompt := promptui.Prompt{
		Label:   "Abundance scores (file path or URL)",
		Default: cfg.AbundanceSource,
	}
	src, err = abundancePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("abundance source: %w", err)
	}
	cfg.AbundanceSource = strings.TrimSpace(src)

	// 2. KEGG endpoint.
	servicePrompt := promptui.Select{
		Label: "KEGG pathway service",
		Items: serviceEndpoints,
	}
	_, cfg.ServiceURL, err = servicePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("service selection: %w", err)
	}

	// 3. Hidden categories.
	excludePrompt := promptui.Prompt{
		Label:   "Hidden top-level categories (comma-separated)",
		Default: strings.Join(pathway.DefaultDenylist, ", "),
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("excluded categories: %w", err)
	}
	cfg.ExcludedCategories = splitAndTrim(excludeStr)

	// 4. Web server port.
	portPrompt := promptui.Prompt{
		Label:   "Web server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
