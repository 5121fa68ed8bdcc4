package pathway

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter selects pathway lists by category path. Each label becomes one path
// segment, with any "/" inside a label replaced by "|" so that KEGG names such
// as "Glycolysis / Gluconeogenesis" stay a single segment.
type Filter struct {
	patterns []string
}

// NewFilter returns a Filter for the given doublestar patterns. Blank
// patterns are ignored; a filter without patterns matches everything.
func NewFilter(patterns []string) *Filter {
	f := &Filter{}
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			f.patterns = append(f.patterns, p)
		}
	}
	return f
}

// Match reports whether the pathway at path (labels from the root down to the
// pathway itself) or its map id matches any pattern.
func (f *Filter) Match(path []string, pathwayID string) bool {
	if f == nil || len(f.patterns) == 0 {
		return true
	}
	joined := JoinPath(path)
	for _, pattern := range f.patterns {
		if pathwayID != "" && pattern == pathwayID {
			return true
		}
		if matched, err := doublestar.Match(pattern, joined); err == nil && matched {
			return true
		}
	}
	return false
}

// JoinPath renders category labels as a slash-separated path.
func JoinPath(labels []string) string {
	segs := make([]string, len(labels))
	for i, l := range labels {
		segs[i] = strings.ReplaceAll(l, "/", "|")
	}
	return strings.Join(segs, "/")
}
