package selection

import (
	"fmt"
	"strings"
)

// ParseEntry parses the command-line form of an entry:
//
//	K00001            default colours
//	K00001=#BG        background only
//	K00001=#BG,#FG    both colours
//
// Empty colours are left empty so AddEntry applies the defaults.
func ParseEntry(s string) (Entry, error) {
	id, colors, hasColors := strings.Cut(strings.TrimSpace(s), "=")
	e := Entry{Identifier: strings.TrimSpace(id)}
	if e.Identifier == "" {
		return Entry{}, fmt.Errorf("%w: %q", ErrEmptyIdentifier, s)
	}
	if !hasColors {
		return e, nil
	}
	bg, fg, _ := strings.Cut(colors, ",")
	if bg = strings.TrimSpace(bg); bg != "" {
		c, err := NormalizeColor(bg)
		if err != nil {
			return Entry{}, err
		}
		e.Background = c
	}
	if fg = strings.TrimSpace(fg); fg != "" {
		c, err := NormalizeColor(fg)
		if err != nil {
			return Entry{}, err
		}
		e.Foreground = c
	}
	return e, nil
}

// Build is the one-shot form of a selection: it colours entries on mapID and
// returns the link without keeping any state.
func Build(mapID string, entries []Entry, opts ...Option) (string, error) {
	m := New(opts...)
	if err := m.SetPathway(mapID); err != nil {
		return "", err
	}
	for _, e := range entries {
		if _, err := m.AddEntry(e.Identifier, e.Background, e.Foreground); err != nil {
			return "", err
		}
	}
	return m.BuildURL()
}
