// Package selection holds the user's chosen genes and colours for one KEGG
// pathway map and turns them into a colouring link.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/keggview/internal/keggurl"
)

const (
	DefaultBackground = "#FF0000"
	DefaultForeground = "#FFFFFF"
)

var (
	ErrInvalidPathway  = errors.New("invalid pathway id")
	ErrNoEntries       = errors.New("no entries selected")
	ErrInvalidColor    = errors.New("invalid colour")
	ErrEmptyIdentifier = errors.New("empty identifier")
	ErrUnknownEntry    = errors.New("entry not selected")
	ErrUnknownToken    = errors.New("no pending request with that token")
)

// Entry is one selected gene with its box colours.
type Entry struct {
	Identifier string `json:"identifier"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

// Visibility is the state of the customisation panel.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

func (v Visibility) String() string {
	if v == Visible {
		return "visible"
	}
	return "hidden"
}

// Model is the selection for the current pathway. It is not safe for
// concurrent use; callers serialise access.
type Model struct {
	urls       keggurl.Builder
	defaultBG  string
	defaultFG  string
	pathwayID  string
	entries    []Entry
	url        string
	visibility Visibility
	pending    *Pending
}

// Option configures a Model.
type Option func(*Model)

// WithBase sets the KEGG endpoint links are built against.
func WithBase(base string) Option {
	return func(m *Model) {
		m.urls = keggurl.New(base)
	}
}

// WithDefaults sets the colours used when AddEntry is called without them.
// Invalid colours are ignored.
func WithDefaults(bg, fg string) Option {
	return func(m *Model) {
		if c, err := NormalizeColor(bg); err == nil {
			m.defaultBG = c
		}
		if c, err := NormalizeColor(fg); err == nil {
			m.defaultFG = c
		}
	}
}

// New returns an empty selection with the panel hidden.
func New(opts ...Option) *Model {
	m := &Model{
		urls:      keggurl.New(""),
		defaultBG: DefaultBackground,
		defaultFG: DefaultForeground,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PathwayID returns the current pathway map id, or "" when none is set.
func (m *Model) PathwayID() string { return m.pathwayID }

// URL returns the last successfully built link. It is cleared whenever the
// pathway changes or a malformed pathway id is submitted.
func (m *Model) URL() string { return m.url }

// SetPathway selects the pathway map. A malformed id is rejected and clears
// both the pathway and the stored link, so no link can be built until a
// valid id is set. Entries are kept.
func (m *Model) SetPathway(id string) error {
	id = strings.TrimSpace(id)
	if !keggurl.ValidMapID(id) {
		m.pathwayID = ""
		m.url = ""
		return fmt.Errorf("%w: %q", ErrInvalidPathway, id)
	}
	if id != m.pathwayID {
		m.url = ""
	}
	m.pathwayID = id
	return nil
}

// AddEntry selects identifier with the given colours, falling back to the
// defaults for empty colours. Adding an identifier that is already selected
// does nothing and reports false.
func (m *Model) AddEntry(identifier, bg, fg string) (bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false, ErrEmptyIdentifier
	}
	if m.index(identifier) >= 0 {
		return false, nil
	}
	bg, fg, err := m.colors(bg, fg)
	if err != nil {
		return false, err
	}
	m.entries = append(m.entries, Entry{Identifier: identifier, Background: bg, Foreground: fg})
	return true, nil
}

// RemoveEntry deselects identifier and reports whether it was selected.
func (m *Model) RemoveEntry(identifier string) bool {
	i := m.index(strings.TrimSpace(identifier))
	if i < 0 {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return true
}

// SetColors changes the colours of a selected identifier. Empty colours keep
// the current value.
func (m *Model) SetColors(identifier, bg, fg string) error {
	i := m.index(strings.TrimSpace(identifier))
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownEntry, identifier)
	}
	e := &m.entries[i]
	if bg != "" {
		c, err := NormalizeColor(bg)
		if err != nil {
			return err
		}
		e.Background = c
	}
	if fg != "" {
		c, err := NormalizeColor(fg)
		if err != nil {
			return err
		}
		e.Foreground = c
	}
	return nil
}

// Entries returns a copy of the selection in insertion order.
func (m *Model) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Len returns the number of selected entries.
func (m *Model) Len() int { return len(m.entries) }

// Clear removes every entry.
func (m *Model) Clear() {
	m.entries = nil
}

// BuildURL renders the colouring link for the current pathway and entries and
// stores it.
func (m *Model) BuildURL() (string, error) {
	if !keggurl.ValidMapID(m.pathwayID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPathway, m.pathwayID)
	}
	if len(m.entries) == 0 {
		return "", ErrNoEntries
	}
	segs := make([]keggurl.Segment, len(m.entries))
	for i, e := range m.entries {
		segs[i] = keggurl.Segment{Identifier: e.Identifier, Background: e.Background, Foreground: e.Foreground}
	}
	u, err := m.urls.Custom(m.pathwayID, segs)
	if err != nil {
		return "", err
	}
	m.url = u
	return u, nil
}

// BuildHeatmapURL renders a one-colour-per-gene link for mapID without
// touching the selection.
func (m *Model) BuildHeatmapURL(mapID string, identifiers []string, colorFor func(string) string) (string, error) {
	if !keggurl.ValidMapID(mapID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPathway, mapID)
	}
	segs := make([]keggurl.HeatSegment, 0, len(identifiers))
	for _, id := range identifiers {
		segs = append(segs, keggurl.HeatSegment{Identifier: id, Color: colorFor(id)})
	}
	if len(segs) == 0 {
		return "", ErrNoEntries
	}
	return m.urls.Heatmap(mapID, segs)
}

// Visibility returns the customisation panel state.
func (m *Model) Visibility() Visibility { return m.visibility }

// Toggle flips the customisation panel between hidden and visible.
func (m *Model) Toggle() Visibility {
	if m.visibility == Visible {
		m.visibility = Hidden
	} else {
		m.visibility = Visible
	}
	return m.visibility
}

// Show makes the customisation panel visible.
func (m *Model) Show() { m.visibility = Visible }

func (m *Model) index(identifier string) int {
	for i, e := range m.entries {
		if e.Identifier == identifier {
			return i
		}
	}
	return -1
}

func (m *Model) colors(bg, fg string) (string, string, error) {
	if bg == "" {
		bg = m.defaultBG
	}
	if fg == "" {
		fg = m.defaultFG
	}
	bg, err := NormalizeColor(bg)
	if err != nil {
		return "", "", err
	}
	fg, err = NormalizeColor(fg)
	if err != nil {
		return "", "", err
	}
	return bg, fg, nil
}

// NormalizeColor accepts "#RRGGBB" or "RRGGBB" in any case and returns the
// uppercase "#RRGGBB" form.
func NormalizeColor(c string) (string, error) {
	s := strings.TrimPrefix(strings.TrimSpace(c), "#")
	if len(s) != 6 {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !('0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F') {
			return "", fmt.Errorf("%w: %q", ErrInvalidColor, c)
		}
	}
	return "#" + strings.ToUpper(s), nil
}
