// Package keggurl builds KEGG show_pathway links that colour gene boxes on a
// pathway map.
//
// The link grammar is fixed by KEGG:
//
//	<base><mapId>/<id>%09<bg>[,<fg>]/.../default%3d%23FFFFFF
package keggurl

import (
	"errors"
	"strings"
)

// DefaultBase is the KEGG pathway colouring endpoint, up to and including "?".
const DefaultBase = "https://www.kegg.jp/kegg-bin/show_pathway?"

const (
	tabMarker     = "%09"
	defaultSuffix = "default%3d%23FFFFFF"
)

var (
	// ErrInvalidMapID is returned for pathway ids other than "map" + 5 digits.
	ErrInvalidMapID = errors.New("invalid pathway id: want map followed by 5 digits")
	// ErrNoSegments is returned when there is nothing to colour.
	ErrNoSegments = errors.New("no entries to colour")
)

// ValidMapID reports whether id is "map" followed by exactly five ASCII digits.
func ValidMapID(id string) bool {
	if len(id) != 8 || !strings.HasPrefix(id, "map") {
		return false
	}
	for _, c := range id[3:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Segment colours one gene with a background and foreground colour.
type Segment struct {
	Identifier string
	Background string
	Foreground string
}

// HeatSegment colours one gene with a single heatmap colour.
type HeatSegment struct {
	Identifier string
	Color      string
}

// Builder renders links against a base endpoint.
type Builder struct {
	Base string
}

// New returns a Builder for base, or DefaultBase when base is empty.
func New(base string) Builder {
	if base == "" {
		base = DefaultBase
	}
	return Builder{Base: base}
}

// Custom builds a link with a background,foreground pair per gene.
func (b Builder) Custom(mapID string, segs []Segment) (string, error) {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = Escape(s.Identifier) + tabMarker + Escape(s.Background) + "," + Escape(s.Foreground)
	}
	return b.join(mapID, parts)
}

// Heatmap builds a link with one colour per gene.
func (b Builder) Heatmap(mapID string, segs []HeatSegment) (string, error) {
	parts := make([]string, len(segs))
	for i, s := range segs {
		parts[i] = Escape(s.Identifier) + tabMarker + Escape(s.Color)
	}
	return b.join(mapID, parts)
}

func (b Builder) join(mapID string, parts []string) (string, error) {
	if !ValidMapID(mapID) {
		return "", ErrInvalidMapID
	}
	if len(parts) == 0 {
		return "", ErrNoSegments
	}
	base := b.Base
	if base == "" {
		base = DefaultBase
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString(mapID)
	sb.WriteByte('/')
	for _, p := range parts {
		sb.WriteString(p)
		sb.WriteByte('/')
	}
	sb.WriteString(defaultSuffix)
	return sb.String(), nil
}
