package selection

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ziadkadry99/keggview/internal/keggurl"
)

// Pending is a pathway switch waiting for the user to confirm that the
// current selection may be discarded.
type Pending struct {
	Token     string `json:"token"`
	PathwayID string `json:"pathway_id"`
	Discards  int    `json:"discards"`

	then func(*Model)
}

// RequestOverwrite switches the selection to mapID and then runs then (which
// may be nil). When entries for a different pathway would be lost the switch
// is held back and a Pending is returned; resolve it with Confirm or Cancel.
// A nil Pending means the switch has already been applied.
//
// Only one request can be pending; a new request replaces the previous one.
func (m *Model) RequestOverwrite(mapID string, then func(*Model)) (*Pending, error) {
	mapID = strings.TrimSpace(mapID)
	if !keggurl.ValidMapID(mapID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPathway, mapID)
	}
	if len(m.entries) == 0 || mapID == m.pathwayID {
		m.pending = nil
		m.apply(mapID, then)
		return nil, nil
	}
	m.pending = &Pending{
		Token:     uuid.NewString(),
		PathwayID: mapID,
		Discards:  len(m.entries),
		then:      then,
	}
	p := *m.pending
	return &p, nil
}

// PendingRequest returns the outstanding request, if any.
func (m *Model) PendingRequest() *Pending {
	if m.pending == nil {
		return nil
	}
	p := *m.pending
	return &p
}

// Confirm applies the pending switch identified by token, discarding the
// current entries.
func (m *Model) Confirm(token string) error {
	p, err := m.take(token)
	if err != nil {
		return err
	}
	m.Clear()
	m.apply(p.PathwayID, p.then)
	return nil
}

// Cancel drops the pending switch identified by token. Nothing else changes.
func (m *Model) Cancel(token string) error {
	_, err := m.take(token)
	return err
}

func (m *Model) take(token string) (*Pending, error) {
	if m.pending == nil || m.pending.Token != token {
		return nil, ErrUnknownToken
	}
	p := m.pending
	m.pending = nil
	return p, nil
}

func (m *Model) apply(mapID string, then func(*Model)) {
	if mapID != m.pathwayID {
		m.Clear()
	}
	// mapID is already validated.
	_ = m.SetPathway(mapID)
	m.Show()
	if then != nil {
		then(m)
	}
}

// ImportAll returns a follow-up for RequestOverwrite that selects every
// identifier with its heatmap colour as background and white as foreground.
func ImportAll(identifiers []string, colorFor func(string) string) func(*Model) {
	return func(m *Model) {
		for _, id := range identifiers {
			// Heatmap colours are always well formed.
			_, _ = m.AddEntry(id, colorFor(id), DefaultForeground)
		}
	}
}
