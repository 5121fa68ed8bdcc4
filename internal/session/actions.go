package session

import (
	"fmt"

	"github.com/ziadkadry99/keggview/internal/pathway"
	"github.com/ziadkadry99/keggview/internal/selection"
)

// Snapshot is a read-only copy of the selection state for display.
type Snapshot struct {
	PathwayID  string             `json:"pathway_id"`
	Entries    []selection.Entry  `json:"entries"`
	URL        string             `json:"url"`
	Visibility string             `json:"visibility"`
	Pending    *selection.Pending `json:"pending,omitempty"`
}

// Selection returns the current selection state.
func (s *Session) Selection() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	entries := s.sel.Entries()
	if entries == nil {
		entries = []selection.Entry{}
	}
	return Snapshot{
		PathwayID:  s.sel.PathwayID(),
		Entries:    entries,
		URL:        s.sel.URL(),
		Visibility: s.sel.Visibility().String(),
		Pending:    s.sel.PendingRequest(),
	}
}

// update runs fn under the lock and publishes the resulting selection. A
// non-nil error from fn is published as an error notice instead.
func (s *Session) update(fn func(m *selection.Model) error) (Snapshot, error) {
	s.mu.Lock()
	err := fn(s.sel)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err != nil {
		s.notify(Error, err.Error())
		return snap, err
	}
	s.publish(Event{Type: EventSelection, Selection: &snap})
	return snap, nil
}

// SelectGene adds a gene from the tree with the default colours. Selecting a
// gene twice is a no-op.
func (s *Session) SelectGene(identifier string) (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		added, err := m.AddEntry(identifier, "", "")
		if err == nil && !added {
			s.notify(Info, fmt.Sprintf("%s is already selected", identifier))
		}
		return err
	})
}

// RemoveEntry deselects a gene.
func (s *Session) RemoveEntry(identifier string) (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		if !m.RemoveEntry(identifier) {
			return fmt.Errorf("%w: %q", selection.ErrUnknownEntry, identifier)
		}
		return nil
	})
}

// SetColors changes the colours of a selected gene.
func (s *Session) SetColors(identifier, bg, fg string) (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		return m.SetColors(identifier, bg, fg)
	})
}

// AddEntry selects a gene with explicit colours.
func (s *Session) AddEntry(identifier, bg, fg string) (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		_, err := m.AddEntry(identifier, bg, fg)
		return err
	})
}

// SetPathway sets the pathway typed by the user.
func (s *Session) SetPathway(id string) (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		return m.SetPathway(id)
	})
}

// ClearSelection removes every selected gene.
func (s *Session) ClearSelection() (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		m.Clear()
		return nil
	})
}

// ToggleCustomize shows or hides the customisation panel.
func (s *Session) ToggleCustomize() (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		m.Toggle()
		return nil
	})
}

// BuildURL builds the colouring link for the current selection.
func (s *Session) BuildURL() (string, error) {
	var u string
	_, err := s.update(func(m *selection.Model) error {
		var err error
		u, err = m.BuildURL()
		return err
	})
	return u, err
}

// OpenHeatmap builds the one-click heatmap link for a pathway. When
// identifiers is nil the pathway's genes come from the catalog. Only genes
// with abundance data are coloured.
func (s *Session) OpenHeatmap(mapID string, identifiers []string) (string, error) {
	u, err := s.HeatmapURL(mapID, identifiers)
	if err != nil {
		s.notify(Error, err.Error())
		return "", err
	}
	return u, nil
}

// HeatmapURL is OpenHeatmap without the user notice on failure.
func (s *Session) HeatmapURL(mapID string, identifiers []string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, err := s.identifiersLocked(mapID, identifiers)
	if err != nil {
		return "", err
	}
	var scored []string
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if s.index.Has(id) && !seen[id] {
			seen[id] = true
			scored = append(scored, id)
		}
	}
	return s.sel.BuildHeatmapURL(mapID, scored, s.index.ColorFor)
}

// Customize switches the selection to a pathway. When that would discard
// genes selected for another pathway the switch waits for Confirm and the
// pending request is returned.
func (s *Session) Customize(mapID string) (*selection.Pending, error) {
	return s.overwrite(mapID, nil)
}

// HeatmapCustomize switches to a pathway like Customize and then selects all
// of its genes with their heatmap colour on white text.
func (s *Session) HeatmapCustomize(mapID string, identifiers []string) (*selection.Pending, error) {
	s.mu.Lock()
	ids, err := s.identifiersLocked(mapID, identifiers)
	colorFor := s.index.ColorFor
	s.mu.Unlock()
	if err != nil {
		s.notify(Error, err.Error())
		return nil, err
	}
	return s.overwrite(mapID, selection.ImportAll(ids, colorFor))
}

func (s *Session) overwrite(mapID string, then func(*selection.Model)) (*selection.Pending, error) {
	var pending *selection.Pending
	_, err := s.update(func(m *selection.Model) error {
		var err error
		pending, err = m.RequestOverwrite(mapID, then)
		return err
	})
	if err == nil && pending != nil {
		s.notify(Warning, fmt.Sprintf("switching to %s discards %d selected genes; confirm to continue", pending.PathwayID, pending.Discards))
	}
	return pending, err
}

// Confirm applies a pending pathway switch.
func (s *Session) Confirm(token string) (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		return m.Confirm(token)
	})
}

// Cancel discards a pending pathway switch.
func (s *Session) Cancel(token string) (Snapshot, error) {
	return s.update(func(m *selection.Model) error {
		return m.Cancel(token)
	})
}

func (s *Session) identifiersLocked(mapID string, identifiers []string) ([]string, error) {
	if identifiers != nil {
		return identifiers, nil
	}
	p, ok := s.catalog.Lookup(mapID)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not in the tree", selection.ErrInvalidPathway, mapID)
	}
	return p.Identifiers, nil
}

// PathwayNode returns the catalog entry of one rendered pathway node. A map
// id shared by several nodes resolves to each node's own identifiers this
// way; mapID must match the node.
func (s *Session) PathwayNode(key, mapID string) (pathway.Pathway, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.catalog.Get(key)
	if !ok || p.ID != mapID {
		return pathway.Pathway{}, fmt.Errorf("%w: no pathway node %q for %q", selection.ErrInvalidPathway, key, mapID)
	}
	return p, nil
}

// BuildLink colours entries on mapID with the session's endpoint and default
// colours. The interactive selection is not touched.
func (s *Session) BuildLink(mapID string, entries []selection.Entry) (string, error) {
	return selection.Build(mapID, entries,
		selection.WithBase(s.opts.ServiceURL),
		selection.WithDefaults(s.opts.DefaultBackground, s.opts.DefaultForeground),
	)
}
