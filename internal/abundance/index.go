package abundance

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/buger/jsonparser"
)

// ErrEmptyIndex is returned by Bounds when the index holds no numeric scores.
var ErrEmptyIndex = errors.New("abundance index is empty")

// scoresKey is the member of the abundance document holding the scores.
const scoresKey = "kegg_categories"

// Index maps gene identifiers (K numbers) to their conservation score.
// Bounds are computed once at construction and never change.
type Index struct {
	scores map[string]float64
	ids    []string
	min    float64
	max    float64
}

// New builds an Index from the given scores. ids fixes the iteration order
// returned by IDs; identifiers missing from scores are ignored.
func New(scores map[string]float64, ids []string) *Index {
	idx := &Index{scores: make(map[string]float64, len(scores))}
	for _, id := range ids {
		v, ok := scores[id]
		if !ok {
			continue
		}
		if _, dup := idx.scores[id]; dup {
			continue
		}
		idx.add(id, v)
	}
	return idx
}

func (idx *Index) add(id string, v float64) {
	if len(idx.scores) == 0 {
		idx.min, idx.max = v, v
	} else {
		if v < idx.min {
			idx.min = v
		}
		if v > idx.max {
			idx.max = v
		}
	}
	idx.scores[id] = v
	idx.ids = append(idx.ids, id)
}

// Parse reads an abundance document of the form
// {"kegg_categories": {"K00001": 0.5, ...}}. Non-numeric members are skipped.
// A document without kegg_categories yields an empty index.
func Parse(doc []byte) (*Index, error) {
	if !json.Valid(doc) {
		return nil, fmt.Errorf("parsing abundance document: invalid JSON")
	}

	idx := &Index{scores: make(map[string]float64)}

	_, dataType, _, err := jsonparser.Get(doc, scoresKey)
	if err != nil {
		if errors.Is(err, jsonparser.KeyPathNotFoundError) {
			return idx, nil
		}
		return nil, fmt.Errorf("parsing abundance document: %w", err)
	}
	if dataType != jsonparser.Object {
		return nil, fmt.Errorf("parsing abundance document: %s is %s, want object", scoresKey, dataType)
	}

	err = jsonparser.ObjectEach(doc, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		if dt != jsonparser.Number {
			return nil
		}
		v, err := jsonparser.ParseFloat(value)
		if err != nil {
			return nil
		}
		id, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("decoding key %q: %w", key, err)
		}
		if _, dup := idx.scores[id]; dup {
			// Last value wins, as with a plain JSON decode; order stays first-seen.
			idx.scores[id] = v
			idx.recompute()
			return nil
		}
		idx.add(id, v)
		return nil
	}, scoresKey)
	if err != nil {
		return nil, fmt.Errorf("parsing abundance document: %w", err)
	}
	return idx, nil
}

func (idx *Index) recompute() {
	first := true
	for _, v := range idx.scores {
		if first {
			idx.min, idx.max = v, v
			first = false
			continue
		}
		if v < idx.min {
			idx.min = v
		}
		if v > idx.max {
			idx.max = v
		}
	}
}

// Len returns the number of scored identifiers.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.scores)
}

// Has reports whether id has a score. A score of zero is present.
func (idx *Index) Has(id string) bool {
	if idx == nil {
		return false
	}
	_, ok := idx.scores[id]
	return ok
}

// Value returns the score for id and whether it is present.
func (idx *Index) Value(id string) (float64, bool) {
	if idx == nil {
		return 0, false
	}
	v, ok := idx.scores[id]
	return v, ok
}

// IDs returns the scored identifiers in document order.
func (idx *Index) IDs() []string {
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx.ids))
	copy(out, idx.ids)
	return out
}

// Bounds returns the minimum and maximum score.
func (idx *Index) Bounds() (min, max float64, err error) {
	if idx.Len() == 0 {
		return 0, 0, ErrEmptyIndex
	}
	return idx.min, idx.max, nil
}
