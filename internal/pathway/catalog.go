package pathway

import (
	"strconv"
	"strings"
)

// Pathway describes one emitted pathway node for the actions that need its
// gene list: the heatmap link and the bulk import into a selection.
type Pathway struct {
	Key         string   `json:"key"`
	ID          string   `json:"id,omitempty"`
	Label       string   `json:"label"`
	Path        []string `json:"path"`
	Identifiers []string `json:"identifiers"`
}

// Catalog indexes the pathways found while building a forest. Every pathway
// node gets its own key; a map id may be shared by several nodes.
type Catalog struct {
	pathways []Pathway
	byID     map[string][]int
}

func newCatalog() *Catalog {
	return &Catalog{byID: make(map[string][]int)}
}

// add records p and returns its key.
func (c *Catalog) add(p Pathway) string {
	i := len(c.pathways)
	p.Key = strconv.Itoa(i)
	c.pathways = append(c.pathways, p)
	if p.ID != "" {
		c.byID[p.ID] = append(c.byID[p.ID], i)
	}
	return p.Key
}

// Len returns the number of pathways in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pathways)
}

// Pathways returns every pathway in tree order.
func (c *Catalog) Pathways() []Pathway {
	if c == nil {
		return nil
	}
	out := make([]Pathway, len(c.pathways))
	copy(out, c.pathways)
	return out
}

// Get returns the pathway node with the given key.
func (c *Catalog) Get(key string) (Pathway, bool) {
	if c == nil {
		return Pathway{}, false
	}
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= len(c.pathways) || key != strconv.Itoa(i) {
		return Pathway{}, false
	}
	return c.pathways[i], true
}

// Lookup returns the pathway with the given map id. When the map appears
// under several categories the label and path are those of the first node
// and the identifiers of all nodes are concatenated in tree order.
func (c *Catalog) Lookup(id string) (Pathway, bool) {
	if c == nil {
		return Pathway{}, false
	}
	idx := c.byID[id]
	if len(idx) == 0 {
		return Pathway{}, false
	}
	p := c.pathways[idx[0]]
	if len(idx) > 1 {
		var ids []string
		for _, i := range idx {
			ids = append(ids, c.pathways[i].Identifiers...)
		}
		p.Identifiers = ids
	}
	return p, true
}

// Search returns pathways whose label or id contains q, case-insensitively.
// An empty query returns everything.
func (c *Catalog) Search(q string) []Pathway {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return c.Pathways()
	}
	var out []Pathway
	for _, p := range c.Pathways() {
		if strings.Contains(strings.ToLower(p.Label), q) || strings.Contains(p.ID, q) {
			out = append(out, p)
		}
	}
	return out
}
