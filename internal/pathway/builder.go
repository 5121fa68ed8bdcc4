package pathway

import (
	"errors"
	"regexp"
	"slices"
	"strings"
)

// ErrNotObject is returned when the document root is not an object.
var ErrNotObject = errors.New("pathway document root must be an object")

// DefaultDenylist holds the top-level KEGG sections that carry no pathway maps.
var DefaultDenylist = []string{
	"Brite Hierarchies",
	"Not Included in Pathway or Brite",
	"Human Diseases",
}

var pathTag = regexp.MustCompile(`\[PATH:ko(\d+)\]`)

// ColorFunc returns the display colour for a gene identifier.
type ColorFunc func(identifier string) string

// Option configures Build.
type Option func(*builder)

// WithDenylist replaces the top-level labels that are always dropped.
func WithDenylist(labels ...string) Option {
	return func(b *builder) {
		b.denylist = labels
	}
}

// WithInclude keeps only pathway lists whose category path or pathway id
// matches one of the doublestar patterns. See Filter.
func WithInclude(patterns ...string) Option {
	return func(b *builder) {
		b.filter = NewFilter(patterns)
	}
}

// Result is the output of Build.
type Result struct {
	Forest  []Node
	Catalog *Catalog
}

type builder struct {
	colors   ColorFunc
	denylist []string
	filter   *Filter
	catalog  *Catalog
}

// Build converts a raw pathway document into a pruned forest. Nodes are
// classified once by shape: objects become categories, arrays become pathway
// lists and scalars become leaves. Empty nodes never appear in the result.
func Build(root RawNode, colors ColorFunc, opts ...Option) (*Result, error) {
	if root.Kind != RawObject {
		return nil, ErrNotObject
	}
	if colors == nil {
		colors = func(string) string { return "#FFFFFF" }
	}
	b := &builder{
		colors:   colors,
		denylist: DefaultDenylist,
		catalog:  newCatalog(),
	}
	for _, opt := range opts {
		opt(b)
	}

	forest := []Node{}
	for _, m := range root.Members {
		if strings.TrimSpace(m.Key) == "" || slices.Contains(b.denylist, m.Key) {
			continue
		}
		if n := b.node(m.Key, m.Value, nil); n != nil {
			forest = append(forest, *n)
		}
	}
	return &Result{Forest: forest, Catalog: b.catalog}, nil
}

func (b *builder) node(label string, raw RawNode, parents []string) *Node {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	switch raw.Kind {
	case RawObject:
		return b.category(label, raw, parents)
	case RawArray:
		return b.pathway(label, raw, parents)
	default:
		return leaf(label, raw)
	}
}

func (b *builder) category(label string, raw RawNode, parents []string) *Node {
	path := append(slices.Clip(parents), label)
	var children []Node
	for _, m := range raw.Members {
		if n := b.node(m.Key, m.Value, path); n != nil {
			children = append(children, *n)
		}
	}
	if len(children) == 0 {
		return nil
	}
	return &Node{Kind: KindCategory, Label: label, Children: children}
}

func (b *builder) pathway(label string, raw RawNode, parents []string) *Node {
	pathwayID := ExtractPathwayID(label)
	path := append(slices.Clip(parents), label)
	if b.filter != nil && !b.filter.Match(path, pathwayID) {
		return nil
	}

	var genes []Gene
	var identifiers []string
	for _, entry := range raw.Elems {
		if entry.Kind != RawObject {
			continue
		}
		for _, m := range entry.Members {
			if id := strings.TrimSpace(m.Key); id != "" {
				identifiers = append(identifiers, id)
			}
		}
		if !validEntry(entry) {
			continue
		}
		for _, m := range entry.Members {
			desc, ok := scalarText(m.Value)
			if !ok || desc == "" {
				continue
			}
			id := strings.TrimSpace(m.Key)
			genes = append(genes, Gene{
				Identifier:  id,
				Description: desc,
				Color:       b.colors(id),
			})
		}
	}
	if len(genes) == 0 {
		return nil
	}

	key := b.catalog.add(Pathway{
		ID:          pathwayID,
		Label:       label,
		Path:        slices.Clone(parents),
		Identifiers: identifiers,
	})
	return &Node{Kind: KindPathway, Label: label, Key: key, PathwayID: pathwayID, Genes: genes}
}

func leaf(label string, raw RawNode) *Node {
	value, ok := scalarText(raw)
	if !ok || value == "" {
		return nil
	}
	return &Node{Kind: KindLeaf, Label: label, Value: value}
}

// validEntry reports whether a gene entry has at least one member whose
// trimmed key and trimmed value are both non-empty.
func validEntry(entry RawNode) bool {
	for _, m := range entry.Members {
		if strings.TrimSpace(m.Key) == "" {
			continue
		}
		if v, ok := scalarText(m.Value); ok && v != "" {
			return true
		}
	}
	return false
}

// scalarText returns the trimmed display text of a scalar. Null and
// non-scalar values report ok=false.
func scalarText(raw RawNode) (string, bool) {
	if raw.Kind != RawScalar || raw.Null {
		return "", false
	}
	return strings.TrimSpace(raw.Text), true
}

// ExtractPathwayID turns a label tagged "[PATH:ko00010]" into "map00010".
// The digits are copied as found. Untagged labels return "".
func ExtractPathwayID(label string) string {
	m := pathTag.FindStringSubmatch(label)
	if m == nil {
		return ""
	}
	return "map" + m[1]
}
