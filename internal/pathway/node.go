package pathway

// Kind tags the variant of a Node.
type Kind string

const (
	KindCategory Kind = "category"
	KindPathway  Kind = "pathway"
	KindLeaf     Kind = "leaf"
)

// Node is one entry of the normalized tree. Which fields are set depends on
// Kind: categories carry Children, pathways carry Key, PathwayID and Genes,
// leaves carry Value. Key addresses the pathway's catalog entry.
type Node struct {
	Kind      Kind   `json:"kind"`
	Label     string `json:"label"`
	Children  []Node `json:"children,omitempty"`
	Key       string `json:"key,omitempty"`
	PathwayID string `json:"pathway_id,omitempty"`
	Genes     []Gene `json:"genes,omitempty"`
	Value     string `json:"value,omitempty"`
}

// Gene is a single K number under a pathway, coloured by its abundance.
type Gene struct {
	Identifier  string `json:"identifier"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Walk visits every node depth-first in tree order. depth is 0 for roots.
// Returning false from fn skips the node's children.
func Walk(forest []Node, fn func(n *Node, depth int) bool) {
	for i := range forest {
		walk(&forest[i], 0, fn)
	}
}

func walk(n *Node, depth int, fn func(*Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for i := range n.Children {
		walk(&n.Children[i], depth+1, fn)
	}
}

// Stats counts the nodes of a forest by variant.
type Stats struct {
	Categories int `json:"categories"`
	Pathways   int `json:"pathways"`
	Genes      int `json:"genes"`
	Leaves     int `json:"leaves"`
	MaxDepth   int `json:"max_depth"`
}

// Count returns node counts for forest.
func Count(forest []Node) Stats {
	var s Stats
	Walk(forest, func(n *Node, depth int) bool {
		if depth+1 > s.MaxDepth {
			s.MaxDepth = depth + 1
		}
		switch n.Kind {
		case KindCategory:
			s.Categories++
		case KindPathway:
			s.Pathways++
			s.Genes += len(n.Genes)
		case KindLeaf:
			s.Leaves++
		}
		return true
	})
	return s
}
