// Package termview draws a pathway forest as a tree in the terminal.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/keggview/internal/pathway"
)

const (
	branch = "├── "
	last   = "└── "
	pipe   = "│   "
	space  = "    "
	swatch = "██"
)

// Options controls what Render prints.
type Options struct {
	// MaxGenes caps the genes listed per pathway; 0 lists all.
	MaxGenes int
}

type styles struct {
	r        *lipgloss.Renderer
	category lipgloss.Style
	pathway  lipgloss.Style
	mapID    lipgloss.Style
	gene     lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		r:        r,
		category: r.NewStyle().Bold(true),
		pathway:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0550AE", Dark: "#8BE9FD"}),
		mapID:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#7A5600", Dark: "#F1FA8C"}),
		gene:     r.NewStyle().Bold(true),
		muted:    r.NewStyle().Faint(true),
	}
}

// Render writes forest to w. Colours are only emitted when w is a terminal
// that supports them.
func Render(w io.Writer, forest []pathway.Node, opts Options) error {
	st := newStyles(w)
	var b strings.Builder
	if len(forest) == 0 {
		b.WriteString(st.muted.Render("Nothing to display") + "\n")
	}
	for i := range forest {
		st.node(&b, &forest[i], "", "", opts)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// node writes n on a line starting with lead; children are indented with
// prefix.
func (st styles) node(b *strings.Builder, n *pathway.Node, lead, prefix string, opts Options) {
	switch n.Kind {
	case pathway.KindCategory:
		b.WriteString(lead + st.category.Render(n.Label) + "\n")
		for i := range n.Children {
			cl, cp := connectors(prefix, i == len(n.Children)-1)
			st.node(b, &n.Children[i], cl, cp, opts)
		}

	case pathway.KindPathway:
		line := lead + st.pathway.Render(n.Label)
		if n.PathwayID != "" {
			line += " " + st.mapID.Render("("+n.PathwayID+")")
		}
		b.WriteString(line + "\n")
		genes := n.Genes
		hidden := 0
		if opts.MaxGenes > 0 && len(genes) > opts.MaxGenes {
			hidden = len(genes) - opts.MaxGenes
			genes = genes[:opts.MaxGenes]
		}
		for i, g := range genes {
			gl, _ := connectors(prefix, i == len(genes)-1 && hidden == 0)
			b.WriteString(gl + st.geneLine(g) + "\n")
		}
		if hidden > 0 {
			gl, _ := connectors(prefix, true)
			b.WriteString(gl + st.muted.Render(fmt.Sprintf("… %d more", hidden)) + "\n")
		}

	case pathway.KindLeaf:
		b.WriteString(lead + st.muted.Render(n.Label+":") + " " + n.Value + "\n")
	}
}

func (st styles) geneLine(g pathway.Gene) string {
	sw := st.r.NewStyle().Foreground(lipgloss.Color(g.Color)).Render(swatch)
	return fmt.Sprintf("%s %s %s %s", sw, st.gene.Render(g.Identifier), st.muted.Render(g.Color), g.Description)
}

func connectors(prefix string, isLast bool) (lead, childPrefix string) {
	if isLast {
		return prefix + last, prefix + space
	}
	return prefix + branch, prefix + pipe
}
