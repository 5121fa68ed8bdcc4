package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/ziadkadry99/keggview/internal/pathway"
)

// EmptyTreeMessage is shown in place of a forest with no nodes.
const EmptyTreeMessage = "Nothing to display"

// pathwayActions are the buttons rendered next to every pathway with a map id.
var pathwayActions = []struct {
	Action string
	Label  string
}{
	{"heatmap", "Heatmap"},
	{"customize", "Customize"},
	{"heatmap-customize", "Heatmap + customize"},
}

// TreeHTML renders the forest as nested <ul><li> HTML. Categories and
// pathways collapse through their dir-toggle; genes carry their heatmap
// colour as a swatch and their identifier in data-gene. Pathways carry their
// catalog key in data-node.
func TreeHTML(forest []pathway.Node) string {
	var b strings.Builder
	if len(forest) == 0 {
		fmt.Fprintf(&b, `<p class="empty">%s</p>`+"\n", EmptyTreeMessage)
		return b.String()
	}
	b.WriteString(`<ul class="kegg-tree">` + "\n")
	for i := range forest {
		renderNode(&b, &forest[i], 0)
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func renderNode(b *strings.Builder, n *pathway.Node, depth int) {
	expanded := ""
	if depth == 0 {
		expanded = " expanded"
	}
	switch n.Kind {
	case pathway.KindCategory:
		fmt.Fprintf(b, `<li class="dir%s"><span class="dir-toggle">%s</span>`+"\n", expanded, html.EscapeString(n.Label))
		b.WriteString("<ul>\n")
		for i := range n.Children {
			renderNode(b, &n.Children[i], depth+1)
		}
		b.WriteString("</ul>\n</li>\n")

	case pathway.KindPathway:
		fmt.Fprintf(b, `<li class="dir pathway" data-node="%s" data-map-id="%s"><span class="dir-toggle">%s</span>`,
			html.EscapeString(n.Key), html.EscapeString(n.PathwayID), html.EscapeString(n.Label))
		if n.PathwayID != "" {
			b.WriteString(`<span class="actions">`)
			for _, a := range pathwayActions {
				fmt.Fprintf(b, `<button type="button" data-action="%s">%s</button>`, a.Action, a.Label)
			}
			b.WriteString(`</span>`)
		}
		b.WriteString("\n<ul>\n")
		for _, g := range n.Genes {
			fmt.Fprintf(b, `<li class="gene" data-gene="%s"><span class="swatch" style="background:%s"></span><a href="#">%s</a> %s</li>`+"\n",
				html.EscapeString(g.Identifier), html.EscapeString(g.Color),
				html.EscapeString(g.Identifier), html.EscapeString(g.Description))
		}
		b.WriteString("</ul>\n</li>\n")

	case pathway.KindLeaf:
		fmt.Fprintf(b, `<li class="leaf"><span class="leaf-label">%s</span> %s</li>`+"\n",
			html.EscapeString(n.Label), html.EscapeString(n.Value))
	}
}
