package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/keggview/internal/pathway"
)

// LinkFunc returns the heatmap link for a pathway node, or "" for none.
type LinkFunc func(n *pathway.Node) string

// mdEscaper keeps labels and descriptions inside one list item.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `&lt;`,
	`>`, `&gt;`,
	"`", "\\`",
	`(`, `\(`,
	`)`, `\)`,
	"\r\n", " ",
	"\r", " ",
	"\n", " ",
)

// Markdown renders the forest as a nested list. Gene identifiers are wrapped
// in an inline HTML span coloured with their heatmap colour; pathways with a
// heatmap link get one.
func Markdown(title string, forest []pathway.Node, link LinkFunc) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", mdEscaper.Replace(title))
	if len(forest) == 0 {
		fmt.Fprintf(&b, "%s.\n", EmptyTreeMessage)
		return b.Bytes()
	}

	st := pathway.Count(forest)
	fmt.Fprintf(&b, "%d categories, %d pathways, %d genes.\n\n", st.Categories, st.Pathways, st.Genes)

	pathway.Walk(forest, func(n *pathway.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)
		label := mdEscaper.Replace(n.Label)
		switch n.Kind {
		case pathway.KindCategory:
			fmt.Fprintf(&b, "%s- **%s**\n", indent, label)
		case pathway.KindPathway:
			u := ""
			if link != nil && n.PathwayID != "" {
				u = link(n)
			}
			if u != "" {
				fmt.Fprintf(&b, "%s- %s ([heatmap](%s))\n", indent, label, u)
			} else {
				fmt.Fprintf(&b, "%s- %s\n", indent, label)
			}
			for _, g := range n.Genes {
				fmt.Fprintf(&b, "%s  - <span class=\"gene\" style=\"background:%s\">%s</span> %s\n",
					indent, g.Color, mdEscaper.Replace(g.Identifier), mdEscaper.Replace(g.Description))
			}
		case pathway.KindLeaf:
			fmt.Fprintf(&b, "%s- %s: %s\n", indent, label, mdEscaper.Replace(n.Value))
		}
		return true
	})
	return b.Bytes()
}

// NewMarkdown returns the goldmark converter used for exports.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

type exportData struct {
	Title   string
	Content template.HTML
}

var exportTmpl = template.Must(template.New("export").Parse(exportTemplate))

// Export writes tree.md and tree.html into dir and returns their paths.
func Export(dir, title string, forest []pathway.Node, link LinkFunc) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	md := Markdown(title, forest, link)
	mdPath := filepath.Join(dir, "tree.md")
	if err := os.WriteFile(mdPath, md, 0o644); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := NewMarkdown().Convert(md, &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	htmlPath := filepath.Join(dir, "tree.html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data := exportData{Title: title, Content: template.HTML(body.String())}
	if err := exportTmpl.Execute(f, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", htmlPath, err)
	}
	return []string{mdPath, htmlPath}, nil
}
