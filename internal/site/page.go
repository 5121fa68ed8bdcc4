package site

import (
	"html/template"
	"io"

	"github.com/ziadkadry99/keggview/internal/abundance"
	"github.com/ziadkadry99/keggview/internal/pathway"
)

// PageData holds the data passed to the interactive page template.
type PageData struct {
	Title     string
	TreeHTML  template.HTML
	Legend    []abundance.Stop
	Stats     pathway.Stats
	LoadError string
}

var pageTmpl = template.Must(template.New("page").Parse(pageTemplate))

// NewPageData prepares the page for a forest and its index.
func NewPageData(title string, forest []pathway.Node, idx *abundance.Index) PageData {
	return PageData{
		Title:    title,
		TreeHTML: template.HTML(TreeHTML(forest)),
		Legend:   idx.Legend(),
		Stats:    pathway.Count(forest),
	}
}

// RenderPage writes the interactive page to w.
func RenderPage(w io.Writer, data PageData) error {
	return pageTmpl.Execute(w, data)
}
