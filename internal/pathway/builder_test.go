package pathway

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func white(string) string { return "#FFFFFF" }

func mustBuild(t *testing.T, root RawNode, opts ...Option) *Result {
	t.Helper()
	res, err := Build(root, white, opts...)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return res
}

func TestBuildRejectsNonObjectRoot(t *testing.T) {
	if _, err := Build(Array(), white); !errors.Is(err, ErrNotObject) {
		t.Errorf("err = %v, want ErrNotObject", err)
	}
}

func TestBuildPrunesBlankLeafBranch(t *testing.T) {
	root := Object(M("A", Object(M("B", Scalar("   ")))))
	res := mustBuild(t, root)
	if len(res.Forest) != 0 {
		t.Errorf("forest = %+v, want empty", res.Forest)
	}
}

func TestBuildPathwayID(t *testing.T) {
	root := Object(M("Metabolism", Object(
		M("Glycolysis [PATH:ko00010]", Array(
			Object(M("K00844", Scalar("HK; hexokinase [EC:2.7.1.1]"))),
		)),
	)))
	res := mustBuild(t, root)
	if len(res.Forest) != 1 {
		t.Fatalf("forest len = %d, want 1", len(res.Forest))
	}
	pw := res.Forest[0].Children[0]
	if pw.Kind != KindPathway {
		t.Fatalf("kind = %q, want pathway", pw.Kind)
	}
	if pw.PathwayID != "map00010" {
		t.Errorf("PathwayID = %q, want map00010", pw.PathwayID)
	}
	if len(pw.Genes) != 1 || pw.Genes[0].Identifier != "K00844" {
		t.Fatalf("genes = %+v", pw.Genes)
	}
	if pw.Genes[0].Description != "HK; hexokinase [EC:2.7.1.1]" {
		t.Errorf("description = %q", pw.Genes[0].Description)
	}
}

func TestExtractPathwayIDKeepsDigits(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Glycolysis [PATH:ko00010]", "map00010"},
		{"Odd [PATH:ko123]", "map123"},
		{"No tag", ""},
		{"Wrong [PATH:map00010]", ""},
	}
	for _, tt := range tests {
		if got := ExtractPathwayID(tt.label); got != tt.want {
			t.Errorf("ExtractPathwayID(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestBuildColorsGenes(t *testing.T) {
	colors := func(id string) string {
		if id == "K1" {
			return "#FF0000"
		}
		return "#FFFFFF"
	}
	root := Object(M("Cat", Object(M("P [PATH:ko00020]", Array(
		Object(M("K1", Scalar("one")), M("K2", Scalar(" two "))),
	)))))
	res, err := Build(root, colors)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	genes := res.Forest[0].Children[0].Genes
	if len(genes) != 2 {
		t.Fatalf("genes = %+v", genes)
	}
	if genes[0].Color != "#FF0000" || genes[1].Color != "#FFFFFF" {
		t.Errorf("colors = %q, %q", genes[0].Color, genes[1].Color)
	}
	if genes[1].Description != "two" {
		t.Errorf("description not trimmed: %q", genes[1].Description)
	}
}

func TestBuildFiltersEntries(t *testing.T) {
	root := Object(M("Cat", Object(
		M("Empty list", Array()),
		M("Blank entries", Array(
			Object(M("K1", Scalar("  "))),
			Object(M("  ", Scalar("orphan"))),
			Scalar("not an entry"),
		)),
		M("Mixed", Array(
			Object(M("K1", Scalar(""))),
			Object(M("K2", Scalar("kept")), M("K3", Scalar(" "))),
		)),
	)))
	res := mustBuild(t, root)
	if len(res.Forest) != 1 {
		t.Fatalf("forest len = %d", len(res.Forest))
	}
	children := res.Forest[0].Children
	if len(children) != 1 || children[0].Label != "Mixed" {
		t.Fatalf("children = %+v", children)
	}
	genes := children[0].Genes
	if len(genes) != 1 || genes[0].Identifier != "K2" {
		t.Errorf("genes = %+v", genes)
	}
}

func TestBuildDenylist(t *testing.T) {
	entry := Object(M("x", Scalar("y")))
	root := Object(
		M("Brite Hierarchies", entry),
		M("Not Included in Pathway or Brite", entry),
		M("Human Diseases", entry),
		M("   ", entry),
		M("Metabolism", entry),
		M("Brite Hierarchies ", entry),
	)
	res := mustBuild(t, root)
	var labels []string
	for _, n := range res.Forest {
		labels = append(labels, n.Label)
	}
	got := strings.Join(labels, ",")
	// Matching is exact, so a trailing space escapes the denylist.
	if got != "Metabolism,Brite Hierarchies" {
		t.Errorf("labels = %q", got)
	}

	res = mustBuild(t, root, WithDenylist("Metabolism"))
	if len(res.Forest) != 4 {
		t.Errorf("custom denylist: forest len = %d, want 4", len(res.Forest))
	}
}

func TestBuildLeaves(t *testing.T) {
	root := Object(M("Info", Object(
		M("version", RawNode{Kind: RawScalar, Text: "2"}),
		M("note", Scalar("  hello ")),
		M("missing", RawNode{Kind: RawScalar, Null: true}),
	)))
	res := mustBuild(t, root)
	children := res.Forest[0].Children
	if len(children) != 2 {
		t.Fatalf("children = %+v", children)
	}
	if children[0].Kind != KindLeaf || children[0].Value != "2" {
		t.Errorf("children[0] = %+v", children[0])
	}
	if children[1].Value != "hello" {
		t.Errorf("children[1].Value = %q", children[1].Value)
	}
}

func TestBuildPreservesOrderAndDuplicates(t *testing.T) {
	doc := []byte(`{
		"Zeta": {"P1 [PATH:ko00001]": [{"K1": "a"}]},
		"Alpha": {"P2 [PATH:ko00002]": [{"K1": "a again"}, {"K2": "b"}]}
	}`)
	raw, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res := mustBuild(t, raw)
	if res.Forest[0].Label != "Zeta" || res.Forest[1].Label != "Alpha" {
		t.Errorf("order = %q, %q", res.Forest[0].Label, res.Forest[1].Label)
	}
	if st := Count(res.Forest); st.Genes != 3 || st.Pathways != 2 || st.Categories != 2 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCatalog(t *testing.T) {
	root := Object(M("Metabolism", Object(M("Carbohydrate", Object(
		M("Glycolysis [PATH:ko00010]", Array(
			Object(M("K1", Scalar("a")), M("K2", Scalar(" "))),
			Object(M("K3", Scalar(""))),
		)),
		M("Untagged", Array(Object(M("K9", Scalar("z"))))),
	)))))
	res := mustBuild(t, root)
	if res.Catalog.Len() != 2 {
		t.Fatalf("catalog len = %d, want 2", res.Catalog.Len())
	}
	p, ok := res.Catalog.Lookup("map00010")
	if !ok {
		t.Fatal("Lookup(map00010) not found")
	}
	if got := strings.Join(p.Identifiers, ","); got != "K1,K2,K3" {
		t.Errorf("identifiers = %q, want unfiltered K1,K2,K3", got)
	}
	if got := strings.Join(p.Path, "/"); got != "Metabolism/Carbohydrate" {
		t.Errorf("path = %q", got)
	}
	if _, ok := res.Catalog.Lookup(""); ok {
		t.Error("untagged pathway must not be addressable by empty id")
	}
	if found := res.Catalog.Search("glyco"); len(found) != 1 {
		t.Errorf("Search(glyco) = %+v", found)
	}
}

func TestCatalogSharedMapID(t *testing.T) {
	root := Object(
		M("Metabolism", Object(M("Glycolysis [PATH:ko00010]", Array(Object(M("K00001", Scalar("a"))))))),
		M("Cellular Processes", Object(M("Glycolysis [PATH:ko00010]", Array(Object(M("K99999", Scalar("b"))))))),
	)
	res := mustBuild(t, root)
	if res.Catalog.Len() != 2 {
		t.Fatalf("catalog len = %d, want 2", res.Catalog.Len())
	}

	first := res.Forest[0].Children[0]
	second := res.Forest[1].Children[0]
	if first.Key == second.Key {
		t.Fatalf("nodes share key %q", first.Key)
	}
	for _, tt := range []struct {
		node Node
		want string
	}{
		{first, "K00001"},
		{second, "K99999"},
	} {
		p, ok := res.Catalog.Get(tt.node.Key)
		if !ok {
			t.Fatalf("Get(%q) not found", tt.node.Key)
		}
		if got := strings.Join(p.Identifiers, ","); got != tt.want {
			t.Errorf("Get(%q) identifiers = %q, want %q", tt.node.Key, got, tt.want)
		}
	}

	p, ok := res.Catalog.Lookup("map00010")
	if !ok {
		t.Fatal("Lookup(map00010) not found")
	}
	if got := strings.Join(p.Identifiers, ","); got != "K00001,K99999" {
		t.Errorf("Lookup identifiers = %q, want both nodes", got)
	}
	if got := strings.Join(p.Path, "/"); got != "Metabolism" {
		t.Errorf("Lookup path = %q, want the first node's", got)
	}

	for _, key := range []string{"", "2", "-1", "01", "x"} {
		if _, ok := res.Catalog.Get(key); ok {
			t.Errorf("Get(%q) should fail", key)
		}
	}
}

func TestBuildInclude(t *testing.T) {
	root := Object(M("Metabolism", Object(
		M("Glycolysis / Gluconeogenesis [PATH:ko00010]", Array(Object(M("K1", Scalar("a"))))),
		M("TCA cycle [PATH:ko00020]", Array(Object(M("K2", Scalar("b"))))),
	)))
	res := mustBuild(t, root, WithInclude("Metabolism/Glycolysis*"))
	st := Count(res.Forest)
	if st.Pathways != 1 || res.Forest[0].Children[0].PathwayID != "map00010" {
		t.Errorf("include by path: %+v", res.Forest)
	}

	res = mustBuild(t, root, WithInclude("map00020"))
	if Count(res.Forest).Pathways != 1 || res.Forest[0].Children[0].PathwayID != "map00020" {
		t.Errorf("include by id: %+v", res.Forest)
	}

	res = mustBuild(t, root, WithInclude("Other/**"))
	if len(res.Forest) != 0 {
		t.Errorf("non-matching include should prune everything, got %+v", res.Forest)
	}
}

func genRaw(depth int) *rapid.Generator[RawNode] {
	text := rapid.SampledFrom([]string{"", " ", "  \t", "x", " value ", "K00001"})
	return rapid.Custom(func(t *rapid.T) RawNode {
		kind := 0
		if depth > 0 {
			kind = rapid.IntRange(0, 2).Draw(t, "kind")
		}
		switch kind {
		case 1:
			n := rapid.IntRange(0, 3).Draw(t, "members")
			node := RawNode{Kind: RawObject}
			for i := 0; i < n; i++ {
				key := text.Draw(t, "key")
				node.Members = append(node.Members, Member{Key: key, Value: genRaw(depth - 1).Draw(t, "child")})
			}
			return node
		case 2:
			n := rapid.IntRange(0, 3).Draw(t, "elems")
			node := RawNode{Kind: RawArray}
			for i := 0; i < n; i++ {
				node.Elems = append(node.Elems, genRaw(depth-1).Draw(t, "elem"))
			}
			return node
		default:
			return RawNode{Kind: RawScalar, Text: text.Draw(t, "text"), Null: rapid.Bool().Draw(t, "null")}
		}
	})
}

func checkNode(n Node, path string) error {
	if strings.TrimSpace(n.Label) == "" {
		return fmt.Errorf("%s: empty label", path)
	}
	switch n.Kind {
	case KindCategory:
		if len(n.Children) == 0 {
			return fmt.Errorf("%s: category without children", path)
		}
		for _, c := range n.Children {
			if err := checkNode(c, path+"/"+c.Label); err != nil {
				return err
			}
		}
	case KindPathway:
		if len(n.Genes) == 0 {
			return fmt.Errorf("%s: pathway without genes", path)
		}
		for _, g := range n.Genes {
			if strings.TrimSpace(g.Description) == "" {
				return fmt.Errorf("%s: gene %q without description", path, g.Identifier)
			}
		}
	case KindLeaf:
		if strings.TrimSpace(n.Value) == "" {
			return fmt.Errorf("%s: empty leaf", path)
		}
	default:
		return fmt.Errorf("%s: unknown kind %q", path, n.Kind)
	}
	return nil
}

func TestBuildPruningIsExhaustive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := genRaw(4).Draw(t, "root")
		root.Kind = RawObject
		res, err := Build(root, white)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		for _, n := range res.Forest {
			if err := checkNode(n, n.Label); err != nil {
				t.Fatal(err)
			}
		}
	})
}
