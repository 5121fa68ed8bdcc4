package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ziadkadry99/keggview/internal/pathway"
	"github.com/ziadkadry99/keggview/internal/selection"
	"github.com/ziadkadry99/keggview/internal/source"
)

const pathwaysDoc = `{
  "Metabolism": {
    "Carbohydrate metabolism": {
      "Glycolysis / Gluconeogenesis [PATH:ko00010]": [
        {"K00844": "HK; hexokinase [EC:2.7.1.1]"},
        {"K12407": "GCK; glucokinase [EC:2.7.1.2]"},
        {"K00001": "E1.1.1.1; alcohol dehydrogenase [EC:1.1.1.1]"}
      ],
      "Citrate cycle (TCA cycle) [PATH:ko00020]": [
        {"K01647": "CS; citrate synthase [EC:2.3.3.1]"}
      ]
    }
  },
  "Brite Hierarchies": {"Protein families": [{"K99999": "ignored"}]}
}`

const abundanceDoc = `{"kegg_categories": {"K00844": 0, "K12407": 5, "K01647": 10}}`

type fakeFetcher struct {
	mu    sync.Mutex
	docs  *source.Documents
	err   error
	calls int
}

func (f *fakeFetcher) FetchBoth(ctx context.Context, p, a string) (*source.Documents, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func newFetcher() *fakeFetcher {
	return &fakeFetcher{docs: &source.Documents{Pathways: []byte(pathwaysDoc), Abundance: []byte(abundanceDoc)}}
}

func loadTest(t *testing.T) (*Session, *fakeFetcher) {
	t.Helper()
	f := newFetcher()
	s, err := Load(context.Background(), f, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, f
}

func TestLoad(t *testing.T) {
	s, _ := loadTest(t)
	forest := s.Forest()
	if len(forest) != 1 || forest[0].Label != "Metabolism" {
		t.Fatalf("forest = %+v", forest)
	}
	if s.Catalog().Len() != 2 {
		t.Errorf("catalog len = %d", s.Catalog().Len())
	}
	if got := s.ColorFor("K00844"); got != "#0000FF" {
		t.Errorf("ColorFor(K00844) = %q", got)
	}
	if got := s.ColorFor("K00001"); got != "#FFFFFF" {
		t.Errorf("ColorFor(K00001) = %q", got)
	}
}

func TestLoadFailure(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection refused")}
	s, err := Load(context.Background(), f, Options{})
	if s != nil {
		t.Error("no session on failure")
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Stage != "documents" {
		t.Fatalf("err = %v, want *LoadError(documents)", err)
	}

	f = &fakeFetcher{docs: &source.Documents{Pathways: []byte(`[]`), Abundance: []byte(abundanceDoc)}}
	_, err = Load(context.Background(), f, Options{})
	if !errors.As(err, &le) || !errors.Is(err, pathway.ErrNotObject) {
		t.Errorf("err = %v, want LoadError wrapping ErrNotObject", err)
	}
}

func TestLoadDegenerateInput(t *testing.T) {
	f := &fakeFetcher{docs: &source.Documents{Pathways: []byte(`{"A": {"B": "  "}}`), Abundance: []byte(`{}`)}}
	s, err := Load(context.Background(), f, Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Forest()) != 0 {
		t.Errorf("forest = %+v, want empty", s.Forest())
	}
}

func TestSelectGeneAndBuildURL(t *testing.T) {
	s, _ := loadTest(t)
	if _, err := s.SetPathway("map00010"); err != nil {
		t.Fatalf("SetPathway: %v", err)
	}
	s.SelectGene("K00844")
	snap, err := s.SelectGene("K00844")
	if err != nil {
		t.Fatalf("SelectGene: %v", err)
	}
	if len(snap.Entries) != 1 {
		t.Errorf("entries = %+v", snap.Entries)
	}
	u, err := s.BuildURL()
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if !strings.HasSuffix(u, "map00010/K00844%09%23FF0000,%23FFFFFF/default%3d%23FFFFFF") {
		t.Errorf("url = %s", u)
	}
	if s.Selection().URL != u {
		t.Error("snapshot should carry the built url")
	}
}

func TestOpenHeatmapSkipsUnscored(t *testing.T) {
	s, _ := loadTest(t)
	u, err := s.OpenHeatmap("map00010", nil)
	if err != nil {
		t.Fatalf("OpenHeatmap: %v", err)
	}
	want := "https://www.kegg.jp/kegg-bin/show_pathway?map00010/K00844%09%230000FF/K12407%09%23800080/default%3d%23FFFFFF"
	if u != want {
		t.Errorf("OpenHeatmap =\n %s\nwant\n %s", u, want)
	}
	if _, err := s.OpenHeatmap("map99999", nil); !errors.Is(err, selection.ErrInvalidPathway) {
		t.Errorf("unknown pathway err = %v", err)
	}
}

func TestHeatmapCustomizeWithConfirmation(t *testing.T) {
	s, _ := loadTest(t)
	events, unsubscribe := s.Subscribe()
	defer unsubscribe()

	if _, err := s.SetPathway("map00020"); err != nil {
		t.Fatal(err)
	}
	s.SelectGene("K01647")

	pending, err := s.HeatmapCustomize("map00010", nil)
	if err != nil {
		t.Fatalf("HeatmapCustomize: %v", err)
	}
	if pending == nil {
		t.Fatal("expected a pending confirmation")
	}
	if snap := s.Selection(); snap.PathwayID != "map00020" || len(snap.Entries) != 1 {
		t.Fatalf("state changed before confirm: %+v", snap)
	}

	snap, err := s.Confirm(pending.Token)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if snap.PathwayID != "map00010" || snap.Visibility != "visible" {
		t.Errorf("snap = %+v", snap)
	}
	var ids []string
	for _, e := range snap.Entries {
		ids = append(ids, e.Identifier+"="+e.Background)
	}
	if got := strings.Join(ids, ","); got != "K00844=#0000FF,K12407=#800080,K00001=#FFFFFF" {
		t.Errorf("imported = %s", got)
	}

	var sawWarning bool
	for len(events) > 0 {
		ev := <-events
		if ev.Type == EventNotice && ev.Notice.Level == Warning {
			sawWarning = true
		}
	}
	if !sawWarning {
		t.Error("expected a confirmation warning notice")
	}
}

func TestCustomizeCancel(t *testing.T) {
	s, _ := loadTest(t)
	s.SetPathway("map00020")
	s.SelectGene("K01647")
	pending, err := s.Customize("map00010")
	if err != nil || pending == nil {
		t.Fatalf("Customize = %v, %v", pending, err)
	}
	snap, err := s.Cancel(pending.Token)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if snap.PathwayID != "map00020" || len(snap.Entries) != 1 || snap.Pending != nil {
		t.Errorf("snap = %+v", snap)
	}
	if _, err := s.Cancel(pending.Token); !errors.Is(err, selection.ErrUnknownToken) {
		t.Errorf("second cancel err = %v", err)
	}
}

func TestValidationPublishesNotice(t *testing.T) {
	s, _ := loadTest(t)
	events, unsubscribe := s.Subscribe()
	defer unsubscribe()

	if _, err := s.BuildURL(); !errors.Is(err, selection.ErrInvalidPathway) {
		t.Fatalf("err = %v", err)
	}
	ev := <-events
	if ev.Type != EventNotice || ev.Notice.Level != Error {
		t.Errorf("event = %+v", ev)
	}
}

func TestReload(t *testing.T) {
	s, f := loadTest(t)
	var renders int
	s.AddRenderer(RendererFunc(func(forest []pathway.Node) { renders++ }))
	s.SelectGene("K00844")

	f.mu.Lock()
	f.docs = &source.Documents{
		Pathways:  []byte(`{"Other": {"X [PATH:ko00030]": [{"K1": "one"}]}}`),
		Abundance: []byte(`{"kegg_categories": {"K1": 1}}`),
	}
	f.mu.Unlock()

	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if renders != 2 {
		t.Errorf("renders = %d, want 2", renders)
	}
	if s.Forest()[0].Label != "Other" {
		t.Errorf("forest not swapped: %+v", s.Forest())
	}
	if len(s.Selection().Entries) != 1 {
		t.Error("selection should survive reload")
	}

	f.mu.Lock()
	f.err = errors.New("gone")
	f.mu.Unlock()
	if err := s.Reload(context.Background()); err == nil {
		t.Fatal("expected reload error")
	}
	if s.Forest()[0].Label != "Other" {
		t.Error("failed reload must keep the previous tree")
	}
}

func TestFromDocumentsCannotReload(t *testing.T) {
	s, err := FromDocuments(&source.Documents{Pathways: []byte(pathwaysDoc), Abundance: []byte(abundanceDoc)}, Options{
		Denylist: []string{},
	})
	if err != nil {
		t.Fatalf("FromDocuments: %v", err)
	}
	if len(s.Forest()) != 2 {
		t.Errorf("empty denylist should keep Brite Hierarchies, forest len = %d", len(s.Forest()))
	}
	if err := s.Reload(context.Background()); err == nil {
		t.Error("expected reload error without a fetcher")
	}
}

func TestSharedMapIDResolvesPerNode(t *testing.T) {
	docs := &source.Documents{
		Pathways: []byte(`{
  "Metabolism": {"Glycolysis [PATH:ko00010]": [{"K00001": "adh"}]},
  "Cellular Processes": {"Glycolysis [PATH:ko00010]": [{"K99999": "other"}]}
}`),
		Abundance: []byte(`{"kegg_categories": {"K00001": 1, "K99999": 2}}`),
	}
	s, err := FromDocuments(docs, Options{})
	if err != nil {
		t.Fatalf("FromDocuments: %v", err)
	}

	u, err := s.HeatmapURL("map00010", nil)
	if err != nil {
		t.Fatalf("HeatmapURL: %v", err)
	}
	if !strings.Contains(u, "K00001") || !strings.Contains(u, "K99999") {
		t.Errorf("map-level heatmap should cover both nodes: %s", u)
	}

	second := s.Forest()[1].Children[0]
	p, err := s.PathwayNode(second.Key, "map00010")
	if err != nil {
		t.Fatalf("PathwayNode: %v", err)
	}
	u, err = s.HeatmapURL(p.ID, p.Identifiers)
	if err != nil {
		t.Fatalf("HeatmapURL: %v", err)
	}
	if want := "?map00010/K99999%09%23FF0000/default%3d%23FFFFFF"; !strings.HasSuffix(u, want) {
		t.Errorf("node heatmap = %s, want suffix %s", u, want)
	}

	if _, err := s.PathwayNode(second.Key, "map00020"); !errors.Is(err, selection.ErrInvalidPathway) {
		t.Errorf("mismatched map id err = %v", err)
	}
	if _, err := s.PathwayNode("7", "map00010"); !errors.Is(err, selection.ErrInvalidPathway) {
		t.Errorf("unknown key err = %v", err)
	}
}
