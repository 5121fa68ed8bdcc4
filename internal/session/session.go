// Package session binds one loaded pathway tree, its abundance index and the
// user's selection, and exposes the callbacks a presentation layer drives.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ziadkadry99/keggview/internal/abundance"
	"github.com/ziadkadry99/keggview/internal/pathway"
	"github.com/ziadkadry99/keggview/internal/selection"
	"github.com/ziadkadry99/keggview/internal/source"
)

// Fetcher retrieves both source documents.
type Fetcher interface {
	FetchBoth(ctx context.Context, pathwaySrc, abundanceSrc string) (*source.Documents, error)
}

// Options describes where a session loads from and how the tree is shaped.
type Options struct {
	PathwaySource     string
	AbundanceSource   string
	Denylist          []string // nil means pathway.DefaultDenylist
	Include           []string
	ServiceURL        string
	DefaultBackground string
	DefaultForeground string
}

// LoadError is the single error surfaced when a session cannot be built.
type LoadError struct {
	Stage string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Renderer receives the pruned forest whenever it is built or rebuilt.
type Renderer interface {
	Render(forest []pathway.Node)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(forest []pathway.Node)

func (f RendererFunc) Render(forest []pathway.Node) { f(forest) }

// Session is the state behind one interactive view. All methods are safe
// for concurrent use; callbacks are serialised as if dispatched from a single
// event loop.
type Session struct {
	mu        sync.Mutex
	opts      Options
	fetcher   Fetcher
	index     *abundance.Index
	forest    []pathway.Node
	catalog   *pathway.Catalog
	sel       *selection.Model
	renderers []Renderer
	loadedAt  time.Time

	subMu   sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

// Load fetches both documents concurrently and builds the session. Any
// failure yields a *LoadError and no session; a partial tree is never built.
func Load(ctx context.Context, f Fetcher, opts Options) (*Session, error) {
	docs, err := f.FetchBoth(ctx, opts.PathwaySource, opts.AbundanceSource)
	if err != nil {
		return nil, &LoadError{Stage: "documents", Err: err}
	}
	s, err := FromDocuments(docs, opts)
	if err != nil {
		return nil, err
	}
	s.fetcher = f
	return s, nil
}

// FromDocuments builds a session from documents already in memory. The
// session cannot Reload.
func FromDocuments(docs *source.Documents, opts Options) (*Session, error) {
	idx, res, err := build(docs, opts)
	if err != nil {
		return nil, err
	}
	s := &Session{
		opts: opts,
		sel: selection.New(
			selection.WithBase(opts.ServiceURL),
			selection.WithDefaults(opts.DefaultBackground, opts.DefaultForeground),
		),
		subs: make(map[int]chan Event),
	}
	s.swap(idx, res)
	return s, nil
}

func build(docs *source.Documents, opts Options) (*abundance.Index, *pathway.Result, error) {
	idx, err := abundance.Parse(docs.Abundance)
	if err != nil {
		return nil, nil, &LoadError{Stage: "abundance", Err: err}
	}
	raw, err := pathway.Parse(docs.Pathways)
	if err != nil {
		return nil, nil, &LoadError{Stage: "pathways", Err: err}
	}

	var bopts []pathway.Option
	if opts.Denylist != nil {
		bopts = append(bopts, pathway.WithDenylist(opts.Denylist...))
	}
	if len(opts.Include) > 0 {
		bopts = append(bopts, pathway.WithInclude(opts.Include...))
	}
	res, err := pathway.Build(raw, idx.ColorFor, bopts...)
	if err != nil {
		return nil, nil, &LoadError{Stage: "pathways", Err: err}
	}

	st := pathway.Count(res.Forest)
	slog.Info("tree built", "component", "session",
		"categories", st.Categories, "pathways", st.Pathways, "genes", st.Genes, "scores", idx.Len())
	if idx.Len() == 0 {
		slog.Warn("abundance index is empty; every gene uses the neutral colour", "component", "session")
	}
	return idx, res, nil
}

func (s *Session) swap(idx *abundance.Index, res *pathway.Result) {
	s.index = idx
	s.forest = res.Forest
	s.catalog = res.Catalog
	s.loadedAt = time.Now()
}

// Reload fetches and rebuilds the tree and index. The selection is kept. On
// failure the previous tree stays in place and an error notice is published.
func (s *Session) Reload(ctx context.Context) error {
	if s.fetcher == nil {
		return &LoadError{Stage: "documents", Err: fmt.Errorf("session was not loaded from sources")}
	}
	docs, err := s.fetcher.FetchBoth(ctx, s.opts.PathwaySource, s.opts.AbundanceSource)
	if err != nil {
		err = &LoadError{Stage: "documents", Err: err}
		s.notify(Error, err.Error())
		return err
	}
	idx, res, err := build(docs, s.opts)
	if err != nil {
		s.notify(Error, err.Error())
		return err
	}

	s.mu.Lock()
	s.swap(idx, res)
	forest := s.forest
	renderers := append([]Renderer(nil), s.renderers...)
	s.mu.Unlock()

	for _, r := range renderers {
		r.Render(forest)
	}
	s.publish(Event{Type: EventReload})
	s.notify(Info, "pathway data reloaded")
	return nil
}

// AddRenderer registers r and renders the current forest to it.
func (s *Session) AddRenderer(r Renderer) {
	s.mu.Lock()
	s.renderers = append(s.renderers, r)
	forest := s.forest
	s.mu.Unlock()
	r.Render(forest)
}

// Forest returns the current pruned tree. It must not be modified.
func (s *Session) Forest() []pathway.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forest
}

// Catalog returns the pathway catalog of the current tree.
func (s *Session) Catalog() *pathway.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// Index returns the current abundance index.
func (s *Session) Index() *abundance.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// ColorFor returns the heatmap colour of a gene identifier.
func (s *Session) ColorFor(id string) string {
	return s.Index().ColorFor(id)
}

// LoadedAt returns when the current tree was built.
func (s *Session) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadedAt
}
