// Package source fetches the pathway and abundance documents from local files
// or HTTP endpoints.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/keggview/internal/progress"
)

// maxBody caps how much of a document is read into memory.
const maxBody = 64 << 20

// ErrEmptySource is returned when a source location is blank.
var ErrEmptySource = errors.New("source location is empty")

// StatusError represents a non-2xx HTTP response.
type StatusError struct {
	Source     string
	StatusCode int
	Body       string // first 512 bytes
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: HTTP %d: %s", e.Source, e.StatusCode, e.Body)
}

// Fetcher reads documents by location.
type Fetcher struct {
	httpClient *http.Client
	reporter   progress.Reporter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithReporter reports each completed document.
func WithReporter(r progress.Reporter) Option {
	return func(f *Fetcher) {
		f.reporter = r
	}
}

// New creates a Fetcher with a 30 second HTTP timeout.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		reporter:   progress.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch reads one document. Locations starting with http:// or https:// are
// fetched with GET; file:// URLs and anything else are read from disk.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, ErrEmptySource
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return f.get(ctx, location)
	default:
		path := strings.TrimPrefix(location, "file://")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, nil
	}
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyStr := string(body)
		if len(bodyStr) > 512 {
			bodyStr = bodyStr[:512]
		}
		return nil, &StatusError{Source: url, StatusCode: resp.StatusCode, Body: bodyStr}
	}
	return body, nil
}

// Documents holds the two raw inputs of a session.
type Documents struct {
	Pathways  []byte
	Abundance []byte
}

// FetchBoth fetches the pathway and abundance documents concurrently. Both
// must succeed; the first failure cancels the other fetch and is returned.
func (f *Fetcher) FetchBoth(ctx context.Context, pathwaySrc, abundanceSrc string) (*Documents, error) {
	var (
		docs Documents
		mu   sync.Mutex
		done int
	)
	f.reporter.Start(2)
	defer f.reporter.Finish()

	report := func(name string, n int) {
		mu.Lock()
		defer mu.Unlock()
		done++
		f.reporter.Update(done, name)
		slog.Debug("document loaded", "component", "source", "document", name, "bytes", n)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := f.Fetch(ctx, pathwaySrc)
		if err != nil {
			return fmt.Errorf("pathway document: %w", err)
		}
		docs.Pathways = data
		report("pathways", len(data))
		return nil
	})
	g.Go(func() error {
		data, err := f.Fetch(ctx, abundanceSrc)
		if err != nil {
			return fmt.Errorf("abundance document: %w", err)
		}
		docs.Abundance = data
		report("abundance", len(data))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &docs, nil
}
