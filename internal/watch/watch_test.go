package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestLocalPaths(t *testing.T) {
	got := LocalPaths("data/a.json", "https://example.org/b.json", "", "file:///tmp/c.json")
	want := []string{"data/a.json", "/tmp/c.json"}
	if len(got) != len(want) {
		t.Fatalf("LocalPaths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LocalPaths[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewNothingToWatch(t *testing.T) {
	_, err := New([]string{"http://example.org/a.json"}, func() {})
	if !errors.Is(err, ErrNothingToWatch) {
		t.Errorf("err = %v, want ErrNothingToWatch", err)
	}
}

func TestRunDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pathways.json")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	changed := make(chan struct{}, 4)
	w, err := New([]string{path}, func() {
		calls.Add(1)
		changed <- struct{}{}
	}, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`{"a": {}}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a change notification")
	}
	time.Sleep(200 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Errorf("onChange called %d times, want 1", n)
	}
}
