package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartWatcher_NoRoots(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	require.Error(t, err)
}

func TestStartWatcher_InitialScan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "existing.txt"), []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}, InitialScan: true})
	require.NoError(t, err)

	select {
	case p := <-evCh:
		assert.Equal(t, "existing.txt", filepath.Base(p))
	case <-time.After(5 * time.Second):
		t.Fatal("initial scan emitted nothing")
	}
}

// A burst of creates under a short debounce must not lose or corrupt state:
// the pending set is drained on the watcher goroutine itself, so this test
// doubles as the race check when run with -race.
func TestStartWatcher_DebounceBurst(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{
		Roots:    []string{root},
		Debounce: time.Millisecond,
	})
	require.NoError(t, err)

	const files = 200
	go func() {
		for i := 0; i < files; i++ {
			_ = os.WriteFile(filepath.Join(root, fmt.Sprintf("doc-%03d.txt", i)), []byte("x"), 0o644)
		}
	}()

	seen := map[string]struct{}{}
	deadline := time.After(10 * time.Second)
	for len(seen) < files {
		select {
		case p := <-evCh:
			seen[filepath.Base(p)] = struct{}{}
		case <-deadline:
			t.Fatalf("got %d of %d paths before deadline", len(seen), files)
		}
	}
	assert.Len(t, seen, files)
}

func TestStartWatcher_IgnoresDisallowedExtensions(t *testing.T) {
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Roots: []string{root}})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.tmp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	select {
	case p := <-evCh:
		assert.Equal(t, "notes.txt", filepath.Base(p))
	case <-time.After(5 * time.Second):
		t.Fatal("allowed file was not emitted")
	}
}
