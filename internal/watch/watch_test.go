package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRenderer struct{ n atomic.Int32 }

func (c *countingRenderer) Render(context.Context) error {
	c.n.Add(1)
	return nil
}

func startWatcher(t *testing.T) (string, *countingRenderer) {
	t.Helper()
	dir := t.TempDir()
	db := filepath.Join(dir, "tasksList.db")
	require.NoError(t, os.WriteFile(db, nil, 0o600))

	r := &countingRenderer{}
	w, err := New(db, r, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	return db, r
}

func TestWatcher_RendersOnWrite(t *testing.T) {
	db, r := startWatcher(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(db, []byte{byte(i)}, 0o600))
	}

	require.Eventually(t, func() bool { return r.n.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	// Burst collapses into far fewer renders than writes.
	assert.Less(t, r.n.Load(), int32(5))
}

func TestWatcher_JournalFile(t *testing.T) {
	db, r := startWatcher(t)

	require.NoError(t, os.WriteFile(db+"-wal", []byte("x"), 0o600))
	require.Eventually(t, func() bool { return r.n.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	db, r := startWatcher(t)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(db), "config.json"), []byte("{}"), 0o600))
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), r.n.Load())
}
