package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	assert.Equal(t, DefaultDebounce, New().debounce)
	assert.Equal(t, 50*time.Millisecond, New(WithDebounce(50*time.Millisecond)).debounce)
	assert.Equal(t, DefaultDebounce, New(WithDebounce(0)).debounce)
}

func TestWatch_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := New(WithDebounce(20*time.Millisecond)).Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0600))

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatch_ReportsWritesWithTinyDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The timer has long fired by the time the loop starts.
	changes, err := New(WithDebounce(time.Nanosecond)).Watch(ctx, path)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("second"), 0600))

	select {
	case _, ok := <-changes:
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := New(WithDebounce(20*time.Millisecond)).Watch(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0600))

	select {
	case <-changes:
		t.Fatal("unexpected change for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_ClosesOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := New().Watch(ctx, path)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := New().Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "book.txt"))
	assert.Error(t, err)
}
