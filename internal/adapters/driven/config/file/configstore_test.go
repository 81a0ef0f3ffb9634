package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", DirName)

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("segment.continue_label", "Fortsæt"))

	val, ok := store.Get("segment.continue_label")
	assert.True(t, ok)
	assert.Equal(t, "Fortsæt", val)

	_, ok = store.Get("segment.output")
	assert.False(t, ok)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("repair.input", "broken.csv"))
	require.NoError(t, store.Set("inspect.max_rows", 5))

	assert.Equal(t, "broken.csv", store.GetString("repair.input"))
	assert.Equal(t, "", store.GetString("nonexistent"))
	assert.Equal(t, "", store.GetString("inspect.max_rows"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("segment.min_chars", 400))
	require.NoError(t, store.Set("segment.output", "out.csv"))

	assert.Equal(t, 400, store.GetInt("segment.min_chars"))
	assert.Equal(t, 0, store.GetInt("segment.output"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))
}

func TestConfigStore_Persistence_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("segment.min_chars", 500))
	require.NoError(t, store.Set("segment.continue_label", "Next"))
	require.NoError(t, store.Set("inspect.max_width", 80))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[segment]")
	assert.Contains(t, string(data), "[inspect]")

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// TOML integers come back as int64
	assert.Equal(t, 500, reopened.GetInt("segment.min_chars"))
	assert.Equal(t, "Next", reopened.GetString("segment.continue_label"))
	assert.Equal(t, 80, reopened.GetInt("inspect.max_width"))
	assert.Equal(t, []string{"inspect.max_width", "segment.continue_label", "segment.min_chars"}, reopened.Keys())
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[segment]\nmax_chars = 900\n\n[storage]\ndata_dir = \"/tmp/stories\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 900, store.GetInt("segment.max_chars"))
	assert.Equal(t, "/tmp/stories", store.GetString("storage.data_dir"))
}

func TestConfigStore_Unset(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("repair.output", "fixed.csv"))
	require.NoError(t, store.Unset("repair.output"))
	require.NoError(t, store.Unset("never.set"))

	_, ok := store.Get("repair.output")
	assert.False(t, ok)

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, reopened.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("invalid toml syntax ][}{"), 0600))

	store, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set(fmt.Sprintf("bulk.key_%d", n), n)
			_ = store.GetInt(fmt.Sprintf("bulk.key_%d", n))
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"a":     1,
		"a.b":   2,
		"x.y.z": "deep",
		"top":   true,
	})

	assert.Equal(t, map[string]any{
		"a":   1,
		"x":   map[string]any{"y": map[string]any{"z": "deep"}},
		"top": true,
	}, nested)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"segment": map[string]any{"min_chars": int64(600)},
		"plain":   "v",
	}, "")

	assert.Equal(t, map[string]any{"segment.min_chars": int64(600), "plain": "v"}, flat)
}
