package file

import (
	"os"
	"path/filepath"
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
}

func TestNewConfigStore_MissingDirectoryIsNotCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "slumber")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))

	require.NoError(t, store.Set("data.root", "/data"))
	require.NoError(t, store.Save())
	assert.FileExists(t, store.Path())
}

func TestConfigStore_LoadsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[data]
root = "/srv/sleep"
exclude = ["2025-05-01", "2025-05-03"]

[journal]
keywords = ["melatonin"]

[analysis]
density_window = "onset"
timeline_padding_minutes = 30
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "/srv/sleep", store.GetString("data.root"))
	assert.Equal(t, []string{"2025-05-01", "2025-05-03"}, store.GetStringSlice("data.exclude"))
	assert.Equal(t, []string{"melatonin"}, store.GetStringSlice("journal.keywords"))
	assert.Equal(t, "onset", store.GetString("analysis.density_window"))
	assert.Equal(t, 30, store.GetInt("analysis.timeline_padding_minutes"))
}

func TestConfigStore_SetDoesNotWrite(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("data.root", "/data"))

	assert.NoFileExists(t, store.Path())
	assert.Equal(t, "/data", store.GetString("data.root"))
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("data.root", "/data"))
	require.NoError(t, store.Set("data.exclude", []string{}))
	require.NoError(t, store.Set("journal.keywords", []string{"melatonin", "unisom"}))
	require.NoError(t, store.Set("analysis.timeline_padding_minutes", int64(45)))
	require.NoError(t, store.Save())

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[data]")
	assert.Contains(t, string(raw), "[analysis]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/data", reloaded.GetString("data.root"))
	assert.Empty(t, reloaded.GetStringSlice("data.exclude"))
	assert.Equal(t, []string{"melatonin", "unisom"}, reloaded.GetStringSlice("journal.keywords"))
	assert.Equal(t, 45, reloaded.GetInt("analysis.timeline_padding_minutes"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("data.root", "/data"))
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigStore_GetTypeMismatch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("num", int64(3)))
	require.NoError(t, store.Set("str", "three"))

	assert.Empty(t, store.GetString("num"))
	assert.Zero(t, store.GetInt("str"))
	assert.Nil(t, store.GetStringSlice("str"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Set_InvalidKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", ".root", "data."} {
		assert.Error(t, store.Set(key, "x"), "key %q", key)
	}
}

func TestConfigStore_Save_ConflictingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("data", "flat"))
	require.NoError(t, store.Set("data.root", "/data"))

	assert.Error(t, store.Save())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[data\nroot ="), 0o600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_Load_ReplacesMemory(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("data.root", "unsaved"))

	require.NoError(t, store.Load())

	_, ok := store.Get("data.root")
	assert.False(t, ok)
}

func TestUnflattenMap(t *testing.T) {
	nested, err := unflattenMap(map[string]any{
		"data.root":                         "/data",
		"analysis.timeline_padding_minutes": int64(60),
		"top":                               true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"data":     map[string]any{"root": "/data"},
		"analysis": map[string]any{"timeline_padding_minutes": int64(60)},
		"top":      true,
	}, nested)
	assert.Equal(t, map[string]any{
		"data.root":                         "/data",
		"analysis.timeline_padding_minutes": int64(60),
		"top":                               true,
	}, flattenMap(nested, ""))
}

func TestOpenConfigStore_CustomFileName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.toml")
	require.NoError(t, os.WriteFile(path, []byte("[data]\nroot = \"/lab\"\n"), 0o600))

	store, err := OpenConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, path, store.Path())
	assert.Equal(t, "/lab", store.GetString("data.root"))
}
