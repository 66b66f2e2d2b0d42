package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcslite/internal/objstore"
)

func TestLoadMissingFileIsEmptyArea(t *testing.T) {
	a, err := Load(filepath.Join(t.TempDir(), "STAGING"))
	require.NoError(t, err)
	assert.True(t, a.IsEmpty())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "STAGING")
	a := New()
	a.Additions["b.txt"] = "bbb"
	a.Additions["a.txt"] = "aaa"
	a.Removals["c.txt"] = true

	require.NoError(t, a.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, a.Additions, got.Additions)
	assert.Equal(t, a.Removals, got.Removals)
}

func TestAddStagesNewFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir, "f.txt", "hello"))

	store, err := objstore.Open(filepath.Join(dir, "objects"))
	require.NoError(t, err)

	area := New()
	require.NoError(t, Add(area, store, map[string]string{}, dir, "f.txt"))
	assert.Len(t, area.Additions, 1)
	assert.False(t, area.Removals["f.txt"])
}

func TestAddOfContentAlreadyInHeadUnstages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir, "f.txt", "hello"))

	store, err := objstore.Open(filepath.Join(dir, "objects"))
	require.NoError(t, err)
	id, err := store.Put([]byte("hello"))
	require.NoError(t, err)

	area := New()
	area.Additions["f.txt"] = "stale-id"
	require.NoError(t, Add(area, store, map[string]string{"f.txt": id}, dir, "f.txt"))
	_, staged := area.Additions["f.txt"]
	assert.False(t, staged)
}

func TestAddMissingFileFails(t *testing.T) {
	dir := t.TempDir()
	store, err := objstore.Open(filepath.Join(dir, "objects"))
	require.NoError(t, err)

	area := New()
	err = Add(area, store, map[string]string{}, dir, "missing.txt")
	assert.Error(t, err)
}

func TestRmNeitherStagedNorTrackedFails(t *testing.T) {
	area := New()
	err := Rm(area, map[string]string{}, t.TempDir(), "nope.txt")
	assert.Error(t, err)
}

func TestRmTrackedFileDeletesAndStages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir, "f.txt", "hello"))

	area := New()
	require.NoError(t, Rm(area, map[string]string{"f.txt": "anyid"}, dir, "f.txt"))
	assert.True(t, area.Removals["f.txt"])
	assert.NoFileExists(t, filepath.Join(dir, "f.txt"))
}

func writeFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}
