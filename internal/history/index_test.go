package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcslite/internal/objstore"
)

func TestIndexRecordAndFindByMessage(t *testing.T) {
	ix, err := OpenIndex(t.TempDir())
	require.NoError(t, err)
	defer ix.Close()

	require.NoError(t, ix.Record("aaaa", "first"))
	require.NoError(t, ix.Record("bbbb", "first"))
	require.NoError(t, ix.Record("cccc", "second"))

	ids, ok, err := ix.FindByMessage("first")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.ElementsMatch(t, []string{"aaaa", "bbbb"}, ids)

	ids, ok, err = ix.FindByMessage("missing")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, ids)
}

func TestIndexExpandShortID(t *testing.T) {
	ix, err := OpenIndex(t.TempDir())
	require.NoError(t, err)
	defer ix.Close()

	require.NoError(t, ix.Record("abcdef1234", "msg"))

	id, ok, err := ix.ExpandShortID("abcdef")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abcdef1234", id)

	_, ok, err = ix.ExpandShortID("zzzz")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIndexRebuildFromStore(t *testing.T) {
	store, err := objstore.Open(t.TempDir())
	require.NoError(t, err)
	id := putCommit(t, store, "rebuilt message", "0", "", nil)

	ix, err := OpenIndex(t.TempDir())
	require.NoError(t, err)
	defer ix.Close()

	require.NoError(t, ix.Rebuild(store))

	ids, ok, err := ix.FindByMessage("rebuilt message")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{id}, ids)
}

func TestIndexOperationsAreNoOpOnNil(t *testing.T) {
	var ix *Index
	assert.NoError(t, ix.Close())
	assert.NoError(t, ix.Record("a", "b"))
	ids, ok, err := ix.FindByMessage("x")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, ids)
}
