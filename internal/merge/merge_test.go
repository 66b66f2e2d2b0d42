package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcslite/internal/commitobj"
	"vcslite/internal/objstore"
)

func putCommit(t *testing.T, store *objstore.Store, message, parent1, parent2 string, files map[string]string) string {
	c := commitobj.FromFileMap(message, parent1, parent2, time.Unix(0, 0).UTC(), files)
	id, err := store.Put(c.Serialize())
	require.NoError(t, err)
	return id
}

func TestSplitPointLinearHistory(t *testing.T) {
	store, err := objstore.Open(t.TempDir())
	require.NoError(t, err)

	root := putCommit(t, store, "root", commitobj.RootParent, "", nil)
	mid := putCommit(t, store, "mid", root, "", nil)
	tip := putCommit(t, store, "tip", mid, "", nil)

	split, err := SplitPoint(store, tip, root)
	require.NoError(t, err)
	assert.Equal(t, root, split)
}

func TestSplitPointDivergentBranches(t *testing.T) {
	store, err := objstore.Open(t.TempDir())
	require.NoError(t, err)

	root := putCommit(t, store, "root", commitobj.RootParent, "", nil)
	x := putCommit(t, store, "x", root, "", nil)
	y := putCommit(t, store, "y", root, "", nil)

	split, err := SplitPoint(store, x, y)
	require.NoError(t, err)
	assert.Equal(t, root, split)
}

func TestIsAncestor(t *testing.T) {
	store, err := objstore.Open(t.TempDir())
	require.NoError(t, err)

	root := putCommit(t, store, "root", commitobj.RootParent, "", nil)
	tip := putCommit(t, store, "tip", root, "", nil)

	ok, err := IsAncestor(store, root, tip)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsAncestor(store, tip, root)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveTable(t *testing.T) {
	cases := []struct {
		name    string
		s, x, y string
		action  FileAction
	}{
		{"y modified only", "s", "s", "y", ActionTakeY},
		{"x modified only", "s", "x", "s", ActionKeep},
		{"both same change", "s", "same", "same", ActionKeep},
		{"both deleted", "s", "", "", ActionKeep},
		{"new in B only", "", "", "y", ActionTakeY},
		{"new in C only", "", "x", "", ActionKeep},
		{"deleted in B only", "s", "s", "", ActionDeleteStageRemove},
		{"deleted in C only", "s", "", "s", ActionKeep},
		{"modified in B deleted in C", "s", "", "y", ActionConflict},
		{"modified in C deleted in B", "s", "x", "", ActionConflict},
		{"both modified differently", "s", "x", "y", ActionConflict},
		{"added differently", "", "x", "y", ActionConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Resolve("f.txt", tc.s, tc.x, tc.y)
			assert.Equal(t, tc.action, res.Action)
		})
	}
}

func TestConflictBytesAddsMissingNewlines(t *testing.T) {
	out := ConflictBytes([]byte("x-side"), []byte("y-side\n"))
	want := "<<<<<<< HEAD\nx-side\n=======\ny-side\n>>>>>>>\n"
	assert.Equal(t, want, string(out))
}

func TestConflictBytesHandlesAbsentSide(t *testing.T) {
	out := ConflictBytes(nil, []byte("y-side\n"))
	want := "<<<<<<< HEAD\n=======\ny-side\n>>>>>>>\n"
	assert.Equal(t, want, string(out))
}
