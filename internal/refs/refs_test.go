package refs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadRoundTrip(t *testing.T) {
	s := Open(t.TempDir())
	require.NoError(t, s.SetHead("master"))

	branch, err := s.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestBranchLifecycle(t *testing.T) {
	s := Open(t.TempDir())

	assert.False(t, s.BranchExists("feature"))
	_, err := s.GetBranch("feature")
	assert.ErrorIs(t, err, ErrBranchNotFound)

	require.NoError(t, s.SetBranch("feature", "deadbeef"))
	assert.True(t, s.BranchExists("feature"))

	id, err := s.GetBranch("feature")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", id)

	require.NoError(t, s.DeleteBranch("feature"))
	assert.False(t, s.BranchExists("feature"))

	// deleting an already-missing branch is not an error at this layer
	require.NoError(t, s.DeleteBranch("feature"))
}

func TestListBranchesIncludesRemoteTrackingComposites(t *testing.T) {
	s := Open(t.TempDir())
	require.NoError(t, s.SetBranch("master", "aaaa"))
	require.NoError(t, s.SetBranch("origin/master", "bbbb"))

	names, err := s.ListBranches()
	require.NoError(t, err)
	assert.Equal(t, []string{"master", "origin/master"}, names)
}

func TestRemotesRoundTrip(t *testing.T) {
	s := Open(t.TempDir())

	require.NoError(t, s.AddRemote("origin", "/tmp/origin"))
	require.Error(t, s.AddRemote("origin", "/tmp/other"))

	path, ok, err := s.RemotePath("origin")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "/tmp/origin", path)

	require.NoError(t, s.RemoveRemote("origin"))
	_, ok, err = s.RemotePath("origin")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, s.RemoveRemote("origin"))
}

func TestGetBranchDistinguishesNotFound(t *testing.T) {
	s := Open(t.TempDir())
	_, err := s.GetBranch("nope")
	assert.True(t, errors.Is(err, ErrBranchNotFound))
}
