package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcslite/internal/commitobj"
	"vcslite/internal/logging"
	"vcslite/internal/pathutil"
	"vcslite/internal/vcserr"
)

const repoDirName = ".vcslite"

func newRepo(t *testing.T) (*Repository, string) {
	workDir := t.TempDir()
	r, err := Init(workDir, repoDirName, logging.Noop())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r, workDir
}

func writeWorkFile(t *testing.T, workDir, name, content string) {
	require.NoError(t, os.WriteFile(filepath.Join(workDir, name), []byte(content), 0o644))
}

func TestInitProducesCanonicalInitialCommit(t *testing.T) {
	r, _ := newRepo(t)

	entries, err := r.Log()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	wantID := pathutil.Sha1Hex(commitobj.InitialCommit().Serialize())
	assert.Equal(t, wantID, entries[0].ID)
}

func TestInitTwiceFails(t *testing.T) {
	workDir := t.TempDir()
	r, err := Init(workDir, repoDirName, logging.Noop())
	require.NoError(t, err)
	defer r.Close()

	_, err = Init(workDir, repoDirName, logging.Noop())
	require.Error(t, err)
	assert.True(t, vcserr.Is(err, vcserr.AlreadyInitialized))
}

func TestAddCommitLogRoundTrip(t *testing.T) {
	r, workDir := newRepo(t)
	writeWorkFile(t, workDir, "f.txt", "hello")

	require.NoError(t, r.Add("f.txt"))
	id, err := r.Commit("add f")
	require.NoError(t, err)

	entries, err := r.Log()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, "add f", entries[0].Commit.Message)
}

func TestCommitWithEmptyMessageFails(t *testing.T) {
	r, workDir := newRepo(t)
	writeWorkFile(t, workDir, "f.txt", "hello")
	require.NoError(t, r.Add("f.txt"))

	_, err := r.Commit("")
	require.Error(t, err)
	assert.True(t, vcserr.Is(err, vcserr.EmptyMessage))
}

func TestCommitWithNoChangesFails(t *testing.T) {
	r, _ := newRepo(t)
	_, err := r.Commit("nothing to commit")
	require.Error(t, err)
	assert.True(t, vcserr.Is(err, vcserr.NoChanges))
}

func TestStatusReportsStagedModifiedAndUntracked(t *testing.T) {
	r, workDir := newRepo(t)
	writeWorkFile(t, workDir, "tracked.txt", "v1")
	require.NoError(t, r.Add("tracked.txt"))
	_, err := r.Commit("add tracked")
	require.NoError(t, err)

	writeWorkFile(t, workDir, "tracked.txt", "v2")
	writeWorkFile(t, workDir, "staged.txt", "staged content")
	require.NoError(t, r.Add("staged.txt"))
	writeWorkFile(t, workDir, "loose.txt", "untracked")

	report, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"staged.txt"}, report.Staged)
	assert.Equal(t, []string{"loose.txt"}, report.Untracked)
	require.Len(t, report.Modified, 1)
	assert.Equal(t, "tracked.txt", report.Modified[0].Filename)
	assert.Equal(t, "(modified)", report.Modified[0].Annotation)
}

func TestBranchCreateCheckoutRemove(t *testing.T) {
	r, workDir := newRepo(t)
	writeWorkFile(t, workDir, "f.txt", "v1")
	require.NoError(t, r.Add("f.txt"))
	_, err := r.Commit("first")
	require.NoError(t, err)

	require.NoError(t, r.CreateBranch("feature"))
	require.Error(t, r.CreateBranch("feature"))

	require.NoError(t, r.CheckoutBranch("feature"))
	require.Error(t, r.CheckoutBranch("feature")) // already current

	require.NoError(t, r.CheckoutBranch("master"))
	require.Error(t, r.RemoveBranch("master")) // current
	require.NoError(t, r.RemoveBranch("feature"))
}

func TestMergeFastForwardsWhenNoDivergence(t *testing.T) {
	r, workDir := newRepo(t)
	writeWorkFile(t, workDir, "f.txt", "v1")
	require.NoError(t, r.Add("f.txt"))
	_, err := r.Commit("first")
	require.NoError(t, err)

	require.NoError(t, r.CreateBranch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeWorkFile(t, workDir, "g.txt", "v2")
	require.NoError(t, r.Add("g.txt"))
	tipID, err := r.Commit("second")
	require.NoError(t, err)

	require.NoError(t, r.CheckoutBranch("master"))
	result, err := r.Merge("feature")
	require.NoError(t, err)
	assert.Equal(t, "Current branch fast-forwarded.", result.Message)
	assert.Equal(t, tipID, result.CommitID)
}

func TestMergeProducesConflictEnvelope(t *testing.T) {
	r, workDir := newRepo(t)
	writeWorkFile(t, workDir, "f.txt", "base\n")
	require.NoError(t, r.Add("f.txt"))
	_, err := r.Commit("base")
	require.NoError(t, err)

	require.NoError(t, r.CreateBranch("feature"))
	require.NoError(t, r.CheckoutBranch("feature"))
	writeWorkFile(t, workDir, "f.txt", "feature-side\n")
	require.NoError(t, r.Add("f.txt"))
	_, err = r.Commit("feature change")
	require.NoError(t, err)

	require.NoError(t, r.CheckoutBranch("master"))
	writeWorkFile(t, workDir, "f.txt", "master-side\n")
	require.NoError(t, r.Add("f.txt"))
	_, err = r.Commit("master change")
	require.NoError(t, err)

	result, err := r.Merge("feature")
	require.NoError(t, err)
	assert.True(t, result.Conflicted)
	assert.Equal(t, "Encountered a merge conflict.", result.Message)

	data, err := os.ReadFile(filepath.Join(workDir, "f.txt"))
	require.NoError(t, err)
	want := "<<<<<<< HEAD\nmaster-side\n=======\nfeature-side\n>>>>>>>\n"
	assert.Equal(t, want, string(data))
}

func TestMergeSelfFails(t *testing.T) {
	r, _ := newRepo(t)
	_, err := r.Merge("master")
	require.Error(t, err)
	assert.True(t, vcserr.Is(err, vcserr.SelfMerge))
}

func TestPushFetchPullBetweenTwoRepositories(t *testing.T) {
	originWork := t.TempDir()
	origin, err := Init(originWork, repoDirName, logging.Noop())
	require.NoError(t, err)
	defer origin.Close()

	writeWorkFile(t, originWork, "f.txt", "origin content")
	require.NoError(t, origin.Add("f.txt"))
	originTip, err := origin.Commit("origin commit")
	require.NoError(t, err)

	cloneWork := t.TempDir()
	clone, err := Init(cloneWork, repoDirName, logging.Noop())
	require.NoError(t, err)
	defer clone.Close()

	require.NoError(t, clone.AddRemote("origin", originWork))

	tip, err := clone.Fetch("origin", "master")
	require.NoError(t, err)
	assert.Equal(t, originTip, tip)

	result, err := clone.Pull("origin", "master")
	require.NoError(t, err)
	assert.Equal(t, "Current branch fast-forwarded.", result.Message)

	data, err := os.ReadFile(filepath.Join(cloneWork, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "origin content", string(data))
}
