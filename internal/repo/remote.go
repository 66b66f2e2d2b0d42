package repo

import (
	"os"
	"path/filepath"

	"vcslite/internal/objstore"
	"vcslite/internal/refs"
	"vcslite/internal/remote"
	"vcslite/internal/vcserr"
)

// AddRemote records a name -> filesystem-path mapping (spec §4.9).
func (r *Repository) AddRemote(name, path string) error {
	return r.Refs.AddRemote(name, path)
}

// RemoveRemote drops a configured remote.
func (r *Repository) RemoveRemote(name string) error {
	return r.Refs.RemoveRemote(name)
}

// peer resolves a configured remote name to its object and ref stores,
// failing with NoRemote if the name isn't configured or its path
// doesn't carry a repo subtree.
func (r *Repository) peer(name string) (*objstore.Store, *refs.Store, error) {
	path, ok, err := r.Refs.RemotePath(name)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, vcserr.ErrNoRemote()
	}

	peerRepoDir := filepath.Join(path, filepath.Base(r.RepoDir))
	if _, err := os.Stat(peerRepoDir); err != nil {
		return nil, nil, vcserr.ErrNoRemote()
	}

	objects, err := objstore.Open(filepath.Join(peerRepoDir, "objects"))
	if err != nil {
		return nil, nil, err
	}
	return objects, refs.Open(peerRepoDir), nil
}

// Push copies local HEAD's ancestry to the named remote and branch.
func (r *Repository) Push(remoteName, branch string) error {
	peerObjects, peerRefs, err := r.peer(remoteName)
	if err != nil {
		return err
	}
	_, headID, _, err := r.loadHead()
	if err != nil {
		return err
	}
	return remote.Push(r.Objects, peerObjects, peerRefs, branch, headID)
}

// Fetch copies the named remote branch's ancestry into the local
// object store under a remote-tracking branch.
func (r *Repository) Fetch(remoteName, branch string) (string, error) {
	peerObjects, peerRefs, err := r.peer(remoteName)
	if err != nil {
		return "", err
	}
	return remote.Fetch(peerObjects, r.Objects, peerRefs, r.Refs, remoteName, branch)
}

// Pull fetches then merges the resulting remote-tracking branch into
// the current branch.
func (r *Repository) Pull(remoteName, branch string) (*MergeResult, error) {
	if _, err := r.Fetch(remoteName, branch); err != nil {
		return nil, err
	}
	return r.Merge(remoteName + "/" + branch)
}
