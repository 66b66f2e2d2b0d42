// Package remote implements local-filesystem peer synchronization
// (spec §4.9): push, fetch, and the object-copying BFS they share.
// A "remote" here is simply another repository's object and ref stores,
// reachable over the local filesystem — there is no network transport.
package remote

import (
	"errors"
	"fmt"

	"vcslite/internal/commitobj"
	"vcslite/internal/merge"
	"vcslite/internal/objstore"
	"vcslite/internal/refs"
	"vcslite/internal/vcserr"
)

// CopyAncestors transitively copies commitID and every commit and blob
// it is built from from src into dst. Content addressing makes this
// idempotent: objects dst already has are left untouched.
func CopyAncestors(src, dst *objstore.Store, commitID string) error {
	seen := map[string]bool{}
	stack := []string{commitID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == "" || id == commitobj.RootParent || seen[id] {
			continue
		}
		seen[id] = true

		data, err := src.Get(id)
		if err != nil {
			return fmt.Errorf("reading commit %s: %w", id, err)
		}
		c, err := commitobj.Parse(data)
		if err != nil {
			return fmt.Errorf("parsing commit %s: %w", id, err)
		}
		if _, err := dst.Put(data); err != nil {
			return err
		}
		for _, e := range c.Entries {
			blob, err := src.Get(e.BlobID)
			if err != nil {
				return fmt.Errorf("reading blob %s: %w", e.BlobID, err)
			}
			if _, err := dst.Put(blob); err != nil {
				return err
			}
		}
		if c.Parent1 != "" {
			stack = append(stack, c.Parent1)
		}
		if c.Parent2 != "" {
			stack = append(stack, c.Parent2)
		}
	}
	return nil
}

// Push copies localHead and its ancestry into the peer's object store
// and advances the peer's branch ref to localHead, refusing with
// PushWouldRewrite if the peer's current tip isn't an ancestor of
// localHead (spec §4.9).
func Push(localObjects, peerObjects *objstore.Store, peerRefs *refs.Store, branch, localHead string) error {
	remoteTip, err := peerRefs.GetBranch(branch)
	switch {
	case err == nil:
		isAncestor, err := merge.IsAncestor(localObjects, remoteTip, localHead)
		if err != nil {
			return err
		}
		if !isAncestor {
			return vcserr.ErrPushWouldRewrite()
		}
	case errors.Is(err, refs.ErrBranchNotFound):
		// peer has never seen this branch; nothing to rewrite.
	default:
		return err
	}

	if err := CopyAncestors(localObjects, peerObjects, localHead); err != nil {
		return err
	}
	return peerRefs.SetBranch(branch, localHead)
}

// Fetch copies the peer's branch tip and its ancestry into the local
// object store and writes (or advances) the local remote-tracking
// branch "<remoteName>/<branch>" to point at it. Returns the fetched
// tip id.
func Fetch(peerObjects, localObjects *objstore.Store, peerRefs, localRefs *refs.Store, remoteName, branch string) (string, error) {
	tip, err := peerRefs.GetBranch(branch)
	if err != nil {
		if errors.Is(err, refs.ErrBranchNotFound) {
			return "", vcserr.ErrNoRemoteBranch()
		}
		return "", err
	}

	if err := CopyAncestors(peerObjects, localObjects, tip); err != nil {
		return "", err
	}

	trackingBranch := remoteName + "/" + branch
	if err := localRefs.SetBranch(trackingBranch, tip); err != nil {
		return "", err
	}
	return tip, nil
}
