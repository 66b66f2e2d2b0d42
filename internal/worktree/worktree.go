// Package worktree implements the working-tree reconciliation algorithm
// (spec §4.6) shared by checkout, reset, and merge: writing a target
// commit's files into the working directory, removing files the target
// no longer tracks, and refusing to silently clobber untracked user
// data.
package worktree

import (
	"path/filepath"

	"vcslite/internal/objstore"
	"vcslite/internal/pathutil"
	"vcslite/internal/vcserr"
)

// PrecheckUntracked fails with UntrackedWouldBeOverwritten if applying
// targetFiles over the working tree would silently clobber a file that
// is untracked by headFiles and not already staged for addition. It
// performs no mutation; callers run it before any write.
func PrecheckUntracked(root string, headFiles, targetFiles, additions map[string]string) error {
	for f := range targetFiles {
		if _, inHead := headFiles[f]; inHead {
			continue
		}
		if _, staged := additions[f]; staged {
			continue
		}
		if pathutil.Exists(filepath.Join(root, f)) {
			return vcserr.ErrUntrackedWouldBeOverwritten()
		}
	}
	return nil
}

// Apply writes every file named in targetFiles to the working tree and
// deletes every file named in headFiles but absent from targetFiles.
func Apply(objects *objstore.Store, root string, headFiles, targetFiles map[string]string) error {
	for f, blobID := range targetFiles {
		data, err := objects.Get(blobID)
		if err != nil {
			return err
		}
		if err := pathutil.AtomicWrite(filepath.Join(root, f), data, 0o644); err != nil {
			return err
		}
	}
	for f := range headFiles {
		if _, stillTracked := targetFiles[f]; stillTracked {
			continue
		}
		if err := pathutil.SafeDelete(root, filepath.Join(root, f)); err != nil {
			return err
		}
	}
	return nil
}

// RestoreFile overwrites the single file at relPath with blobID's
// bytes. It never touches HEAD or staging and performs no untracked
// check — the caller (checkout-file) never mutates repository state.
func RestoreFile(objects *objstore.Store, root, relPath, blobID string) error {
	data, err := objects.Get(blobID)
	if err != nil {
		return err
	}
	return pathutil.AtomicWrite(filepath.Join(root, relPath), data, 0o644)
}
