package repo

import (
	"go.uber.org/zap"

	"vcslite/internal/commitobj"
	"vcslite/internal/staging"
	"vcslite/internal/vcserr"
	"vcslite/internal/worktree"
)

// CheckoutBranch switches the working tree, HEAD, and staging area to
// name (spec §4.6).
func (r *Repository) CheckoutBranch(name string) error {
	current, _, headCommit, err := r.loadHead()
	if err != nil {
		return err
	}
	if name == current {
		return vcserr.ErrCheckoutCurrent()
	}
	if !r.Refs.BranchExists(name) {
		return vcserr.ErrNoBranchNamed()
	}

	targetID, err := r.Refs.GetBranch(name)
	if err != nil {
		return err
	}
	target, err := r.commitAt(targetID)
	if err != nil {
		return err
	}

	area, err := staging.Load(r.StagePath)
	if err != nil {
		return err
	}

	if err := r.reconcile(headCommit, target, area); err != nil {
		return err
	}
	if err := r.Refs.SetHead(name); err != nil {
		return err
	}

	area.Clear()
	return area.Save(r.StagePath)
}

// Reset moves the current branch to commitIDArg and reconciles the
// working tree to match (spec §4.6).
func (r *Repository) Reset(commitIDArg string) error {
	branch, _, headCommit, err := r.loadHead()
	if err != nil {
		return err
	}
	targetID, target, err := r.resolveCommit(commitIDArg)
	if err != nil {
		return err
	}

	area, err := staging.Load(r.StagePath)
	if err != nil {
		return err
	}

	if err := r.reconcile(headCommit, target, area); err != nil {
		return err
	}
	if err := r.Refs.SetBranch(branch, targetID); err != nil {
		return err
	}

	area.Clear()
	return area.Save(r.StagePath)
}

// reconcile runs the shared pre-check-then-apply sequence checkout and
// reset both need.
func (r *Repository) reconcile(head, target *commitobj.Commit, area *staging.Area) error {
	headFiles, targetFiles := head.FileMap(), target.FileMap()
	if err := worktree.PrecheckUntracked(r.WorkDir, headFiles, targetFiles, area.Additions); err != nil {
		return err
	}
	r.Logger.Debug("reconciling working tree", zap.Int("headFiles", len(headFiles)), zap.Int("targetFiles", len(targetFiles)))
	return worktree.Apply(r.Objects, r.WorkDir, headFiles, targetFiles)
}

// CheckoutFile restores relPath from HEAD without touching HEAD or
// staging.
func (r *Repository) CheckoutFile(relPath string) error {
	_, _, headCommit, err := r.loadHead()
	if err != nil {
		return err
	}
	return r.restoreFileFrom(headCommit, relPath)
}

// CheckoutCommitFile restores relPath as it existed at commitArg.
func (r *Repository) CheckoutCommitFile(commitArg, relPath string) error {
	_, commit, err := r.resolveCommit(commitArg)
	if err != nil {
		return err
	}
	return r.restoreFileFrom(commit, relPath)
}

func (r *Repository) restoreFileFrom(commit *commitobj.Commit, relPath string) error {
	blobID, ok := commit.FileMap()[relPath]
	if !ok {
		return vcserr.ErrNoSuchFileInCommit()
	}
	return worktree.RestoreFile(r.Objects, r.WorkDir, relPath, blobID)
}
