package repo

import "vcslite/internal/vcserr"

// CreateBranch points a new branch ref at the current HEAD.
func (r *Repository) CreateBranch(name string) error {
	if r.Refs.BranchExists(name) {
		return vcserr.ErrBranchExists()
	}
	_, headID, _, err := r.loadHead()
	if err != nil {
		return err
	}
	return r.Refs.SetBranch(name, headID)
}

// RemoveBranch deletes a branch ref. The current branch can't be
// removed.
func (r *Repository) RemoveBranch(name string) error {
	current, err := r.Refs.CurrentBranch()
	if err != nil {
		return err
	}
	if name == current {
		return vcserr.ErrCannotRemoveCurrent()
	}
	if !r.Refs.BranchExists(name) {
		return vcserr.ErrNoBranchNamed()
	}
	return r.Refs.DeleteBranch(name)
}
