package repo

import (
	"vcslite/internal/staging"
	"vcslite/internal/status"
)

// Status classifies the working tree against HEAD and staging (spec
// §4.8).
func (r *Repository) Status() (*status.Report, error) {
	current, _, headCommit, err := r.loadHead()
	if err != nil {
		return nil, err
	}
	branches, err := r.Refs.ListBranches()
	if err != nil {
		return nil, err
	}
	area, err := staging.Load(r.StagePath)
	if err != nil {
		return nil, err
	}
	working, err := r.listWorkingFiles()
	if err != nil {
		return nil, err
	}
	return status.Build(branches, current, headCommit.FileMap(), area.Additions, area.Removals, working), nil
}
