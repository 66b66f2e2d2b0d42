package repo

import "vcslite/internal/staging"

// Add stages relPath (spec §4.3 stage_add).
func (r *Repository) Add(relPath string) error {
	area, err := staging.Load(r.StagePath)
	if err != nil {
		return err
	}
	_, _, headCommit, err := r.loadHead()
	if err != nil {
		return err
	}
	if err := staging.Add(area, r.Objects, headCommit.FileMap(), r.WorkDir, relPath); err != nil {
		return err
	}
	return area.Save(r.StagePath)
}

// Rm stages relPath for removal (spec §4.3 stage_rm).
func (r *Repository) Rm(relPath string) error {
	area, err := staging.Load(r.StagePath)
	if err != nil {
		return err
	}
	_, _, headCommit, err := r.loadHead()
	if err != nil {
		return err
	}
	if err := staging.Rm(area, headCommit.FileMap(), r.WorkDir, relPath); err != nil {
		return err
	}
	return area.Save(r.StagePath)
}
