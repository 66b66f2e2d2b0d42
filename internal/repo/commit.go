package repo

import (
	"time"

	"go.uber.org/zap"

	"vcslite/internal/commitobj"
	"vcslite/internal/staging"
	"vcslite/internal/vcserr"
)

// Commit applies the staging area to HEAD and advances the current
// branch (spec §4.4's commit engine). An empty message or an empty
// staging area are both rejected.
func (r *Repository) Commit(message string) (string, error) {
	area, err := staging.Load(r.StagePath)
	if err != nil {
		return "", err
	}
	return r.commitWithArea(area, message, "", time.Now())
}

// commitWithArea is the shared commit-construction step merge also
// drives, against an already-populated Area rather than one freshly
// loaded from disk.
func (r *Repository) commitWithArea(area *staging.Area, message, parent2 string, now time.Time) (string, error) {
	if message == "" {
		return "", vcserr.ErrEmptyMessage()
	}
	if area.IsEmpty() && parent2 == "" {
		return "", vcserr.ErrNoChanges()
	}

	branch, headID, headCommit, err := r.loadHead()
	if err != nil {
		return "", err
	}

	files := headCommit.FileMap()
	for f, b := range area.Additions {
		files[f] = b
	}
	for f := range area.Removals {
		delete(files, f)
	}

	c := commitobj.FromFileMap(message, headID, parent2, now.UTC(), files)
	id, err := r.Objects.Put(c.Serialize())
	if err != nil {
		return "", err
	}
	r.Logger.Info("wrote commit object", zap.String("id", id), zap.Int("entries", len(files)))

	if err := r.Refs.SetBranch(branch, id); err != nil {
		return "", err
	}
	r.Logger.Info("advanced branch", zap.String("branch", branch), zap.String("id", id))

	if err := r.Index.Record(id, message); err != nil {
		return "", err
	}

	area.Clear()
	if err := area.Save(r.StagePath); err != nil {
		return "", err
	}
	return id, nil
}
