package repo

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"vcslite/internal/merge"
	"vcslite/internal/pathutil"
	"vcslite/internal/staging"
	"vcslite/internal/vcserr"
	"vcslite/internal/worktree"
)

// MergeResult reports the trivial-outcome message and the conflict
// flag the CLI echoes to the user (spec §4.7).
type MergeResult struct {
	Message    string // non-empty for the two trivial outcomes and for a conflicted merge
	Conflicted bool
	CommitID   string
}

// Merge performs the three-way merge of givenBranch into the current
// branch.
func (r *Repository) Merge(givenBranch string) (*MergeResult, error) {
	current, x, xCommit, err := r.loadHead()
	if err != nil {
		return nil, err
	}

	area, err := staging.Load(r.StagePath)
	if err != nil {
		return nil, err
	}
	if !area.IsEmpty() {
		return nil, vcserr.ErrUncommittedChanges()
	}
	if !r.Refs.BranchExists(givenBranch) {
		return nil, vcserr.ErrNoSuchBranchExists()
	}
	if givenBranch == current {
		return nil, vcserr.ErrSelfMerge()
	}

	y, err := r.Refs.GetBranch(givenBranch)
	if err != nil {
		return nil, err
	}

	split, err := merge.SplitPoint(r.Objects, x, y)
	if err != nil {
		return nil, err
	}

	if split == y {
		return &MergeResult{Message: "Given branch is an ancestor of the current branch.", CommitID: x}, nil
	}
	if split == x {
		if err := r.CheckoutBranch(givenBranch); err != nil {
			return nil, err
		}
		return &MergeResult{Message: "Current branch fast-forwarded.", CommitID: y}, nil
	}

	yCommit, err := r.commitAt(y)
	if err != nil {
		return nil, err
	}
	sCommit, err := r.commitAt(split)
	if err != nil {
		return nil, err
	}
	xFiles, yFiles, sFiles := xCommit.FileMap(), yCommit.FileMap(), sCommit.FileMap()

	if err := worktree.PrecheckUntracked(r.WorkDir, xFiles, yFiles, area.Additions); err != nil {
		return nil, err
	}

	conflicted, err := r.applyMergeResolution(area, sFiles, xFiles, yFiles)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Merged %s into %s.", givenBranch, current)
	id, err := r.commitWithArea(area, message, y, time.Now())
	if err != nil {
		return nil, err
	}

	result := &MergeResult{Conflicted: conflicted, CommitID: id}
	if conflicted {
		result.Message = "Encountered a merge conflict."
	}
	return result, nil
}

// applyMergeResolution walks every filename named by the split point or
// either tip, applies the §4.7 resolution table, and mutates the
// working tree and staging area to match. It returns whether any file
// conflicted.
func (r *Repository) applyMergeResolution(area *staging.Area, sFiles, xFiles, yFiles map[string]string) (bool, error) {
	conflicted := false
	for _, f := range unionFilenames(sFiles, xFiles, yFiles) {
		res := merge.Resolve(f, sFiles[f], xFiles[f], yFiles[f])
		r.Logger.Debug("merge case selected", zap.String("file", f), zap.Stringer("action", res.Action))
		switch res.Action {
		case merge.ActionKeep:
			// x's state is already correct on disk and in HEAD.

		case merge.ActionTakeY:
			data, err := r.Objects.Get(res.BlobID)
			if err != nil {
				return false, err
			}
			if err := pathutil.AtomicWrite(filepath.Join(r.WorkDir, f), data, 0o644); err != nil {
				return false, err
			}
			area.Additions[f] = res.BlobID
			delete(area.Removals, f)

		case merge.ActionDeleteStageRemove:
			if err := pathutil.SafeDelete(r.WorkDir, filepath.Join(r.WorkDir, f)); err != nil {
				return false, err
			}
			area.Removals[f] = true
			delete(area.Additions, f)

		case merge.ActionConflict:
			conflicted = true
			xData, yData, err := r.conflictSides(xFiles, yFiles, f)
			if err != nil {
				return false, err
			}
			merged := merge.ConflictBytes(xData, yData)
			if err := pathutil.AtomicWrite(filepath.Join(r.WorkDir, f), merged, 0o644); err != nil {
				return false, err
			}
			blobID, err := r.Objects.Put(merged)
			if err != nil {
				return false, err
			}
			area.Additions[f] = blobID
			delete(area.Removals, f)
		}
	}
	return conflicted, nil
}

func (r *Repository) conflictSides(xFiles, yFiles map[string]string, f string) (xData, yData []byte, err error) {
	if id, ok := xFiles[f]; ok {
		if xData, err = r.Objects.Get(id); err != nil {
			return nil, nil, err
		}
	}
	if id, ok := yFiles[f]; ok {
		if yData, err = r.Objects.Get(id); err != nil {
			return nil, nil, err
		}
	}
	return xData, yData, nil
}

func unionFilenames(maps ...map[string]string) []string {
	set := map[string]bool{}
	for _, m := range maps {
		for k := range m {
			set[k] = true
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
