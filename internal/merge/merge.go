// Package merge implements the three-way merge algorithm (spec §4.7):
// split-point discovery over the commit DAG and the per-file resolution
// table that decides, for each filename, whether the current branch's
// version wins, the given branch's version wins, the file is deleted,
// or the file conflicts.
package merge

import (
	"bytes"
	"fmt"

	"vcslite/internal/commitobj"
	"vcslite/internal/objstore"
)

// ancestorSet returns every commit id reachable from start by following
// both parent edges, including start itself. The root sentinel is
// folded into a single "0" entry regardless of how many times it is
// reached.
func ancestorSet(objects *objstore.Store, start string) (map[string]bool, error) {
	set := map[string]bool{}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == "" || id == commitobj.RootParent {
			set[commitobj.RootParent] = true
			continue
		}
		if set[id] {
			continue
		}
		set[id] = true

		data, err := objects.Get(id)
		if err != nil {
			return nil, fmt.Errorf("reading commit %s: %w", id, err)
		}
		c, err := commitobj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing commit %s: %w", id, err)
		}
		if c.Parent1 != "" {
			stack = append(stack, c.Parent1)
		}
		if c.Parent2 != "" {
			stack = append(stack, c.Parent2)
		}
	}
	return set, nil
}

// SplitPoint returns the most recent common ancestor of x and y: the
// DFS ancestor set of x, then a BFS out from y stopping at the first
// vertex already in that set. Returns the root sentinel if the two
// histories share no ancestor.
func SplitPoint(objects *objstore.Store, x, y string) (string, error) {
	ancestorsOfX, err := ancestorSet(objects, x)
	if err != nil {
		return "", err
	}

	seen := map[string]bool{}
	queue := []string{y}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == "" || id == commitobj.RootParent {
			if ancestorsOfX[commitobj.RootParent] {
				return commitobj.RootParent, nil
			}
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		if ancestorsOfX[id] {
			return id, nil
		}

		data, err := objects.Get(id)
		if err != nil {
			return "", fmt.Errorf("reading commit %s: %w", id, err)
		}
		c, err := commitobj.Parse(data)
		if err != nil {
			return "", fmt.Errorf("parsing commit %s: %w", id, err)
		}
		if c.Parent1 != "" {
			queue = append(queue, c.Parent1)
		}
		if c.Parent2 != "" {
			queue = append(queue, c.Parent2)
		}
	}
	return commitobj.RootParent, nil
}

// IsAncestor reports whether candidate is reachable from descendant by
// following parent edges (candidate == descendant counts as true).
func IsAncestor(objects *objstore.Store, candidate, descendant string) (bool, error) {
	set, err := ancestorSet(objects, descendant)
	if err != nil {
		return false, err
	}
	return set[candidate], nil
}

// FileAction is the outcome the §4.7 resolution table assigns to one
// filename.
type FileAction int

const (
	// ActionKeep leaves the current branch's state untouched, including
	// the case where the file is absent from both.
	ActionKeep FileAction = iota
	// ActionTakeY overwrites the working copy with the given branch's
	// blob and stages it.
	ActionTakeY
	// ActionDeleteStageRemove deletes the working file and stages a
	// removal.
	ActionDeleteStageRemove
	// ActionConflict requires synthesizing a conflict file.
	ActionConflict
)

func (a FileAction) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionTakeY:
		return "take-y"
	case ActionDeleteStageRemove:
		return "delete-stage-remove"
	case ActionConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// FileResolution is the per-filename verdict. BlobID is set only for
// ActionTakeY.
type FileResolution struct {
	Filename string
	Action   FileAction
	BlobID   string
}

// Resolve applies spec §4.7's three-way table to a single filename
// given its blob id at the split point (s), the current tip (x), and
// the given tip (y). An empty string means the file is absent.
//
// The table collapses to five cases: unchanged-relative-to-each-other
// files need no action; a file only one side touched takes that side's
// state; everything else — touched by both sides to different
// results — conflicts.
func Resolve(filename, s, x, y string) FileResolution {
	if x == y {
		return FileResolution{Filename: filename, Action: ActionKeep}
	}
	if s != "" && x == s {
		if y == "" {
			return FileResolution{Filename: filename, Action: ActionDeleteStageRemove}
		}
		return FileResolution{Filename: filename, Action: ActionTakeY, BlobID: y}
	}
	if s != "" && y == s {
		return FileResolution{Filename: filename, Action: ActionKeep}
	}
	if s == "" && x == "" {
		return FileResolution{Filename: filename, Action: ActionTakeY, BlobID: y}
	}
	if s == "" && y == "" {
		return FileResolution{Filename: filename, Action: ActionKeep}
	}
	return FileResolution{Filename: filename, Action: ActionConflict}
}

// ConflictBytes synthesizes the literal conflict envelope spec §4.7
// mandates, appending a newline to either side that lacks a trailing
// one so the markers always start their own line.
func ConflictBytes(xData, yData []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("<<<<<<< HEAD\n")
	buf.Write(withTrailingNewline(xData))
	buf.WriteString("=======\n")
	buf.Write(withTrailingNewline(yData))
	buf.WriteString(">>>>>>>\n")
	return buf.Bytes()
}

func withTrailingNewline(data []byte) []byte {
	if len(data) == 0 || data[len(data)-1] == '\n' {
		return data
	}
	out := make([]byte, len(data)+1)
	copy(out, data)
	out[len(data)] = '\n'
	return out
}
