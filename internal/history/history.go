// Package history implements the commit-history operations (spec
// §4.5): the HEAD-rooted first-parent log, the global enumeration over
// every object in the store, exact-message find, and short-id
// expansion. Lookups prefer the derived badger Index when it has
// answers and fall back to a brute-force scan of the object store
// otherwise, so correctness never depends on the index being warm.
package history

import (
	"fmt"
	"strings"

	"vcslite/internal/commitobj"
	"vcslite/internal/objstore"
)

// Walker answers history queries against one object store and its
// (possibly nil) derived index.
type Walker struct {
	Objects *objstore.Store
	Index   *Index
}

func New(objects *objstore.Store, index *Index) *Walker {
	return &Walker{Objects: objects, Index: index}
}

// LogEntry pairs a commit id with its decoded record.
type LogEntry struct {
	ID     string
	Commit *commitobj.Commit
}

// Log walks headID's first-parent chain back to the root sentinel.
func (w *Walker) Log(headID string) ([]LogEntry, error) {
	var out []LogEntry
	id := headID
	for id != "" && id != commitobj.RootParent {
		data, err := w.Objects.Get(id)
		if err != nil {
			return nil, fmt.Errorf("reading commit %s: %w", id, err)
		}
		c, err := commitobj.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing commit %s: %w", id, err)
		}
		out = append(out, LogEntry{ID: id, Commit: c})
		id = c.Parent1
	}
	return out, nil
}

// GlobalLog enumerates every object in the store, in the store's
// filesystem-enumeration order, skipping anything that doesn't parse as
// a commit — blobs and commits share the same flat namespace and are
// indistinguishable by layout alone (spec §6).
func (w *Walker) GlobalLog() ([]LogEntry, error) {
	ids, err := w.Objects.All()
	if err != nil {
		return nil, err
	}
	var out []LogEntry
	for _, id := range ids {
		data, err := w.Objects.Get(id)
		if err != nil {
			continue
		}
		c, err := commitobj.Parse(data)
		if err != nil {
			continue
		}
		out = append(out, LogEntry{ID: id, Commit: c})
	}
	return out, nil
}

// Find returns every commit id whose message equals message exactly.
func (w *Walker) Find(message string) ([]string, error) {
	if w.Index != nil {
		if ids, ok, err := w.Index.FindByMessage(message); err == nil && ok && len(ids) > 0 {
			return ids, nil
		}
	}
	entries, err := w.GlobalLog()
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.Commit.Message == message {
			ids = append(ids, e.ID)
		}
	}
	return ids, nil
}

// ExpandShortID resolves a possibly-abbreviated commit id to its full
// 40-hex form. Ambiguous prefixes are not reported as an error: the
// first match is returned, matching the accepted source behavior this
// spec carries forward (open question #1).
func (w *Walker) ExpandShortID(prefix string) (string, bool, error) {
	if len(prefix) == 40 {
		return prefix, w.Objects.Exists(prefix), nil
	}
	if w.Index != nil {
		if id, ok, err := w.Index.ExpandShortID(prefix); err == nil && ok {
			return id, true, nil
		}
	}
	ids, err := w.Objects.All()
	if err != nil {
		return "", false, err
	}
	for _, id := range ids {
		if strings.HasPrefix(id, prefix) {
			return id, true, nil
		}
	}
	return "", false, nil
}
