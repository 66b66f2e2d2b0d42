// Package status classifies the working tree against HEAD and the
// staging area into the four buckets spec §4.8 defines.
package status

import "sort"

// ModEntry is one filename under "Modifications Not Staged For
// Commit", annotated per spec §4.8's exact rule.
type ModEntry struct {
	Filename   string
	Annotation string // "(modified)" or "(deleted)"
}

// Report is the fully classified snapshot a CLI renders verbatim.
type Report struct {
	Branches      []string
	CurrentBranch string
	Staged        []string
	Removed       []string
	Modified      []ModEntry
	Untracked     []string
}

// Build classifies every tracked, staged, and working-tree file.
//
// headFiles is HEAD's filename->blobID map. additions and removals are
// the staging area's two sets.
// workingHashes is filename->sha1(content) for every file currently
// present in the working tree (blob ids are sha1 too, so a live file's
// hash is directly comparable to a blob id without reading it back).
func Build(branches []string, current string, headFiles map[string]string, additions map[string]string, removals map[string]bool, workingHashes map[string]string) *Report {
	r := &Report{CurrentBranch: current}

	r.Branches = append(r.Branches, branches...)
	sort.Strings(r.Branches)

	for f := range additions {
		r.Staged = append(r.Staged, f)
	}
	sort.Strings(r.Staged)

	for f := range removals {
		r.Removed = append(r.Removed, f)
	}
	sort.Strings(r.Removed)

	for f, headHash := range headFiles {
		if _, staged := additions[f]; staged {
			continue
		}
		if removals[f] {
			continue
		}
		wh, present := workingHashes[f]
		switch {
		case !present:
			r.Modified = append(r.Modified, ModEntry{f, "(deleted)"})
		case wh != headHash:
			r.Modified = append(r.Modified, ModEntry{f, "(modified)"})
		}
	}
	for f, blobID := range additions {
		wh, present := workingHashes[f]
		switch {
		case !present:
			r.Modified = append(r.Modified, ModEntry{f, "(deleted)"})
		case wh != blobID:
			r.Modified = append(r.Modified, ModEntry{f, "(modified)"})
		}
	}
	sort.Slice(r.Modified, func(i, j int) bool { return r.Modified[i].Filename < r.Modified[j].Filename })

	for f := range workingHashes {
		if _, tracked := headFiles[f]; tracked {
			continue
		}
		if _, staged := additions[f]; staged {
			continue
		}
		r.Untracked = append(r.Untracked, f)
	}
	sort.Strings(r.Untracked)

	return r
}
