// Package commitobj defines the commit record's logical shape and its
// canonical line-based serialization (spec §4.1/§6): the exact bytes a
// commit's SHA-1 id is computed over.
package commitobj

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// RootParent is the sentinel first-parent value of the repository's
// initial commit.
const RootParent = "0"

const timeLayout = "Mon Jan 02 15:04:05 2006 -0700"

// Entry binds one tracked filename to the blob id holding its content
// at this commit.
type Entry struct {
	BlobID   string
	Filename string
}

// Commit is the immutable record described by spec §3/§4.1.
type Commit struct {
	Message   string
	Parent1   string // RootParent for the initial commit
	Parent2   string // "" unless this is a merge commit
	Timestamp time.Time
	Entries   []Entry // any order; Serialize writes them sorted by Filename
}

// IsMerge reports whether the commit has a second parent.
func (c *Commit) IsMerge() bool { return c.Parent2 != "" }

// FileMap returns the filename -> blob id bindings of this commit.
func (c *Commit) FileMap() map[string]string {
	m := make(map[string]string, len(c.Entries))
	for _, e := range c.Entries {
		m[e.Filename] = e.BlobID
	}
	return m
}

// FromFileMap builds a Commit from a flat filename->blobID map,
// producing entries in the lexicographic order Serialize requires.
func FromFileMap(message, parent1, parent2 string, ts time.Time, files map[string]string) *Commit {
	entries := make([]Entry, 0, len(files))
	for f, b := range files {
		entries = append(entries, Entry{BlobID: b, Filename: f})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Filename < entries[j].Filename })
	return &Commit{
		Message:   message,
		Parent1:   parent1,
		Parent2:   parent2,
		Timestamp: ts,
		Entries:   entries,
	}
}

// InitialCommit returns the canonical root commit: fixed message, "0"
// parent, the Unix epoch timestamp, and no entries. Its serialization
// is the fixed byte string §6 requires init to reproduce verbatim.
func InitialCommit() *Commit {
	return &Commit{
		Message:   "initial commit",
		Parent1:   RootParent,
		Timestamp: time.Unix(0, 0).UTC(),
	}
}

// FormatTimestamp renders t in UTC using the spec's fixed layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// Serialize produces the canonical bytes a commit's id is the SHA-1 of.
// Entries are sorted lexicographically by filename first so the same
// logical commit always serializes identically (property #8).
func (c *Commit) Serialize() []byte {
	entries := make([]Entry, len(c.Entries))
	copy(entries, c.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Filename < entries[j].Filename })

	var buf bytes.Buffer
	buf.WriteString(c.Message)
	buf.WriteByte('\n')

	parent1 := c.Parent1
	if parent1 == "" {
		parent1 = RootParent
	}
	buf.WriteString(parent1)
	buf.WriteByte('\n')

	if c.Parent2 != "" {
		buf.WriteString(c.Parent2)
		buf.WriteByte('\n')
	}

	buf.WriteString(FormatTimestamp(c.Timestamp))
	buf.WriteByte('\n')

	fmt.Fprintf(&buf, "%d\n", len(entries))
	for _, e := range entries {
		buf.WriteString(e.BlobID)
		buf.WriteByte(' ')
		buf.WriteString(e.Filename)
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}

// Parse decodes the canonical serialization back into a Commit. The
// disambiguator between a second-parent line and a timestamp line is
// the presence of ':' — timestamps always contain it (HH:MM:SS), commit
// ids never do. This is spec §4.1's canonical, deliberately brittle,
// rule and MUST be reproduced exactly.
func Parse(data []byte) (*Commit, error) {
	lines := strings.Split(string(data), "\n")
	idx := 0
	next := func() (string, error) {
		if idx >= len(lines) {
			return "", fmt.Errorf("truncated commit record")
		}
		l := lines[idx]
		idx++
		return l, nil
	}

	message, err := next()
	if err != nil {
		return nil, err
	}
	parent1, err := next()
	if err != nil {
		return nil, err
	}

	third, err := next()
	if err != nil {
		return nil, err
	}

	var parent2, timestampLine string
	if strings.Contains(third, ":") {
		timestampLine = third
	} else {
		parent2 = third
		timestampLine, err = next()
		if err != nil {
			return nil, err
		}
	}

	ts, err := ParseTimestamp(timestampLine)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", timestampLine, err)
	}

	countLine, err := next()
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(countLine)
	if err != nil {
		return nil, fmt.Errorf("parsing entry count %q: %w", countLine, err)
	}

	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		line, err := next()
		if err != nil {
			return nil, err
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed entry line %q", line)
		}
		entries = append(entries, Entry{BlobID: parts[0], Filename: parts[1]})
	}

	return &Commit{
		Message:   message,
		Parent1:   parent1,
		Parent2:   parent2,
		Timestamp: ts,
		Entries:   entries,
	}, nil
}
