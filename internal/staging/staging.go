// Package staging implements the staging area (spec §4.3): the mutable
// delta against HEAD that the next commit will apply, persisted to a
// single file and rewritten in full on every mutation.
package staging

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"vcslite/internal/pathutil"
)

// Area holds the pending Additions (filename -> blob id) and Removals
// (filename set) for the next commit. A filename never appears in both.
type Area struct {
	Additions map[string]string
	Removals  map[string]bool
}

func New() *Area {
	return &Area{Additions: map[string]string{}, Removals: map[string]bool{}}
}

// Load reads the staging file at path. A missing file is an empty Area.
func Load(path string) (*Area, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading staging area: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Area, error) {
	lines := strings.Split(string(data), "\n")
	idx := 0
	next := func() (string, error) {
		if idx >= len(lines) {
			return "", fmt.Errorf("truncated staging area")
		}
		l := lines[idx]
		idx++
		return l, nil
	}

	a := New()

	aCountLine, err := next()
	if err != nil {
		return nil, err
	}
	aCount, err := strconv.Atoi(aCountLine)
	if err != nil {
		return nil, fmt.Errorf("parsing addition count %q: %w", aCountLine, err)
	}
	for i := 0; i < aCount; i++ {
		filename, err := next()
		if err != nil {
			return nil, err
		}
		blobID, err := next()
		if err != nil {
			return nil, err
		}
		a.Additions[filename] = blobID
	}

	rCountLine, err := next()
	if err != nil {
		return nil, err
	}
	rCount, err := strconv.Atoi(rCountLine)
	if err != nil {
		return nil, fmt.Errorf("parsing removal count %q: %w", rCountLine, err)
	}
	for i := 0; i < rCount; i++ {
		filename, err := next()
		if err != nil {
			return nil, err
		}
		a.Removals[filename] = true
	}

	return a, nil
}

// Save rewrites the staging file at path in full.
func (a *Area) Save(path string) error {
	additions := make([]string, 0, len(a.Additions))
	for f := range a.Additions {
		additions = append(additions, f)
	}
	sort.Strings(additions)

	removals := make([]string, 0, len(a.Removals))
	for f := range a.Removals {
		removals = append(removals, f)
	}
	sort.Strings(removals)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%d\n", len(additions))
	for _, f := range additions {
		buf.WriteString(f)
		buf.WriteByte('\n')
		buf.WriteString(a.Additions[f])
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "%d\n", len(removals))
	for _, f := range removals {
		buf.WriteString(f)
		buf.WriteByte('\n')
	}

	return pathutil.AtomicWrite(path, buf.Bytes(), 0o644)
}

// IsEmpty reports whether there is nothing staged.
func (a *Area) IsEmpty() bool {
	return len(a.Additions) == 0 && len(a.Removals) == 0
}

// Clear drops all pending additions and removals.
func (a *Area) Clear() {
	a.Additions = map[string]string{}
	a.Removals = map[string]bool{}
}
