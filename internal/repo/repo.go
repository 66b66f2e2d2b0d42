// Package repo is the composition root: it wires the object store, ref
// store, staging area, and history index together for one working
// directory and exposes one method per CLI operation. The algorithms
// themselves live in their own packages (commitobj, worktree, merge,
// status, remote); Repository only owns the concrete paths and hands
// each package the pieces of state it needs. Modeled on the teacher's
// parcel.Parcel, trading its single god-object delegation for a set of
// small, independently testable packages.
package repo

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"vcslite/internal/commitobj"
	"vcslite/internal/history"
	"vcslite/internal/logging"
	"vcslite/internal/objstore"
	"vcslite/internal/pathutil"
	"vcslite/internal/refs"
	"vcslite/internal/staging"
	"vcslite/internal/vcserr"
)

const defaultBranch = "master"

// Repository is the live handle a CLI command operates through.
type Repository struct {
	WorkDir   string
	RepoDir   string
	Objects   *objstore.Store
	Refs      *refs.Store
	StagePath string
	Index     *history.Index
	Logger    *logging.Logger
}

func subtreePath(workDir, repoDirName string) string {
	return filepath.Join(workDir, repoDirName)
}

// Exists reports whether workDir already holds a repo subtree named
// repoDirName.
func Exists(workDir, repoDirName string) bool {
	_, err := os.Stat(subtreePath(workDir, repoDirName))
	return err == nil
}

func open(workDir, repoDirName string, logger *logging.Logger) (*Repository, error) {
	repoDir := subtreePath(workDir, repoDirName)
	objects, err := objstore.Open(filepath.Join(repoDir, "objects"))
	if err != nil {
		return nil, err
	}
	index, err := history.OpenIndex(filepath.Join(repoDir, "index"))
	if err != nil {
		return nil, err
	}
	return &Repository{
		WorkDir:   workDir,
		RepoDir:   repoDir,
		Objects:   objects,
		Refs:      refs.Open(repoDir),
		StagePath: filepath.Join(repoDir, "STAGING"),
		Index:     index,
		Logger:    logger,
	}, nil
}

// Init lays down a brand-new repository under workDir: the object
// store, the ref namespace, HEAD pointing at "master", and the
// canonical initial commit (spec §4.4/§6).
func Init(workDir, repoDirName string, logger *logging.Logger) (*Repository, error) {
	if Exists(workDir, repoDirName) {
		return nil, vcserr.ErrAlreadyInitialized()
	}

	r, err := open(workDir, repoDirName, logger)
	if err != nil {
		return nil, err
	}

	initial := commitobj.InitialCommit()
	id, err := r.Objects.Put(initial.Serialize())
	if err != nil {
		return nil, err
	}
	if err := r.Refs.SetBranch(defaultBranch, id); err != nil {
		return nil, err
	}
	if err := r.Refs.SetHead(defaultBranch); err != nil {
		return nil, err
	}
	if err := r.Index.Record(id, initial.Message); err != nil {
		return nil, err
	}
	if err := staging.New().Save(r.StagePath); err != nil {
		return nil, err
	}
	return r, nil
}

// Open loads an existing repository rooted at workDir.
func Open(workDir, repoDirName string, logger *logging.Logger) (*Repository, error) {
	if !Exists(workDir, repoDirName) {
		return nil, fmt.Errorf("not a vcslite repository: %s", workDir)
	}
	return open(workDir, repoDirName, logger)
}

// Close releases resources held by the repository's derived index.
func (r *Repository) Close() error {
	return r.Index.Close()
}

// loadHead returns the current branch name, its tip commit id, and the
// decoded tip commit.
func (r *Repository) loadHead() (branch, id string, commit *commitobj.Commit, err error) {
	branch, err = r.Refs.CurrentBranch()
	if err != nil {
		return "", "", nil, err
	}
	id, err = r.Refs.GetBranch(branch)
	if err != nil {
		return "", "", nil, err
	}
	commit, err = r.commitAt(id)
	if err != nil {
		return "", "", nil, err
	}
	return branch, id, commit, nil
}

func (r *Repository) commitAt(id string) (*commitobj.Commit, error) {
	data, err := r.Objects.Get(id)
	if err != nil {
		return nil, err
	}
	return commitobj.Parse(data)
}

// Walker returns a history.Walker bound to this repository's store and
// index.
func (r *Repository) Walker() *history.Walker {
	return history.New(r.Objects, r.Index)
}

// resolveCommit expands a possibly-abbreviated commit id against the
// object store and decodes it, returning NoSuchCommit if it can't be
// resolved.
func (r *Repository) resolveCommit(shortOrFull string) (string, *commitobj.Commit, error) {
	full, ok, err := r.Walker().ExpandShortID(shortOrFull)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, vcserr.ErrNoSuchCommit()
	}
	c, err := r.commitAt(full)
	if err != nil {
		return "", nil, vcserr.ErrNoSuchCommit()
	}
	return full, c, nil
}

// listWorkingFiles walks the working tree (excluding the repo subtree
// itself) and returns filename -> sha1(content) for every present
// file. Blob ids are sha1 too, so this hash is directly comparable to a
// blob id without reading the blob back.
func (r *Repository) listWorkingFiles() (map[string]string, error) {
	out := map[string]string{}
	err := filepath.WalkDir(r.WorkDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == r.RepoDir {
			return fs.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.WorkDir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = pathutil.Sha1Hex(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking working tree: %w", err)
	}
	return out, nil
}
