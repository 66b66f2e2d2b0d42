package staging

import (
	"fmt"
	"os"
	"path/filepath"

	"vcslite/internal/objstore"
	"vcslite/internal/pathutil"
	"vcslite/internal/vcserr"
)

// Add reads relPath from the working tree rooted at root, stores its
// bytes as a blob, and stages it (spec §4.3). Staging a file whose
// content already matches HEAD's tracked copy un-stages it instead of
// re-adding a no-op entry.
func Add(area *Area, store *objstore.Store, headFiles map[string]string, root, relPath string) error {
	data, err := os.ReadFile(filepath.Join(root, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return vcserr.ErrNoSuchFile()
		}
		return fmt.Errorf("reading %s: %w", relPath, err)
	}

	id, err := store.Put(data)
	if err != nil {
		return err
	}

	if headID, tracked := headFiles[relPath]; tracked && headID == id {
		delete(area.Additions, relPath)
	} else {
		area.Additions[relPath] = id
	}
	delete(area.Removals, relPath)
	return nil
}

// Rm stages relPath for removal: it drops any pending addition, and if
// HEAD tracks the file, deletes it from the working tree and records
// the removal. Rm on a file neither staged nor tracked is an error.
func Rm(area *Area, headFiles map[string]string, root, relPath string) error {
	_, staged := area.Additions[relPath]
	_, tracked := headFiles[relPath]
	if !staged && !tracked {
		return vcserr.ErrNothingToRemove()
	}

	if staged {
		delete(area.Additions, relPath)
	}
	if tracked {
		area.Removals[relPath] = true
		if err := pathutil.SafeDelete(root, filepath.Join(root, relPath)); err != nil {
			return err
		}
	}
	return nil
}
