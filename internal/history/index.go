package history

import (
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"vcslite/internal/commitobj"
	"vcslite/internal/objstore"
)

// Index is a derived, non-canonical secondary index over commit ids and
// messages, backed by badger. It exists purely to accelerate find and
// expand_short_id; the object store remains the source of truth, and
// every lookup here has a brute-force fallback in Walker that is always
// correct even if the index is empty, stale, or nil.
type Index struct {
	db *badger.DB
}

// OpenIndex opens (creating if absent) a badger index rooted at dir.
func OpenIndex(dir string) (*Index, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening history index: %w", err)
	}
	return &Index{db: db}, nil
}

// Close is safe to call on a nil *Index.
func (ix *Index) Close() error {
	if ix == nil || ix.db == nil {
		return nil
	}
	return ix.db.Close()
}

func commitKey(id string) []byte { return []byte("commit:" + id) }
func messageKey(message, id string) []byte {
	return []byte("msg:" + message + "\x00" + id)
}

// Record indexes one freshly written commit so later lookups don't need
// a full rebuild to see it.
func (ix *Index) Record(id, message string) error {
	if ix == nil || ix.db == nil {
		return nil
	}
	return ix.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(commitKey(id), []byte(message)); err != nil {
			return err
		}
		return txn.Set(messageKey(message, id), nil)
	})
}

// Rebuild repopulates the index from scratch by scanning every object
// in store. Safe to call at any time; the index is purely derived.
func (ix *Index) Rebuild(store *objstore.Store) error {
	if ix == nil || ix.db == nil {
		return nil
	}
	ids, err := store.All()
	if err != nil {
		return err
	}
	return ix.db.Update(func(txn *badger.Txn) error {
		for _, id := range ids {
			data, err := store.Get(id)
			if err != nil {
				continue
			}
			c, err := commitobj.Parse(data)
			if err != nil {
				continue
			}
			if err := txn.Set(commitKey(id), []byte(c.Message)); err != nil {
				return err
			}
			if err := txn.Set(messageKey(c.Message, id), nil); err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByMessage prefix-scans the message index. ok is false only when
// the index itself is unusable (nil); an empty, non-nil result means
// the index was consulted and genuinely has nothing, but callers should
// still prefer the brute-force path when len(ids) == 0 since a commit
// introduced by a remote sync may not have been recorded yet.
func (ix *Index) FindByMessage(message string) (ids []string, ok bool, err error) {
	if ix == nil || ix.db == nil {
		return nil, false, nil
	}
	prefix := []byte("msg:" + message + "\x00")
	err = ix.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

// ExpandShortID returns the first commit id (by key order) beginning
// with prefix, or ok=false if the index has none.
func (ix *Index) ExpandShortID(prefix string) (id string, ok bool, err error) {
	if ix == nil || ix.db == nil {
		return "", false, nil
	}
	key := commitKey(prefix)
	err = ix.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		it.Seek(key)
		if it.ValidForPrefix(key) {
			k := it.Item().KeyCopy(nil)
			id = strings.TrimPrefix(string(k), "commit:")
			ok = true
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return id, ok, nil
}
