package repo

import "vcslite/internal/history"

// Log returns HEAD's first-parent chain, most recent first.
func (r *Repository) Log() ([]history.LogEntry, error) {
	_, headID, _, err := r.loadHead()
	if err != nil {
		return nil, err
	}
	return r.Walker().Log(headID)
}

// GlobalLog returns every commit in the object store.
func (r *Repository) GlobalLog() ([]history.LogEntry, error) {
	return r.Walker().GlobalLog()
}

// Find returns every commit id whose message matches exactly.
func (r *Repository) Find(message string) ([]string, error) {
	return r.Walker().Find(message)
}
