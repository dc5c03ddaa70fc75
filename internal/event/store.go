// Package event stores the static event description (date, venues,
// parental names, dress code) as a flat JSON document on disk. The
// document is opaque to the guest ledger: it is read and replaced
// wholesale, never interpreted field by field.
package event

import (
	"encoding/json"
	"os"
	"sync"
)

// Store guards a single JSON document file. A process-wide mutex
// serializes replacements; readers see either the old or the new
// document, never a partial write.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore returns a Store bound to the given file path. The file does
// not have to exist yet; Load returns an empty document in that case.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the current event document. A missing file yields an
// empty document rather than an error so a fresh deployment serves
// `{}` until the admin saves the event details.
func (s *Store) Load() (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Replace overwrites the whole document. The file is written to a
// temporary sibling first and renamed into place so a crash mid-write
// cannot truncate the current document.
func (s *Store) Replace(doc map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
