// Package kvstore implements the on-device persistent key-value store used
// for notification settings and platform state. Values are plain strings,
// kept in a single JSON file in the data directory and rewritten atomically
// on every mutation.
package kvstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"selah/internal/fsutil"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	storeFile = "store.json"
)

// Store is a file-backed string key-value store. All methods are safe for
// concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// Open loads the store file from dataDir, creating the directory and an
// empty store on first run. A corrupt store file is backed up and replaced
// with an empty one rather than failing the open.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{
		path: filepath.Join(dataDir, storeFile),
		data: make(map[string]string),
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		// Keep the unreadable file around for inspection and start fresh.
		fsutil.BestEffortBackup(s.path, dataFilePerm)
		s.data = make(map[string]string)
	}
	return s, nil
}

// Get returns the value stored under key and whether it exists.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores value under key and persists the store.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flush()
}

// Remove deletes key and persists the store. Removing a missing key is a
// no-op.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.flush()
}

// MultiRemove deletes all given keys in one write.
func (s *Store) MultiRemove(keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.flush()
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// flush writes the current map to disk. Callers must hold s.mu.
func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	if err := fsutil.WriteFileAtomic(s.path, raw, dataFilePerm); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}
