package storage

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
)

// Store is a mutex-guarded JSON document persisted to a single file.
// Writes go through a temp file and an atomic rename so a crash never
// leaves a half-written document. Top-level keys hold raw JSON the
// caller decodes into its own shape; this keeps one store usable for
// both the couples ledger and the leaderboard.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

// Open loads the document at path, creating an empty one when the file
// does not exist. A corrupt document is logged and replaced with an
// empty one rather than taking the service down.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", path, err)
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		log.Printf("[storage] %s is corrupt, starting empty: %v", path, err)
		s.data = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Get decodes the value under key into v. The bool reports whether the
// key exists.
func (s *Store) Get(key string, v any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// Set stores v under key and persists the document.
func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.save()
}

// Delete removes key and persists the document. Deleting a missing key
// is a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// save writes the document atomically. Caller holds s.mu.
func (s *Store) save() error {
	raw, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
