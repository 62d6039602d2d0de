package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Record is the durable credential pair. Token and User are always written
// together; a record with one but not the other never exists in storage.
type Record struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store persists the credential record across restarts. Implementations must
// guarantee that Set is atomic with respect to the whole record and that
// Clear also removes the remember-me flag.
type Store interface {
	Get() (Record, bool, error)
	Set(Record) error
	Clear() error
	SetRememberMe(bool) error
	RememberMe() (bool, error)
}

const (
	recordFileName   = "session.json"
	rememberFileName = "remember_me"
)

// FileStore keeps the record as a JSON file inside a directory, written via
// temp-file rename so a crash mid-write can never leave a torn record.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("session store directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) recordPath() string   { return filepath.Join(s.dir, recordFileName) }
func (s *FileStore) rememberPath() string { return filepath.Join(s.dir, rememberFileName) }

// Get reads the last written record. A missing file is not an error.
func (s *FileStore) Get() (Record, bool, error) {
	data, err := os.ReadFile(s.recordPath())
	if os.IsNotExist(err) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("read session record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("decode session record: %w", err)
	}
	if rec.Token == "" {
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Set writes the record atomically, replacing any previous one.
func (s *FileStore) Set(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	return s.writeFile(s.recordPath(), data)
}

// Clear removes the record and the remember-me flag. Clearing an empty store
// is a no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.recordPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session record: %w", err)
	}
	if err := os.Remove(s.rememberPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear remember-me flag: %w", err)
	}
	return nil
}

// SetRememberMe persists the preference flag. The flag is stored but never
// interpreted by this package; token lifetime is the backend's concern.
func (s *FileStore) SetRememberMe(v bool) error {
	if !v {
		if err := os.Remove(s.rememberPath()); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	return s.writeFile(s.rememberPath(), []byte("1"))
}

// RememberMe reports the stored preference flag.
func (s *FileStore) RememberMe() (bool, error) {
	_, err := os.Stat(s.rememberPath())
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp record: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace record: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store for tests and embedded hosts.
type MemoryStore struct {
	mu       sync.RWMutex
	rec      Record
	present  bool
	remember bool
}

// NewMemoryStore builds an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return Record{}, false, nil
	}
	return s.rec, true, nil
}

func (s *MemoryStore) Set(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec
	s.present = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = Record{}
	s.present = false
	s.remember = false
	return nil
}

func (s *MemoryStore) SetRememberMe(v bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remember = v
	return nil
}

func (s *MemoryStore) RememberMe() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remember, nil
}
