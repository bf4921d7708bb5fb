// internal/infra/sessionstore/file_store.go
package sessionstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"lead_crm_client/internal/domain/session"
	"lead_crm_client/internal/domain/user"
)

// FileStore persists the session as a small JSON file, the client's analog
// of browser local storage. Reads and writes are serialized; the file is
// written with owner-only permissions since it holds the bearer token.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type sessionFile struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (s *FileStore) Load() (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Session{}, nil // no persisted session yet
		}
		return session.Session{}, fmt.Errorf("error reading session file: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return session.Session{}, fmt.Errorf("error parsing session file: %w", err)
	}
	return session.Session{Token: f.Token, Role: user.Role(f.Role)}, nil
}

func (s *FileStore) Save(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(sessionFile{Token: sess.Token, Role: string(sess.Role)})
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing session file: %w", err)
	}
	return nil
}
