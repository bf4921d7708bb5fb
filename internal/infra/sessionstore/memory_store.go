package sessionstore

import (
	"sync"

	"lead_crm_client/internal/domain/session"
)

// MemoryStore keeps the session in memory only. Used by tests and by callers
// that must not persist a token to disk.
type MemoryStore struct {
	mu   sync.Mutex
	sess session.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess, nil
}

func (s *MemoryStore) Save(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = session.Session{}
	return nil
}
