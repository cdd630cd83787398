package credstore

import (
	"sync"

	"github.com/boomtruck/siteapi/internal/models"
)

// MemoryStore keeps the credential in process memory. Used by tests and by
// the service layer wherever a Store is needed without an HTTP exchange.
type MemoryStore struct {
	mu   sync.Mutex
	cred models.SessionCredential
	p    Presence
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (models.SessionCredential, Presence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, s.p, nil
}

func (s *MemoryStore) Save(cred models.SessionCredential) error {
	if cred.AccessToken != "" && cred.Session.ExpiresAt.IsZero() {
		return ErrIncompleteCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.p = Presence{
		HasAccessToken:  cred.AccessToken != "",
		HasRefreshToken: cred.RefreshToken != "",
		HasUserInfo:     cred.User != (models.UserInfo{}),
		HasSessionInfo:  !cred.Session.ExpiresAt.IsZero() || !cred.Session.IssuedAt.IsZero(),
	}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = models.SessionCredential{}
	s.p = Presence{}
	return nil
}
