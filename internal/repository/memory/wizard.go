package memory

import (
	"context"
	"sync"
	"time"

	"github.com/brightshield/insurance-portal/internal/core/port"
	"github.com/brightshield/insurance-portal/internal/repository"
)

// WizardStore keeps quote-wizard sessions in process memory. Used when Redis
// is not configured and in tests.
type WizardStore struct {
	mu       sync.Mutex
	sessions map[string]wizardEntry
	now      func() time.Time
}

type wizardEntry struct {
	session   port.WizardSession
	expiresAt time.Time
}

// NewWizardStore constructs an empty in-memory wizard store.
func NewWizardStore() *WizardStore {
	return &WizardStore{
		sessions: make(map[string]wizardEntry),
		now:      time.Now,
	}
}

// Put stores the session, refreshing its TTL.
func (s *WizardStore) Put(_ context.Context, session port.WizardSession, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}
	s.sessions[session.ID] = wizardEntry{session: session, expiresAt: expiresAt}
	return nil
}

// Get loads a session by id, treating expired entries as missing.
func (s *WizardStore) Get(_ context.Context, id string) (*port.WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, repository.ErrNotFound
	}
	copied := entry.session
	return &copied, nil
}

// Delete removes a session. Missing ids are not an error.
func (s *WizardStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

var _ port.WizardStore = (*WizardStore)(nil)
