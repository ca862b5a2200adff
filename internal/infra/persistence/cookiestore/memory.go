package cookiestore

import (
	"context"
	"sync"
	"time"

	"healthmate/internal/domain/entity"
	"healthmate/internal/domain/repository"

	"github.com/pkg/errors"
)

// Memory is an in-memory credential slot for tests and ephemeral profiles.
type Memory struct {
	mu      sync.Mutex
	session *entity.Session
	expiry  time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory returns a credential store that keeps the record in memory.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl: ttl,
		now: time.Now,
	}
}

// Put stores a copy of the session record.
func (m *Memory) Put(_ context.Context, session *entity.Session) error {
	if !session.Valid() {
		return errors.Wrap(repository.ErrInvalidSessionData, "session is missing an access token")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *session
	m.session = &copied
	m.expiry = m.now().Add(m.ttl)

	return nil
}

// Get returns a copy of the stored record.
func (m *Memory) Get(_ context.Context) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil || m.now().After(m.expiry) {
		m.session = nil

		return nil, repository.ErrSessionNotFound
	}

	copied := *m.session

	return &copied, nil
}

// Remove clears the slot. Clearing an empty slot succeeds.
func (m *Memory) Remove(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil

	return nil
}
