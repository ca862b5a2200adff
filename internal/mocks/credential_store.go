// Package mocks contains hand-maintained testify mocks for the domain
// interfaces.
package mocks

import (
	"context"

	"healthmate/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// CredentialStore is a mock implementation of repository.CredentialStore.
type CredentialStore struct {
	mock.Mock
}

// NewCredentialStore creates a mock with cleanup and expectation assertion
// registered on the test.
func NewCredentialStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *CredentialStore {
	m := &CredentialStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Put provides a mock function.
func (m *CredentialStore) Put(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

// Get provides a mock function.
func (m *CredentialStore) Get(ctx context.Context) (*entity.Session, error) {
	args := m.Called(ctx)

	var session *entity.Session
	if args.Get(0) != nil {
		session = args.Get(0).(*entity.Session)
	}

	return session, args.Error(1)
}

// Remove provides a mock function.
func (m *CredentialStore) Remove(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
