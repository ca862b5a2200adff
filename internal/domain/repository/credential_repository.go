// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"

	"healthmate/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for the credential slot.
var (
	// ErrSessionNotFound is returned when no session record is stored.
	ErrSessionNotFound = errors.New("session record not found")
	// ErrInvalidSessionData is returned when a stored or incoming record
	// cannot be used: malformed JSON or a missing access token. The whole
	// record is treated as invalid (fail closed).
	ErrInvalidSessionData = errors.New("invalid session data")
)

// CredentialStore is the single-slot durable storage for the session record,
// scoped to the application's browsing profile. The request gateway re-reads
// it on every call, so implementations must reflect the latest write.
type CredentialStore interface {
	// Put serializes and stores the record under the configured cookie
	// name, overwriting any prior record. Records without an access token
	// are rejected with ErrInvalidSessionData.
	Put(ctx context.Context, session *entity.Session) error

	// Get returns the current record, or ErrSessionNotFound when absent
	// or expired. Token freshness beyond the record's own TTL is the
	// caller's responsibility.
	Get(ctx context.Context) (*entity.Session, error)

	// Remove deletes the record unconditionally. Removing an absent
	// record is not an error.
	Remove(ctx context.Context) error
}
