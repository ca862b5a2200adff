// Package cookiestore contains the concrete implementations of the
// credential slot. The durable variant keeps the session cookie in a sqlite
// database inside the application profile, the way desktop shells persist
// profile cookies.
package cookiestore

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"healthmate/config"
	"healthmate/internal/domain/entity"
	"healthmate/internal/domain/repository"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// cookieRecord is the persistence model for one named cookie.
type cookieRecord struct {
	Name      string    `gorm:"primaryKey;column:name"`
	Value     string    `gorm:"column:value"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the default table name.
func (cookieRecord) TableName() string {
	return "cookies"
}

// Store implements repository.CredentialStore on a sqlite-backed cookie jar.
type Store struct {
	db         *gorm.DB
	cipher     *recordCipher
	name       string
	legacyName string
	ttl        time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// New opens the profile cookie database and prepares the credential slot.
func New(params Params) (repository.CredentialStore, error) {
	path := params.Config.Session.StorePath
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create profile directory")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		// Single-slot writes do not need per-statement transactions.
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open cookie database")
	}

	if err := db.AutoMigrate(&cookieRecord{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate cookie schema")
	}

	cipher, err := newRecordCipher(params.Config.Session.EncryptionSecret)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:         db,
		cipher:     cipher,
		name:       params.Config.Session.CookieName,
		legacyName: params.Config.Session.LegacyCookieName,
		ttl:        params.Config.Session.TTL,
		logger:     params.Logger,
		now:        time.Now,
	}, nil
}

// Put overwrites the session record under the canonical cookie name.
func (s *Store) Put(ctx context.Context, session *entity.Session) error {
	if !session.Valid() {
		return errors.Wrap(repository.ErrInvalidSessionData, "session is missing an access token")
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "failed to serialize session")
	}

	value, err := s.cipher.seal(raw)
	if err != nil {
		return errors.Wrap(err, "failed to seal session value")
	}

	record := &cookieRecord{
		Name:      s.name,
		Value:     value,
		ExpiresAt: s.now().Add(s.ttl),
		UpdatedAt: s.now(),
	}

	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return errors.Wrap(err, "failed to store session cookie")
	}
	s.logger.Info("Session cookie stored", slog.String("name", s.name))

	return nil
}

// Get returns the current session record, reading the legacy cookie name
// when the canonical one is absent.
func (s *Store) Get(ctx context.Context) (*entity.Session, error) {
	record, err := s.lookup(ctx, s.name)
	if errors.Is(err, repository.ErrSessionNotFound) && s.legacyName != "" {
		record, err = s.lookup(ctx, s.legacyName)
	}
	if err != nil {
		return nil, err
	}

	raw, err := s.cipher.open(record.Value)
	if err != nil {
		s.logger.Error("Failed to unseal session cookie", slog.Any("error", err))

		return nil, errors.Wrap(repository.ErrInvalidSessionData, "failed to unseal session value")
	}

	session := &entity.Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, errors.Wrap(repository.ErrInvalidSessionData, "failed to parse session value")
	}
	if !session.Valid() {
		return nil, errors.Wrap(repository.ErrInvalidSessionData, "session is missing an access token")
	}

	return session, nil
}

func (s *Store) lookup(ctx context.Context, name string) (*cookieRecord, error) {
	record := &cookieRecord{}
	err := s.db.WithContext(ctx).First(record, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session cookie")
	}

	// Expired records are treated as absent and cleaned up opportunistically.
	if s.now().After(record.ExpiresAt) {
		if err := s.db.WithContext(ctx).Delete(&cookieRecord{}, "name = ?", name).Error; err != nil {
			s.logger.Warn("Failed to delete expired session cookie", slog.Any("error", err))
		}

		return nil, repository.ErrSessionNotFound
	}

	return record, nil
}

// Remove deletes both the canonical and legacy records. Deleting an absent
// record succeeds.
func (s *Store) Remove(ctx context.Context) error {
	names := []string{s.name}
	if s.legacyName != "" {
		names = append(names, s.legacyName)
	}

	if err := s.db.WithContext(ctx).Delete(&cookieRecord{}, "name IN ?", names).Error; err != nil {
		return errors.Wrap(err, "failed to remove session cookie")
	}

	return nil
}
