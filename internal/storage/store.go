// Package storage keeps the ordered list of named shared secrets and persists
// every change through a Persister.
package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/atinyakov/SteamGuardKeeper/internal/clock"
	"github.com/atinyakov/SteamGuardKeeper/internal/guard"
	"github.com/atinyakov/SteamGuardKeeper/internal/models"
	"go.uber.org/zap"
)

// ErrInvalidSecret is returned by Add when no code can be generated from the
// shared secret.
var ErrInvalidSecret = errors.New("invalid shared secret")

// Persister loads and saves the complete secret list.
type Persister interface {
	Load(ctx context.Context) ([]models.Secret, error)
	Save(ctx context.Context, secrets []models.Secret) error
}

// SecretStore owns the in-memory secret list. All operations are serialized
// by a single mutex, so read-modify-persist is atomic within the process.
type SecretStore struct {
	mu        sync.Mutex
	secrets   []models.Secret
	persister Persister
	clock     clock.Clocker
	log       *zap.Logger
}

// New creates a store and loads the persisted list. A load failure is logged
// and leaves the store empty.
func New(ctx context.Context, p Persister, clk clock.Clocker, log *zap.Logger) *SecretStore {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SecretStore{persister: p, clock: clk, log: log}

	secrets, err := p.Load(ctx)
	if err != nil {
		log.Warn("failed to load secrets, starting with an empty list", zap.Error(err))
		secrets = nil
	}
	s.secrets = secrets
	log.Debug("secrets loaded", zap.Int("count", len(secrets)))
	return s
}

// List returns a copy of the stored secrets in insertion order.
func (s *SecretStore) List() []models.Secret {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Add validates sharedSecret by generating a code for the current time,
// appends the secret and persists the list. The secret is stored as given,
// without normalization.
func (s *SecretStore) Add(ctx context.Context, name, sharedSecret string) ([]models.Secret, error) {
	if _, err := guard.GenerateCode(sharedSecret, s.clock.NowSeconds()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSecret, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.secrets
	s.secrets = append(slices.Clip(prev), models.Secret{Name: name, SharedSecret: sharedSecret})
	if err := s.persister.Save(ctx, s.secrets); err != nil {
		s.secrets = prev
		s.log.Error("failed to save secrets", zap.Error(err))
		return nil, fmt.Errorf("save secrets: %w", err)
	}

	s.log.Info("secret added", zap.String("name", name), zap.Int("count", len(s.secrets)))
	return s.snapshot(), nil
}

// Delete removes the secret at index and persists the list. An out of range
// index is not an error: the list is returned unchanged and nothing is saved.
func (s *SecretStore) Delete(ctx context.Context, index uint64) ([]models.Secret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index >= uint64(len(s.secrets)) {
		return s.snapshot(), nil
	}

	prev := s.secrets
	s.secrets = slices.Delete(slices.Clone(prev), int(index), int(index)+1)
	if err := s.persister.Save(ctx, s.secrets); err != nil {
		s.secrets = prev
		s.log.Error("failed to save secrets", zap.Error(err))
		return nil, fmt.Errorf("save secrets: %w", err)
	}

	s.log.Info("secret deleted", zap.Uint64("index", index), zap.Int("count", len(s.secrets)))
	return s.snapshot(), nil
}

func (s *SecretStore) snapshot() []models.Secret {
	out := make([]models.Secret, len(s.secrets))
	copy(out, s.secrets)
	return out
}
