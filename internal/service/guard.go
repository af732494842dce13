// Package service implements the command surface a host application binds
// to: current time, code generation and secret management.
package service

import (
	"context"

	"github.com/atinyakov/SteamGuardKeeper/internal/clock"
	"github.com/atinyakov/SteamGuardKeeper/internal/guard"
	"github.com/atinyakov/SteamGuardKeeper/internal/models"
	"github.com/samber/lo"
)

// SecretStore defines the storage operations required by GuardService.
type SecretStore interface {
	// List returns the stored secrets in insertion order.
	List() []models.Secret
	// Add validates and appends a secret, returning the updated list.
	Add(ctx context.Context, name, sharedSecret string) ([]models.Secret, error)
	// Delete removes the secret at index if it exists, returning the updated list.
	Delete(ctx context.Context, index uint64) ([]models.Secret, error)
}

// GuardService binds code generation to the secret store and clock.
type GuardService struct {
	store SecretStore
	clock clock.Clocker
}

// NewGuardService constructs a GuardService.
func NewGuardService(store SecretStore, clk clock.Clocker) *GuardService {
	return &GuardService{store: store, clock: clk}
}

// CurrentTime returns the current Unix time in seconds.
func (s *GuardService) CurrentTime() uint64 {
	return s.clock.NowSeconds()
}

// GenerateCode returns the code for sharedSecret at the given time, or at the
// current time when at is nil.
func (s *GuardService) GenerateCode(sharedSecret string, at *uint64) (string, error) {
	return guard.GenerateCode(sharedSecret, s.timeOrNow(at))
}

// Secrets returns all stored secrets.
func (s *GuardService) Secrets() []models.Secret {
	return s.store.List()
}

// AddSecret stores a secret after checking that it produces a code.
func (s *GuardService) AddSecret(ctx context.Context, name, sharedSecret string) ([]models.Secret, error) {
	return s.store.Add(ctx, name, sharedSecret)
}

// ImportURI converts the secret of an otpauth URI and stores it under name.
func (s *GuardService) ImportURI(ctx context.Context, name, uri string) ([]models.Secret, error) {
	sharedSecret, err := guard.SecretFromURI(uri)
	if err != nil {
		return nil, err
	}
	return s.store.Add(ctx, name, sharedSecret)
}

// DeleteSecret removes the secret at index. Out of range indexes are ignored.
func (s *GuardService) DeleteSecret(ctx context.Context, index uint64) ([]models.Secret, error) {
	return s.store.Delete(ctx, index)
}

// Codes returns the current code of every stored secret. A secret that fails
// to produce a code carries the error message instead.
func (s *GuardService) Codes() []models.AccountCode {
	now := s.clock.NowSeconds()
	remaining := guard.SecondsRemaining(now)

	return lo.Map(s.store.List(), func(sec models.Secret, i int) models.AccountCode {
		ac := models.AccountCode{Index: i, Name: sec.Name, Remaining: remaining}
		code, err := guard.GenerateCode(sec.SharedSecret, now)
		if err != nil {
			ac.Error = err.Error()
			return ac
		}
		ac.Code = code
		return ac
	})
}

func (s *GuardService) timeOrNow(at *uint64) uint64 {
	if at != nil {
		return *at
	}
	return s.clock.NowSeconds()
}
