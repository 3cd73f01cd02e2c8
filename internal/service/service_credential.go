package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
)

// dummyPassword is hashed once at construction. Verify compares against that
// hash when the caller has no credential (unknown e-mail), so both login
// failure paths spend the same time in bcrypt.
const dummyPassword = "go-accounts-timing-equaliser"

// bcryptCredentialService is the bcrypt-backed [CredentialService].
type bcryptCredentialService struct {
	cost      int
	dummyHash []byte

	logger *logger.Logger
}

// NewCredentialService constructs a [CredentialService] hashing with
// cfg.PasswordHashCost.
func NewCredentialService(cfg config.App, logger *logger.Logger) (CredentialService, error) {
	cost := cfg.PasswordHashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}

	return &bcryptCredentialService{
		cost:      cost,
		dummyHash: dummyHash,
		logger:    logger,
	}, nil
}

func (s *bcryptCredentialService) Hash(ctx context.Context, plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*bcryptCredentialService.Hash").Msg("error hashing password")
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}

	return string(hash), nil
}

func (s *bcryptCredentialService) Verify(ctx context.Context, plaintext, credential string) bool {
	if credential == "" {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(plaintext))
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
