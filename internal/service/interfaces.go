package service

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// CredentialService turns plaintext passwords into one-way credentials and
// checks plaintexts against them.
type CredentialService interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	// Verify reports whether plaintext matches credential. An empty
	// credential never matches, but costs as much as a real comparison.
	Verify(ctx context.Context, plaintext, credential string) bool
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(ctx context.Context, user models.User) (models.Token, error)
	Verify(ctx context.Context, token string) (models.Claims, error)
}

// Policy decides whether an actor may act on a record.
type Policy interface {
	// CanActOn reports whether actor may read, modify or delete the record
	// identified by targetID.
	CanActOn(actor models.Actor, targetID string) bool
	IsAdmin(actor models.Actor) bool
}

// AccountService implements the account lifecycle. Every operation that acts
// on behalf of a caller takes the caller explicitly as a [models.Actor].
type AccountService interface {
	Register(ctx context.Context, user models.User) (models.PublicUser, error)
	Login(ctx context.Context, credentials models.Credentials) (models.Token, error)
	ListUsers(ctx context.Context, actor models.Actor, nameFilter string) ([]models.PublicUser, error)
	GetProfile(ctx context.Context, actor models.Actor) (models.PublicUser, error)
	UpdateUser(ctx context.Context, actor models.Actor, targetID string, update models.UserUpdate) (models.PublicUser, error)
	DeleteUser(ctx context.Context, actor models.Actor, targetID string) error
	// EnsureAdmin creates an admin account with the given credentials unless
	// an account with that e-mail already exists.
	EnsureAdmin(ctx context.Context, email, password, name string) error
	// EmailTaken reports whether an account with email exists.
	EmailTaken(ctx context.Context, email string) (bool, error)
}

// AppInfoService exposes build and version information of the running
// server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
