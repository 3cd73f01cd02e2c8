package store

import (
	"context"

	"github.com/MKhiriev/go-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserStore is an ordered, process-lifetime collection of user records with
// predicate-based access. Records keep their insertion order.
//
// Implementations are not safe for concurrent use: callers serialise
// compound operations themselves (see the memory [UserRepository]).
type UserStore interface {
	// FindByPredicate returns the first record satisfying pred.
	FindByPredicate(pred func(models.User) bool) (models.User, bool)
	// FindIndexByPredicate returns the position of the first record satisfying
	// pred, or -1 if there is none.
	FindIndexByPredicate(pred func(models.User) bool) int
	// FilterByPredicate returns every record satisfying pred, in store order.
	FilterByPredicate(pred func(models.User) bool) []models.User
	// Insert appends a record at the end of the store.
	Insert(user models.User)
	// ReplaceAt replaces the record at index.
	ReplaceAt(index int, user models.User) error
	// RemoveAt removes the record at index, shifting later records down.
	RemoveAt(index int) error
	// Len reports the number of records.
	Len() int
}

// UserRepository is the storage contract used by the account service. Every
// method is atomic with respect to other calls on the same repository.
type UserRepository interface {
	// CreateUser inserts user. It fails with [ErrEmailAlreadyExists] when the
	// e-mail is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByID returns the record with the given identifier or
	// [ErrNoUserWasFound].
	FindUserByID(ctx context.Context, id string) (models.User, error)
	// FindUserByEmail returns the record with the given e-mail or
	// [ErrNoUserWasFound].
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	// ListUsers returns all records, or only those whose name equals
	// nameFilter when it is not empty.
	ListUsers(ctx context.Context, nameFilter string) ([]models.User, error)
	// UpdateUser applies mutate to the stored record and saves the result.
	// The identifier and creation time cannot be changed by mutate.
	UpdateUser(ctx context.Context, id string, mutate func(models.User) (models.User, error)) (models.User, error)
	// DeleteUser removes the record or fails with [ErrNoUserWasFound].
	DeleteUser(ctx context.Context, id string) error
}
