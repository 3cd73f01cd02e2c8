package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

// memoryUserRepository is the default [UserRepository]. It keeps users in a
// [UserStore] and serialises every compound operation with a RWMutex, so
// check-then-act sequences such as "email is free, insert" cannot interleave.
type memoryUserRepository struct {
	mu     sync.RWMutex
	store  UserStore
	logger *logger.Logger
}

// NewMemoryUserRepository constructs a [UserRepository] over store. A nil
// store is replaced by an empty one.
func NewMemoryUserRepository(store UserStore, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating in-memory user repository")
	if store == nil {
		store = NewUserStore()
	}

	return &memoryUserRepository{
		store:  store,
		logger: logger,
	}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store.FindIndexByPredicate(ByEmail(user.Email)) >= 0 {
		return models.User{}, ErrEmailAlreadyExists
	}
	if r.store.FindIndexByPredicate(ByID(user.ID)) >= 0 {
		return models.User{}, fmt.Errorf("duplicate user id %q", user.ID)
	}

	r.store.Insert(user)
	logger.FromContext(ctx).Debug().
		Str("func", "*memoryUserRepository.CreateUser").
		Str("user_id", user.ID).
		Int("users", r.store.Len()).
		Msg("user inserted")

	return user.Clone(), nil
}

func (r *memoryUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store.FindByPredicate(ByID(id))
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return user, nil
}

func (r *memoryUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.store.FindByPredicate(ByEmail(email))
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}
	return user, nil
}

func (r *memoryUserRepository) ListUsers(ctx context.Context, nameFilter string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.store.FilterByPredicate(ByName(nameFilter)), nil
}

func (r *memoryUserRepository) UpdateUser(ctx context.Context, id string, mutate func(models.User) (models.User, error)) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.store.FindIndexByPredicate(ByID(id))
	if index < 0 {
		return models.User{}, ErrNoUserWasFound
	}

	current, _ := r.store.FindByPredicate(ByID(id))
	updated, err := mutate(current.Clone())
	if err != nil {
		return models.User{}, err
	}
	updated.ID = current.ID
	updated.CreatedOn = current.CreatedOn

	if updated.Email != current.Email {
		clash := r.store.FindIndexByPredicate(func(u models.User) bool {
			return u.Email == updated.Email && u.ID != id
		})
		if clash >= 0 {
			return models.User{}, ErrEmailAlreadyExists
		}
	}

	if err = r.store.ReplaceAt(index, updated); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*memoryUserRepository.UpdateUser").
			Str("user_id", id).
			Msg("failed to replace user")
		return models.User{}, fmt.Errorf("error replacing user: %w", err)
	}

	return updated.Clone(), nil
}

func (r *memoryUserRepository) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.store.FindIndexByPredicate(ByID(id))
	if index < 0 {
		return ErrNoUserWasFound
	}

	if err := r.store.RemoveAt(index); err != nil {
		return fmt.Errorf("error removing user: %w", err)
	}
	return nil
}
