package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
)

func TestNewStorages_Memory(t *testing.T) {
	storages, err := NewStorages(context.Background(), config.Storage{Driver: config.StorageDriverMemory}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, storages.UserRepository)
	assert.NoError(t, storages.Close())
}

func TestNewStorages_UnknownDriver(t *testing.T) {
	_, err := NewStorages(context.Background(), config.Storage{Driver: "postgres"}, logger.Nop())
	assert.Error(t, err)
}

func TestNewStorages_SQLiteLifecycle(t *testing.T) {
	ctx := context.Background()
	storages, err := NewStorages(ctx, config.Storage{
		Driver: config.StorageDriverSQLite,
		DB:     config.DB{DSN: config.DefaultSQLiteDSN},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, storages.Close()) })

	repo := storages.UserRepository
	created := time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC)

	alice, err := repo.CreateUser(ctx, models.User{
		ID:        "u-alice",
		Email:     "alice@example.com",
		Name:      "Alice",
		Password:  "$2a$10$hash",
		CreatedOn: created,
		UpdatedOn: created,
		Extra:     map[string]any{"team": "core", "age": float64(31)},
	})
	require.NoError(t, err)
	assert.Equal(t, "u-alice", alice.ID)

	_, err = repo.CreateUser(ctx, models.User{ID: "u-bob", Email: "bob@example.com", Name: "Bob", Password: "h", CreatedOn: created, UpdatedOn: created})
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, models.User{ID: "u-dup", Email: "alice@example.com", Password: "h", CreatedOn: created, UpdatedOn: created})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	found, err := repo.FindUserByID(ctx, "u-alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", found.Email)
	assert.Equal(t, "$2a$10$hash", found.Password)
	assert.False(t, found.IsAdm)
	assert.True(t, created.Equal(found.CreatedOn), "DATETIME column scans back to the stored instant")
	assert.True(t, created.Equal(found.UpdatedOn))
	assert.Equal(t, map[string]any{"team": "core", "age": float64(31)}, found.Extra)

	named, err := repo.ListUsers(ctx, "Bob")
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "u-bob", named[0].ID)

	later := created.Add(time.Hour)
	updated, err := repo.UpdateUser(ctx, "u-bob", func(u models.User) (models.User, error) {
		u.Name = "Robert"
		u.IsAdm = true
		u.UpdatedOn = later
		return u, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)

	stored, err := repo.FindUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Robert", stored.Name)
	assert.True(t, stored.IsAdm)
	assert.True(t, later.Equal(stored.UpdatedOn))
	assert.True(t, created.Equal(stored.CreatedOn))

	require.NoError(t, repo.DeleteUser(ctx, "u-alice"))
	assert.ErrorIs(t, repo.DeleteUser(ctx, "u-alice"), ErrNoUserWasFound)

	all, err := repo.ListUsers(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "u-bob", all[0].ID)
}
