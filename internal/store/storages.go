package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
)

// Storages aggregates the repositories used by the service layer together
// with the resources that back them.
type Storages struct {
	UserRepository UserRepository

	db *DB
}

// NewStorages builds the repositories for the configured storage driver.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	switch cfg.Driver {
	case "", config.StorageDriverMemory:
		return &Storages{
			UserRepository: NewMemoryUserRepository(NewUserStore(), log),
		}, nil
	case config.StorageDriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("error connecting sqlite storage: %w", err)
		}
		return &Storages{
			UserRepository: NewSQLUserRepository(db, log),
			db:             db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Close releases the database connection, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
