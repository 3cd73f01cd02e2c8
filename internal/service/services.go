package service

import (
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/store"
	"github.com/MKhiriev/go-accounts/internal/utils"
	"github.com/MKhiriev/go-accounts/internal/validators"
	"github.com/MKhiriev/go-accounts/models"
)

// Services aggregates the services consumed by the transport layer.
type Services struct {
	AccountService AccountService
	TokenService   TokenService
	AppInfoService AppInfoService
}

// NewServices wires every service over storages.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	credentials, err := NewCredentialService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating credential service: %w", err)
	}

	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	tokens := NewTokenService(cfg.App, logger)
	accounts := NewAccountService(
		storages.UserRepository,
		credentials,
		tokens,
		NewPolicy(),
		validators.NewUserValidator(),
		utils.NewUUIDGenerator(),
		logger,
	)

	return &Services{
		AccountService: accounts,
		TokenService:   tokens,
		AppInfoService: appInfo,
	}, nil
}
