package service

import (
	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/crypto"
	"github.com/MKhiriev/budget-keeper/internal/logger"
	"github.com/MKhiriev/budget-keeper/internal/store"
)

type Services struct {
	AuthService     AuthService
	TokenService    TokenService
	DocumentService DocumentService
	AppInfoService  AppInfoService
}

// NewServices wires the server-side services over storages. Notifications
// produced by forgot-password go to notifications.
func NewServices(storages *store.Storages, notifications NotificationQueue, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	keyChain := crypto.NewKeyChainService(PasswordHashParams(cfg.KDF))

	tokenService, err := NewTokenService(cfg.Auth, logger)
	if err != nil {
		return nil, err
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	documentService := NewDocumentValidationService().Wrap(
		NewDocumentService(storages.BlobStore, storages.UserRepository, keyChain, cfg.Auth, logger),
	)

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, keyChain, tokenService, notifications, cfg.Auth, logger),
		TokenService:    tokenService,
		DocumentService: documentService,
		AppInfoService:  appInfoService,
	}, nil
}

// PasswordHashParams maps the configured KDF cost onto Argon2id parameters.
// Salt and tag lengths are fixed.
func PasswordHashParams(kdf config.KDF) crypto.PasswordHashParams {
	params := crypto.DefaultPasswordHashParams()
	if kdf.MemoryKiB != 0 {
		params.Memory = kdf.MemoryKiB
	}
	if kdf.Iterations != 0 {
		params.Iterations = kdf.Iterations
	}
	if kdf.Parallelism != 0 {
		params.Parallelism = kdf.Parallelism
	}
	return params
}
