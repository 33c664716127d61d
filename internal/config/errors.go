package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAuthConfigs indicates a missing or too short signing secret
	// or a bad token lifetime.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidKDFConfigs indicates Argon2id parameters the library rejects.
	ErrInvalidKDFConfigs = errors.New("invalid kdf configuration")
	// ErrInvalidStorageConfigs indicates an unknown blob store backend or
	// missing backend settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidNotifierConfigs indicates an unknown notifier kind or
	// missing notifier settings.
	ErrInvalidNotifierConfigs = errors.New("invalid notifier configuration")
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing server address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrUnsupportedConfigFile is returned for a config file whose extension
	// is neither .json nor .yaml/.yml.
	ErrUnsupportedConfigFile = errors.New("unsupported config file format")
)
