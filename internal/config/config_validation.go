// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Default values applied by [StructuredConfig.applyDefaults].
const (
	DefaultTokenIssuer     = "budget-keeper"
	DefaultTokenDuration   = 7 * 24 * time.Hour
	DefaultHTTPAddress     = ":8080"
	DefaultRequestTimeout  = 30 * time.Second
	DefaultKDFMemoryKiB    = 64 * 1024
	DefaultKDFIterations   = 3
	DefaultKDFParallelism  = 2
	DefaultNotifierWorkers = 2
	DefaultNotifierQueue   = 64
	DefaultNATSSubject     = "budget-keeper.notifications"
	DefaultAppVersion      = "dev"

	// MinSigningSecretLength is the minimum accepted length of
	// [Auth.SigningSecret] in bytes.
	MinSigningSecretLength = 32
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Auth.TokenIssuer == "" {
		cfg.Auth.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.Auth.TokenDuration == 0 {
		cfg.Auth.TokenDuration = DefaultTokenDuration
	}

	if cfg.KDF.MemoryKiB == 0 {
		cfg.KDF.MemoryKiB = DefaultKDFMemoryKiB
	}
	if cfg.KDF.Iterations == 0 {
		cfg.KDF.Iterations = DefaultKDFIterations
	}
	if cfg.KDF.Parallelism == 0 {
		cfg.KDF.Parallelism = DefaultKDFParallelism
	}

	if cfg.BlobStore.Backend == "" {
		cfg.BlobStore.Backend = BackendMemory
	}

	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.Notifier.Kind == "" {
		cfg.Notifier.Kind = NotifierLog
	}
	if cfg.Notifier.NATSSubject == "" {
		cfg.Notifier.NATSSubject = DefaultNATSSubject
	}
	if cfg.Notifier.Workers == 0 {
		cfg.Notifier.Workers = DefaultNotifierWorkers
	}
	if cfg.Notifier.QueueSize == 0 {
		cfg.Notifier.QueueSize = DefaultNotifierQueue
	}

	if cfg.App.Version == "" {
		cfg.App.Version = DefaultAppVersion
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.Auth.SigningSecret) < MinSigningSecretLength {
		return fmt.Errorf("%w: signing secret must be at least %d bytes", ErrInvalidAuthConfigs, MinSigningSecretLength)
	}
	if cfg.Auth.TokenDuration < 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAuthConfigs)
	}

	if cfg.KDF.MemoryKiB < 8*uint32(cfg.KDF.Parallelism) {
		return fmt.Errorf("%w: memory must be at least 8 KiB per lane", ErrInvalidKDFConfigs)
	}

	switch cfg.BlobStore.Backend {
	case BackendMemory:
	case BackendFile:
		if cfg.BlobStore.Dir == "" {
			return fmt.Errorf("%w: file backend needs a directory", ErrInvalidStorageConfigs)
		}
	case BackendPostgres, BackendSQLite:
		if cfg.BlobStore.DSN == "" {
			return fmt.Errorf("%w: %s backend needs a DSN", ErrInvalidStorageConfigs, cfg.BlobStore.Backend)
		}
	case BackendS3:
		if cfg.BlobStore.S3.Bucket == "" || cfg.BlobStore.S3.Region == "" {
			return fmt.Errorf("%w: s3 backend needs bucket and region", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.BlobStore.Backend)
	}

	switch cfg.Notifier.Kind {
	case NotifierLog:
	case NotifierWebhook:
		if cfg.Notifier.WebhookURL == "" {
			return fmt.Errorf("%w: webhook notifier needs a URL", ErrInvalidNotifierConfigs)
		}
	case NotifierNATS:
		if cfg.Notifier.NATSURL == "" {
			return fmt.Errorf("%w: nats notifier needs a server URL", ErrInvalidNotifierConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidNotifierConfigs, cfg.Notifier.Kind)
	}

	if cfg.Notifier.Workers < 0 || cfg.Notifier.QueueSize < 0 {
		return fmt.Errorf("%w: workers and queue size must not be negative", ErrInvalidNotifierConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
