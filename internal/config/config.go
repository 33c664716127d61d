// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// budget-keeper server. It aggregates all sub-configurations and is populated
// by merging values from a .env file, environment variables, command-line
// flags, and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Auth holds the signing secret and bearer token parameters.
	Auth Auth

	// KDF holds the Argon2id cost parameters for password and Recovery Key
	// hashes.
	KDF KDF `envPrefix:"KDF_"`

	// BlobStore selects and configures the object store that keeps user
	// records and encrypted documents.
	BlobStore BlobStore `envPrefix:"BLOB_STORE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Notifier configures delivery of forgot-password notifications.
	Notifier Notifier `envPrefix:"NOTIFIER_"`

	// App holds application metadata.
	App App `envPrefix:"APP_"`

	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. The format is chosen by extension (.json, .yaml, .yml).
	// Populated via the CONFIG environment variable or the -c / -config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// Auth holds the server-wide secret and token lifecycle settings.
type Auth struct {
	// SigningSecret is the master secret. Bearer tokens are signed with a key
	// derived from it and every user's server-wrapped DEK is wrapped under a
	// key derived from it, so leaking it exposes every document.
	// Env: SIGNING_SECRET
	SigningSecret string `env:"SIGNING_SECRET"`

	// TokenIssuer is the "iss" claim embedded in every issued token and
	// checked on every authenticated request.
	// Env: TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a bearer token remains valid.
	// Env: TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// KDF holds Argon2id cost parameters. Zero values fall back to defaults.
type KDF struct {
	// Env: KDF_MEMORY_KIB
	MemoryKiB uint32 `env:"MEMORY_KIB"`
	// Env: KDF_ITERATIONS
	Iterations uint32 `env:"ITERATIONS"`
	// Env: KDF_PARALLELISM
	Parallelism uint8 `env:"PARALLELISM"`
}

// Blob store backend names accepted by [BlobStore.Backend].
const (
	BackendS3       = "s3"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendFile     = "file"
	BackendMemory   = "memory"
)

// BlobStore configures the object store backend.
type BlobStore struct {
	// Backend is one of s3, postgres, sqlite, file or memory.
	// Env: BLOB_STORE_BACKEND
	Backend string `env:"BACKEND"`

	// DSN is the SQL connection string for the postgres and sqlite backends.
	// Env: BLOB_STORE_DSN
	DSN string `env:"DSN"`

	// Dir is the root directory of the file backend.
	// Env: BLOB_STORE_DIR
	Dir string `env:"DIR"`

	// S3 holds the settings of the s3 backend.
	S3 S3 `envPrefix:"S3_"`
}

// S3 configures an S3-compatible bucket. Endpoint and UsePathStyle make it
// work against MinIO and other self-hosted stores.
type S3 struct {
	// Env: BLOB_STORE_S3_BUCKET
	Bucket string `env:"BUCKET"`
	// Env: BLOB_STORE_S3_REGION
	Region string `env:"REGION"`
	// Env: BLOB_STORE_S3_ENDPOINT
	Endpoint string `env:"ENDPOINT"`
	// Env: BLOB_STORE_S3_ACCESS_KEY_ID
	AccessKeyID string `env:"ACCESS_KEY_ID"`
	// Env: BLOB_STORE_S3_SECRET_ACCESS_KEY
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	// Env: BLOB_STORE_S3_USE_PATH_STYLE
	UsePathStyle bool `env:"USE_PATH_STYLE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Notifier kinds accepted by [Notifier.Kind].
const (
	NotifierLog     = "log"
	NotifierWebhook = "webhook"
	NotifierNATS    = "nats"
)

// Notifier configures the forgot-password notification channel and the
// worker pool that drives it.
type Notifier struct {
	// Kind is one of log, webhook or nats.
	// Env: NOTIFIER_KIND
	Kind string `env:"KIND"`
	// Env: NOTIFIER_WEBHOOK_URL
	WebhookURL string `env:"WEBHOOK_URL"`
	// Env: NOTIFIER_NATS_URL
	NATSURL string `env:"NATS_URL"`
	// Env: NOTIFIER_NATS_SUBJECT
	NATSSubject string `env:"NATS_SUBJECT"`
	// Workers is the number of goroutines delivering notifications.
	// Env: NOTIFIER_WORKERS
	Workers int `env:"WORKERS"`
	// QueueSize bounds the number of pending notifications.
	// Env: NOTIFIER_QUEUE_SIZE
	QueueSize int `env:"QUEUE_SIZE"`
}

// App holds application metadata.
type App struct {
	// Version is reported by GET /version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. .env file in the working directory (if present)
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or YAML file (path resolved from sources 1-3)
//
// Defaults are applied to every field still empty after merging.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(os.Args[1:]).
		withFile().
		build()
}
