package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig mirrors [StructuredConfig] for JSON and YAML files.
// Durations are written as strings such as "30s" or "168h".
type StructuredFileConfig struct {
	Auth struct {
		SigningSecret string   `json:"signing_secret" yaml:"signing_secret"`
		TokenIssuer   string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration Duration `json:"token_duration" yaml:"token_duration"`
	} `json:"auth,omitempty" yaml:"auth,omitempty"`

	KDF struct {
		MemoryKiB   uint32 `json:"memory_kib" yaml:"memory_kib"`
		Iterations  uint32 `json:"iterations" yaml:"iterations"`
		Parallelism uint8  `json:"parallelism" yaml:"parallelism"`
	} `json:"kdf,omitempty" yaml:"kdf,omitempty"`

	BlobStore struct {
		Backend string `json:"backend" yaml:"backend"`
		DSN     string `json:"dsn" yaml:"dsn"`
		Dir     string `json:"dir" yaml:"dir"`
		S3      struct {
			Bucket          string `json:"bucket" yaml:"bucket"`
			Region          string `json:"region" yaml:"region"`
			Endpoint        string `json:"endpoint" yaml:"endpoint"`
			AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
			SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
			UsePathStyle    bool   `json:"use_path_style" yaml:"use_path_style"`
		} `json:"s3,omitempty" yaml:"s3,omitempty"`
	} `json:"blob_store,omitempty" yaml:"blob_store,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server,omitempty" yaml:"server,omitempty"`

	Notifier struct {
		Kind        string `json:"kind" yaml:"kind"`
		WebhookURL  string `json:"webhook_url" yaml:"webhook_url"`
		NATSURL     string `json:"nats_url" yaml:"nats_url"`
		NATSSubject string `json:"nats_subject" yaml:"nats_subject"`
		Workers     int    `json:"workers" yaml:"workers"`
		QueueSize   int    `json:"queue_size" yaml:"queue_size"`
	} `json:"notifier,omitempty" yaml:"notifier,omitempty"`

	App struct {
		Version string `json:"version" yaml:"version"`
	} `json:"app,omitempty" yaml:"app,omitempty"`
}

// parseFile reads a JSON or YAML config file, chosen by extension.
func parseFile(path string) (*StructuredConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return parseJSON(path)
	case ".yaml", ".yml":
		return parseYAML(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var fileCfg StructuredFileConfig
	if err := json.NewDecoder(jsonFile).Decode(&fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return fileCfg.toStructured(), nil
}

func parseYAML(yamlFilePath string) (*StructuredConfig, error) {
	data, err := os.ReadFile(yamlFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a yaml file: %w", err)
	}

	var fileCfg StructuredFileConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("error decoding yaml configs: %w", err)
	}

	return fileCfg.toStructured(), nil
}

func (f *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		Auth: Auth{
			SigningSecret: f.Auth.SigningSecret,
			TokenIssuer:   f.Auth.TokenIssuer,
			TokenDuration: time.Duration(f.Auth.TokenDuration),
		},
		KDF: KDF{
			MemoryKiB:   f.KDF.MemoryKiB,
			Iterations:  f.KDF.Iterations,
			Parallelism: f.KDF.Parallelism,
		},
		BlobStore: BlobStore{
			Backend: f.BlobStore.Backend,
			DSN:     f.BlobStore.DSN,
			Dir:     f.BlobStore.Dir,
			S3: S3{
				Bucket:          f.BlobStore.S3.Bucket,
				Region:          f.BlobStore.S3.Region,
				Endpoint:        f.BlobStore.S3.Endpoint,
				AccessKeyID:     f.BlobStore.S3.AccessKeyID,
				SecretAccessKey: f.BlobStore.S3.SecretAccessKey,
				UsePathStyle:    f.BlobStore.S3.UsePathStyle,
			},
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
		},
		Notifier: Notifier{
			Kind:        f.Notifier.Kind,
			WebhookURL:  f.Notifier.WebhookURL,
			NATSURL:     f.Notifier.NATSURL,
			NATSSubject: f.Notifier.NATSSubject,
			Workers:     f.Notifier.Workers,
			QueueSize:   f.Notifier.QueueSize,
		},
		App: App{
			Version: f.App.Version,
		},
	}
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	tmp, err := time.ParseDuration(value.Value)
	if err != nil {
		return err
	}
	*d = Duration(tmp)
	return nil
}
