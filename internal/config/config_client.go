package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL or host:port of the budget-keeper server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the top-level configuration of the command-line client.
type ClientConfig struct {
	// Adapter contains the server address and timeouts.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// SessionFile keeps the bearer token between invocations.
	// Env: SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`
}

// DefaultClientTimeout is used when no request timeout is configured.
const DefaultClientTimeout = 15 * time.Second

// GetClientConfig builds the client configuration from the environment
// (including a .env file) and the -a / -timeout flags in args. Flags win.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, nil, err
	}

	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, nil, err
	}

	fs := flag.NewFlagSet("budget-keeper-client", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	address := fs.String("a", "", "Server address (host:port or URL)")
	timeout := fs.Duration("timeout", 0, "Request timeout (e.g., 10s)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if *address != "" {
		cfg.Adapter.HTTPAddress = *address
	}
	if *timeout != 0 {
		cfg.Adapter.RequestTimeout = *timeout
	}
	if cfg.Adapter.HTTPAddress == "" {
		cfg.Adapter.HTTPAddress = "localhost" + DefaultHTTPAddress
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultClientTimeout
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = defaultSessionFile()
	}

	return cfg, fs.Args(), cfg.validate()
}

// defaultSessionFile is budget-keeper/session under the user config
// directory, or in the working directory when that is unknown.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".budget-keeper-session"
	}
	return filepath.Join(dir, "budget-keeper", "session")
}
