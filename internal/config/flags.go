package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses server configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config JSON or YAML file path with configs
//	-signing-secret master signing secret
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "168h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-blob-store blob store backend (s3|postgres|sqlite|file|memory)
//	-d blob store DSN for SQL backends
//	-f blob store directory for the file backend
//	-notifier notifier kind (log|webhook|nats)
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("budget-keeper", flag.ContinueOnError)

	var serverAddress NetAddress
	var configPath string
	var signingSecret string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var backend string
	var dsn string
	var dir string
	var notifierKind string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&configPath, "c", "", "JSON or YAML config file path")
	fs.StringVar(&configPath, "config", "", "JSON or YAML config file path (alias)")
	fs.StringVar(&signingSecret, "signing-secret", "", "Master signing secret")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 168h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&backend, "blob-store", "", "Blob store backend")
	fs.StringVar(&dsn, "d", "", "Blob store DSN")
	fs.StringVar(&dir, "f", "", "Blob store directory")
	fs.StringVar(&notifierKind, "notifier", "", "Notifier kind")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Auth: Auth{
			SigningSecret: signingSecret,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		BlobStore: BlobStore{
			Backend: backend,
			DSN:     dsn,
			Dir:     dir,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Notifier: Notifier{
			Kind: notifierKind,
		},
		ConfigFilePath: configPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host binds all interfaces; otherwise the host must be "localhost"
// or a valid IP address.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
