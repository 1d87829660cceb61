package web

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
)

// Config contains configuration for the web server
type Config struct {
	Host     string // Interface to bind, empty for all
	Port     int    // Server port
	CertFile string // Optional TLS certificate file
	KeyFile  string // Optional TLS private key file
	LogFile  string // Optional log file path
}

// Environment variables read by ConfigFromEnv
const (
	EnvHost    = "MEMCMP_HOST"
	EnvPort    = "MEMCMP_PORT"
	EnvLogFile = "MEMCMP_LOG_FILE"
)

// DefaultConfig returns default web configuration
func DefaultConfig() Config {
	return Config{
		Host: "localhost",
		Port: 8080,
	}
}

// ConfigFromEnv returns DefaultConfig overridden by MEMCMP_* variables
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if host, ok := os.LookupEnv(EnvHost); ok {
		cfg.Host = host
	}
	if port := os.Getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", EnvPort, port, err)
		}
		cfg.Port = p
	}
	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		cfg.LogFile = logFile
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	if (c.CertFile == "") != (c.KeyFile == "") {
		return fmt.Errorf("certificate and key files must be given together")
	}

	if c.CertFile != "" {
		if _, err := os.Stat(c.CertFile); err != nil {
			return fmt.Errorf("certificate file not found: %s", c.CertFile)
		}
		if _, err := os.Stat(c.KeyFile); err != nil {
			return fmt.Errorf("key file not found: %s", c.KeyFile)
		}
	}

	return nil
}

// Addr returns the listen address
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// TLSEnabled reports whether certificate files were configured
func (c Config) TLSEnabled() bool {
	return c.CertFile != "" && c.KeyFile != ""
}

// LoadTLSConfig creates the TLS configuration, nil when TLS is disabled
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if !c.TLSEnabled() {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(c.CertFile, c.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load server certificate: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
