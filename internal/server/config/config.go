// Package config handles configuration for the backend server: defaults,
// an optional JSON file, environment variables and command-line flags,
// applied in that order.
package config

import (
	"os"
	"time"

	"github.com/webedt/webedt/internal/logging"
	"github.com/webedt/webedt/internal/server/auth"
)

// DefaultSecretKey is the development JWT secret. The server logs a
// warning at startup while it is in use.
const DefaultSecretKey = "your-secret-key-change-in-production"

// Config holds runtime settings for the webedt backend.
//
// An empty DatabaseDSN runs the server on in-memory storage. An empty
// ResetToken disables the admin reset endpoint.
type Config struct {
	HTTPAddr              string
	GRPCAddr              string
	DatabaseDSN           string
	SecretKey             string
	ResetToken            string
	TokenValidityDuration time.Duration
	StoragePingInterval   time.Duration
	ServiceName           string
	LogLevel              string

	// OTLPEndpoint enables trace export when set.
	OTLPEndpoint string
	OTLPInsecure bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3001"
	c.GRPCAddr = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = DefaultSecretKey
	c.ResetToken = ""
	c.TokenValidityDuration = auth.TokenTTL
	c.StoragePingInterval = 30 * time.Second
	c.ServiceName = "backend"
	c.LogLevel = "info"
	c.OTLPEndpoint = ""
	c.OTLPInsecure = false
}

// UsesDefaultSecret reports whether tokens are signed with DefaultSecretKey.
func (c *Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecretKey
}

// Load builds a Config from defaults, then the JSON file named by -c or
// -config, then the environment, then flags.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args. It panics on malformed input.
func LoadConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
