package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig mirrors the variables understood by the server. Unset
// variables leave the corresponding Config field untouched.
type envConfig struct {
	Port                string        `env:"PORT"`
	GRPCAddr            string        `env:"GRPC_ADDR"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	JWTSecret           string        `env:"JWT_SECRET"`
	ResetToken          string        `env:"ADMIN_RESET_TOKEN"`
	StoragePingInterval time.Duration `env:"STORAGE_PING_INTERVAL"`
	ServiceName         string        `env:"SERVICE_NAME"`
	LogLevel            string        `env:"LOG_LEVEL"`
	OTLPEndpoint        string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure        bool          `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

func parseEnv(config *Config) error {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if e.Port != "" {
		config.HTTPAddr = portAddr(e.Port)
	}
	setString(&config.GRPCAddr, e.GRPCAddr)
	setString(&config.DatabaseDSN, e.DatabaseURL)
	setString(&config.SecretKey, e.JWTSecret)
	setString(&config.ResetToken, e.ResetToken)
	setString(&config.ServiceName, e.ServiceName)
	setString(&config.LogLevel, e.LogLevel)
	setString(&config.OTLPEndpoint, e.OTLPEndpoint)
	if e.OTLPInsecure {
		config.OTLPInsecure = true
	}
	if e.StoragePingInterval > 0 {
		config.StoragePingInterval = e.StoragePingInterval
	}
	return nil
}

// portAddr turns a bare port such as "3001" into a listen address.
func portAddr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
