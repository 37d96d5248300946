package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/webedt/webedt/internal/flagx"
	"github.com/webedt/webedt/internal/timex"
)

// JSONConfig is the on-disk shape of the config file. Durations accept
// either a string such as "30s" or integer nanoseconds. Absent fields keep
// their previous value.
type JSONConfig struct {
	HTTPAddr              string         `json:"http_addr"`
	GRPCAddr              string         `json:"grpc_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	ResetToken            string         `json:"reset_token"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	StoragePingInterval   timex.Duration `json:"storage_ping_interval"`
	ServiceName           string         `json:"service_name"`
	LogLevel              string         `json:"log_level"`
}

func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.ResetToken, c.ResetToken)
	setString(&config.ServiceName, c.ServiceName)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.StoragePingInterval.Duration > 0 {
		config.StoragePingInterval = c.StoragePingInterval.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
