package config

import (
	"flag"
	"io"

	"github.com/webedt/webedt/internal/flagx"
)

// parseFlags overlays command-line flags.
//
//	-a string     HTTP listen address (":3001")
//	-g string     gRPC health listen address (":50051")
//	-d string     PostgreSQL DSN; empty runs on memory
//	-s string     JWT HMAC secret
//	-r string     admin reset token
//	-t duration   token validity ("168h")
//	-w duration   storage ping interval ("30s"); 0 disables the watcher
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-r", "-t", "-w"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP listen address")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC listen address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret key")
	fs.StringVar(&config.ResetToken, "r", config.ResetToken, "admin reset token")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "token validity")
	fs.DurationVar(&config.StoragePingInterval, "w", config.StoragePingInterval, "storage ping interval")

	return fs.Parse(args)
}
