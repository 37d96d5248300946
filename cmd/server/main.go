package main

import (
	"context"

	"github.com/webedt/webedt/internal/server"
	"github.com/webedt/webedt/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	app := server.NewApp(ctx, cfg, nil)
	app.Run(ctx)
}
