package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fekuna/boutique-catalog-service/config"
	"github.com/fekuna/boutique-catalog-service/internal/app"
	"github.com/fekuna/boutique-catalog-service/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// 2. Initialize Logger
	appLogger := app.NewLogger(cfg)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect backends and build use cases
	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Could not start catalog", zap.Error(err))
	}
	defer a.Close()

	// 4. Serve until SIGINT/SIGTERM
	if err := server.New(a).Run(ctx); err != nil {
		appLogger.Error("Server exited with error", zap.Error(err))
	}
}
