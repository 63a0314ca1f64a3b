package main

import (
	"fmt"
	"log/slog"
	"os"

	"expenza/internal/config"
	"expenza/internal/database"
	"expenza/internal/logging"
	"expenza/internal/router"
)

func main() {
	// load configuration; a missing signing key or DSN is fatal here,
	// not at request time
	cfg, err := config.Load(os.Getenv("EXPENZA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	db, err := database.Init(cfg.Database)
	if err != nil {
		slog.Error("init database", "error", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	r := router.SetupRouter(cfg, db)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	slog.Info("server starting", "address", addr, "driver", cfg.Database.Driver)
	if err := r.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
