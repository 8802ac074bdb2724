package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/sorenmh/infrastructure-shared/package-browser/api"
	"github.com/sorenmh/infrastructure-shared/package-browser/config"
	"github.com/sorenmh/infrastructure-shared/package-browser/db"
	"github.com/sorenmh/infrastructure-shared/package-browser/logging"
)

func main() {
	configPath := flag.String("config", "/etc/package-browser/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(logging.Config{
		ServiceName: "package-browser",
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.String("path", *configPath),
		zap.Int("seed_applications", len(cfg.Applications)),
		zap.String("locale", cfg.Display.Locale),
		zap.String("timezone", cfg.Display.Timezone),
	)

	// Initialize database
	database, err := db.New(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.String("path", cfg.Database.Path), zap.Error(err))
	}
	defer database.Close()

	seedApps := make([]db.SeedApplication, 0, len(cfg.Applications))
	for _, app := range cfg.Applications {
		seedApps = append(seedApps, db.SeedApplication{Name: app.Name, AppID: app.AppID})
	}
	seeded, err := database.Seed(seedApps, cfg.Mendix.BaseURL, cfg.Mendix.Token)
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}

	logger.Info("database initialized",
		zap.String("path", cfg.Database.Path),
		zap.Int("seeded_applications", seeded.Applications),
		zap.Bool("seeded_api_config", seeded.APIConfig),
	)

	// Create and start API server
	server := api.NewServer(cfg, database, logger)

	if err := server.Run(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
