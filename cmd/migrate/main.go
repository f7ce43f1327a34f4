package main

import (
	"coinvest/config"
	"coinvest/internal/database"

	"github.com/sirupsen/logrus"
)

// Standalone migration binary for deploys that run schema changes before
// rolling the server.
func main() {
	cfg := config.Load()
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}
	database.SeedAdmin(db)
	logrus.Info("migration complete")
}
