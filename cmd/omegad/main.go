package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/yokinanya/omega-miya/internal/app"
	"github.com/yokinanya/omega-miya/internal/config"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "path to the configuration file")
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *migrateOnly {
		if errMigrate := app.Migrate(ctx, *configPath); errMigrate != nil {
			log.WithError(errMigrate).Error("migration failed")
			os.Exit(1)
		}
		log.Info("migration complete")
		return
	}

	if errRun := app.RunServer(ctx, *configPath); errRun != nil {
		log.WithError(errRun).Error("server exited with error")
		os.Exit(1)
	}
}
