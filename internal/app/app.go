// Package app boots the process: configuration, database, facade
// service, background sweeper and the admin HTTP API.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yokinanya/omega-miya/internal/config"
	"github.com/yokinanya/omega-miya/internal/cooldown"
	"github.com/yokinanya/omega-miya/internal/db"
	admin "github.com/yokinanya/omega-miya/internal/http/api/admin"
	"github.com/yokinanya/omega-miya/internal/logging"
	"github.com/yokinanya/omega-miya/internal/omega"
)

// Migrate opens the database and runs migrations.
func Migrate(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	return db.Migrate(conn)
}

// RunServer boots the admin API server with database-backed components.
// It blocks until ctx is cancelled, then shuts the listener down.
func RunServer(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(configPath)
	if errLoad != nil {
		return errLoad
	}
	logging.Setup(cfg.Log)

	conn, errOpen := db.Open(cfg.Database.DSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	log.Infof("database ready (dialect=%s)", db.DialectName(conn))

	svc := omega.NewService(conn)

	cleaner := cooldown.NewCleaner(svc.Cooldowns(), cfg.Cooldown.PurgeInterval.Std())
	cleaner.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	admin.RegisterRoutes(engine, conn, svc, cfg.Admin, cfg.JWT)

	server := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("admin api listening on %s", cfg.Server.Listen)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
			return fmt.Errorf("app: shutdown: %w", errShutdown)
		}
		return nil
	case errServe := <-errCh:
		if errors.Is(errServe, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("app: serve: %w", errServe)
	}
}
