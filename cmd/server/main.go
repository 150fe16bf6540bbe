package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Vachangowdas/Agrifair1/internal/config"
	"github.com/Vachangowdas/Agrifair1/internal/database"
	"github.com/Vachangowdas/Agrifair1/internal/logging"
	"github.com/Vachangowdas/Agrifair1/internal/routes"
	"github.com/Vachangowdas/Agrifair1/internal/store"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	local, err := store.NewLocal(cfg.DataDir)
	if err != nil {
		slog.Error("local store init failed", "error", err)
		os.Exit(1)
	}

	var remote store.Store
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connect failed", "error", err)
			os.Exit(1)
		}
		remote = store.NewPostgres(db)
		slog.Info("cloud store connected")
	} else {
		slog.Info("DATABASE_URL not set, running in local-only mode")
	}

	st := store.NewFallback(remote, local)

	app := fiber.New(fiber.Config{
		AppName: "AgriFair Backend",
	})

	app.Use(sentryfiber.New(sentryfiber.Options{Repanic: true}))
	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, st, cfg)

	slog.Info("starting server", "port", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		slog.Error("fiber listen error", "error", err)
		os.Exit(1)
	}
}
