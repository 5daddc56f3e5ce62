package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/nalindobhal/blog/config"
	"github.com/nalindobhal/blog/docs/patches"
	"github.com/nalindobhal/blog/internal/app"
	"github.com/nalindobhal/blog/internal/db"
)

var (
	flConfig  = flag.String("config", "config.toml", "path to TOML configuration file")
	flDebug   = flag.Bool("debug", false, "enable debug mode")
	flMigrate = flag.Bool("migrate", false, "apply database migrations before starting")
	cfg       config.Config
	lg        *slog.Logger
)

// @title Blog API
// @version 1.0
// @description Articles, comments and accounts of the blog.
// @BasePath /

func main() {
	flag.Parse()

	lg = newLogger(*flDebug)

	var err error
	cfg, err = config.Load(*flConfig)
	exitOnError(err)

	ctx := context.Background()
	if *flMigrate {
		exitOnError(db.Migrate(ctx, cfg.DatabaseURL(), patches.FS))
		lg.Info("migrations applied")
	}

	dbc := pg.Connect(&cfg.Database)
	if cfg.LogQueries || *flDebug {
		dbc.AddQueryHook(db.NewQueryHook(lg))
	}

	service, err := app.New(cfg, dbc, lg)
	if err != nil {
		dbc.Close()
		exitOnError(err)
	}
	if err := service.DB.Ping(ctx); err != nil {
		service.DB.Close()
		exitOnError(err)
	}
	defer service.DB.Close()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		err := service.Run(ctx)
		if err != nil {
			lg.Error("service run failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	lg.Info("service stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = service.GracefulShutdown(shutdownCtx)
	if err != nil {
		lg.Error("service graceful shutdown failed", "error", err)
	}
}

func newLogger(debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("app init failed", "error", err)
		os.Exit(1)
	}
}
