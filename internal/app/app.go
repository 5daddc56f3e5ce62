package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/nalindobhal/blog/config"
	"github.com/nalindobhal/blog/docs"
	"github.com/nalindobhal/blog/internal/blog"
	"github.com/nalindobhal/blog/internal/db"
	"github.com/nalindobhal/blog/internal/identity"
	"github.com/nalindobhal/blog/internal/media"
	"github.com/nalindobhal/blog/internal/rest"
	"github.com/nalindobhal/blog/internal/rpc"
)

const rpcPath = "/rpc/"

type App struct {
	DB     *db.Repository
	Logger *slog.Logger
	Echo   *echo.Echo
	Config config.Config
}

func New(cfg config.Config, dbConnect pg.DBI, logger *slog.Logger) (*App, error) {
	database := db.New(dbConnect)

	files, err := newMediaStore(cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("media store: %w", err)
	}

	manager := blog.NewManager(database, files)
	identitySvc := identity.NewService(database, identity.Config{
		Secret: cfg.Auth.Secret,
		TTL:    cfg.Auth.SessionTTL,
	})

	restCfg := rest.Config{
		CookieName:   cfg.Auth.CookieName,
		SecureCookie: cfg.Auth.SecureCookie,
	}
	if local, ok := files.(*media.Local); ok {
		restCfg.MediaRoot = local.Root()
	}

	if err := setSwaggerHost(cfg.App.BaseURL); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := rest.NewHandler(manager, identitySvc, database, rest.NewMetrics(), logger, restCfg)
	handler.RegisterRoutes(e)
	e.Any(rpcPath, echo.WrapHandler(rpc.New(logger, manager)))

	return &App{
		DB:     database,
		Logger: logger,
		Echo:   e,
		Config: cfg,
	}, nil
}

// setSwaggerHost points the served swagger document at the public address.
func setSwaggerHost(baseURL string) error {
	if baseURL == "" {
		return nil
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid base url %q", baseURL)
	}

	docs.SwaggerInfo.Host = u.Host
	if u.Scheme != "" {
		docs.SwaggerInfo.Schemes = []string{u.Scheme}
	}
	return nil
}

func newMediaStore(cfg config.Media) (media.Store, error) {
	switch cfg.Backend {
	case config.MediaS3:
		store, err := media.NewS3(media.S3Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PublicURL:       cfg.S3.PublicURL,
			PathStyle:       cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.MediaLocal, "":
		return media.NewLocal(cfg.Root, cfg.URL), nil
	}

	return nil, fmt.Errorf("unknown media backend %q", cfg.Backend)
}

func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort(a.Config.App.Host, strconv.Itoa(a.Config.App.Port))
	a.Logger.InfoContext(ctx, "service starting", "addr", addr)
	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
