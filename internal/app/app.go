package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
)

type App struct {
	log     *logrus.Logger
	cfg     config.Config
	router  *http.ServeMux
	db      *pgxpool.Pool
	jwt     *config.JWT
	cookies *config.Cookies
}

func New(log *logrus.Logger, cfg config.Config) *App {
	return &App{
		log:    log,
		cfg:    cfg,
		router: http.NewServeMux(),
	}
}

// Start connects to the database, runs migrations and serves until ctx
// is canceled.
func (a *App) Start(ctx context.Context) error {
	db, err := database.ConnectAndMigrate(
		ctx, a.cfg.Postgres.DbUrl(), a.cfg.Postgres.MigrateUrl(),
	)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	defer db.Close()
	a.db = db

	jwt, err := config.NewJWT(a.cfg.Jwt)
	if err != nil {
		return fmt.Errorf("unable to load jwt keys: %w", err)
	}
	a.jwt = jwt
	a.cookies = config.NewCookies(a.cfg, jwt)

	a.loadRoutes()

	server := &http.Server{
		Addr: a.cfg.Addr,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Auth(a.log, a.cookies),
			middleware.Logging(a.log),
		),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.WithField("addr", a.cfg.Addr).Info("server listening")
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 30*time.Second,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
