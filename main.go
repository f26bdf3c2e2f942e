package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/stock-api/config"
	"github.com/kendall-kelly/stock-api/logger"
	"github.com/kendall-kelly/stock-api/routes"
	"github.com/kendall-kelly/stock-api/services"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "stock-api",
		Usage:  "Stock management API for suppliers, consumers, products and orders",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Migrate the database and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create or update the database schema and exit",
				Action: migrate,
			},
		},
	}
}

// bootstrap loads configuration, builds the logger and opens a migrated database
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.Must(cfg.LogLevel, cfg.IsProduction())
	if cfg.LoadedFrom != "" {
		log.Info("Loaded configuration", zap.String("file", cfg.LoadedFrom))
	}

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := config.MigrateDatabase(db); err != nil {
		_ = config.CloseDatabase(db)
		return nil, nil, nil, err
	}
	log.Info("Database migration completed successfully")

	return cfg, log, db, nil
}

func migrate(_ *cli.Context) error {
	_, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	return config.CloseDatabase(db)
}

func serve(c *cli.Context) error {
	cfg, log, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	defer func() {
		if err := config.CloseDatabase(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var images services.ImageService
	if cfg.S3Enabled() {
		store, err := services.NewS3Service(c.Context, cfg, log)
		if err != nil {
			return err
		}
		images = services.NewImageService(store)
	} else {
		log.Warn("AWS_S3_BUCKET is not set; product image uploads are disabled")
	}

	router, err := routes.NewRouter(routes.Dependencies{
		Config: cfg,
		DB:     db,
		Log:    log,
		Images: images,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return run(ctx, &http.Server{Addr: ":" + cfg.Port, Handler: router}, log)
}

// run serves until ctx is cancelled, then shuts the server down gracefully
func run(ctx context.Context, srv *http.Server, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("Server exiting")
	return nil
}
