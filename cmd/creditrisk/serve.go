package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gonuts/commander"
	"github.com/gonuts/flag"

	"github.com/aaquiib/Credit-Risk-Modelling/pkg/api"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/observability"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/risk"
	"github.com/aaquiib/Credit-Risk-Modelling/pkg/store"
)

var (
	serveModel    string
	serveAddr     string
	serveDBDriver string
	serveDBDSN    string
)

func ServeConfigOut(logger *slog.Logger) {
	logger.Info("configuration",
		slog.String("service", cfg.ServiceName),
		slog.String("model", serveModel),
		slog.String("addr", serveAddr),
		slog.String("db_driver", serveDBDriver),
		slog.String("gin_mode", cfg.GinMode),
	)
}

func Serve(cmd *commander.Command, args []string) error {
	logger := newLogger()
	ServeConfigOut(logger)
	gin.SetMode(cfg.GinMode)

	// The model and transformer are loaded once and shared read-only by
	// all requests.
	ct, clf, err := loadModel(serveModel)
	if err != nil {
		return err
	}

	db, err := store.Open(serveDBDriver, serveDBDSN)
	if err != nil {
		return err
	}
	repo := store.NewRepository(db)
	metrics := observability.NewMetrics("creditrisk")

	svc, err := risk.NewService(ct, clf,
		risk.WithRepository(repo),
		risk.WithRecorder(metrics),
		risk.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	health := api.NewHealthHandler(cfg.ServiceName, map[string]api.Pinger{"database": repo})
	router := api.NewRouter(api.NewHandler(svc, logger), health, metrics.Handler(), metrics, logger)

	srv := &http.Server{
		Addr:         serveAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", slog.String("addr", serveAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case sig := <-quit:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Info("server exited")
	return nil
}

func ServeCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Serve,
		UsageLine: "serve [options]",
		Short:     "serve the assessment HTTP API",
		Long: `
serve the assessment HTTP API with a trained model artifact

	$ ./creditrisk serve -model <artifact file> [-addr :8080] [-db-driver sqlite|postgres] [-db-dsn <dsn>]

`,
		Flag: *flag.NewFlagSet("serve", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&serveModel, "model", cfg.ModelPath, "model artifact file")
	cmd.Flag.StringVar(&serveAddr, "addr", cfg.HTTPAddr(), "listen address")
	cmd.Flag.StringVar(&serveDBDriver, "db-driver", cfg.DB.Driver, "assessment store driver: sqlite or postgres")
	cmd.Flag.StringVar(&serveDBDSN, "db-dsn", cfg.DB.DSN, "assessment store DSN")
	return cmd
}
