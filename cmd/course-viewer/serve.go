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

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-viewer/api/swagger"
	"github.com/noah-isme/course-viewer/internal/handler"
	"github.com/noah-isme/course-viewer/internal/service"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logr, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logr)
	if err != nil {
		logr.Error("catalog unavailable at startup", zap.Error(err))
		return err
	}
	defer a.Close()

	validate := validator.New()
	sessions := service.NewSessionService(cfg.Sessions.TTL, cfg.Sessions.MaxEntries, validate, logr.Named("sessions"))
	exports := service.NewExportService(a.catalog, cfg.Export.PDFFontPath, a.metrics, logr.Named("export"))
	auth := service.NewAuthService(logr.Named("auth"), service.AuthConfig{Secret: cfg.JWT.Secret})

	router := handler.NewRouter(handler.RouterDeps{
		Config:   cfg,
		Logger:   logr,
		Metrics:  a.metrics,
		Auth:     auth,
		Catalog:  handler.NewCatalogHandler(a.catalog, validate, logr),
		Sessions: handler.NewSessionHandler(sessions, a.catalog),
		Exports:  handler.NewExportHandler(exports, validate),
		Page:     handler.NewPageHandler(a.catalog, validate, logr),
		Ops:      handler.NewMetricsHandler(a.metrics, a.catalog),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "local", cfg.Local)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logr.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
