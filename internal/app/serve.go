// Package app runs the HTTP service until it receives a termination signal.
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"burlometro/internal/api"
	"burlometro/internal/config"
)

// Serve builds the server from cfg and blocks until SIGINT or SIGTERM, then drains
// in-flight requests.
func Serve(cfg config.AppConfig) error {
	server, err := api.NewServer(api.Config{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		StaticDir:      cfg.Static.Dir,
		DBPath:         cfg.Store.Path,
		SilentDB:       cfg.Store.Silent,
		AIConfig:       cfg.AI(),
		DisableAI:      cfg.DisableAI,
		Scoring:        cfg.Scoring,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := server.Close(); err != nil {
			logrus.WithError(err).Warn("close verdict store")
		}
	}()

	router, err := server.Router()
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("starting burlometro on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case sig := <-sigCh:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	// in-flight provider calls may take up to the provider timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Provider.Timeout+5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("burlometro stopped")
	return nil
}
