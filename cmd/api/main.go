package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/config"
	"github.com/comitanigiacomo/kanso-fit/internal/logging"
)

func main() {
	env := flag.String("env", "", "environment [dev | development | prod | production], defaults to APP_ENV")
	configPath := flag.String("config", "", "optional path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath, *env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.LogFile,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})
	log.Warnf("---->> running in [%s] environment, storage [%s]", cfg.Env, cfg.StorageBackend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, newRegistry())
	if err != nil {
		log.Fatalf("startup: %s", err)
	}
	defer a.storage.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("kanso-fit listening on http://localhost:%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server error: %s", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("forced shutdown: %s", err)
	}

	select {
	case <-a.worker.Done():
	case <-shutdownCtx.Done():
		log.Warn("streak worker did not stop in time")
	}

	log.Info("server stopped gracefully")
}
