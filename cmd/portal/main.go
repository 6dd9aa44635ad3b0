package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/staff-portal/internal/client"
	"github.com/staff-portal/internal/config"
	"github.com/staff-portal/internal/infrastructure/localstore"
	"github.com/staff-portal/internal/portal"
	"github.com/staff-portal/internal/transport/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment")
	}

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := localstore.Open(cfg.Portal.StateDir)
	if err != nil {
		fatal("open state dir", err)
	}

	ctl := portal.NewController(portal.ControllerDeps{
		Repository: client.New(cfg.Portal.APIBaseURL, cfg.Portal.ClientTimeout),
		Store:      store,
		Debounce:   cfg.Portal.SearchDebounce,
	})
	defer ctl.Close()

	restored, err := ctl.Restore(ctx)
	if err != nil {
		slog.Warn("restore session", "err", err)
	}
	slog.Info("portal state loaded", "dir", cfg.Portal.StateDir, "signed_in", restored)

	router, err := web.NewRouter(ctl)
	if err != nil {
		fatal("load templates", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%s", cfg.Portal.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("portal starting", "addr", srv.Addr, "api", cfg.Portal.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down portal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal("forced shutdown", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
