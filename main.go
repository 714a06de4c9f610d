package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tikz-editor/api"
	"tikz-editor/config"
	"tikz-editor/editor"
	"tikz-editor/template"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", os.Getenv("TIKZ_EDITOR_CONFIG"),
		"path to the YAML config file (optional; defaults apply without one)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slot, err := openSlot(cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening template storage: %w", err)
	}
	defer slot.Close()

	templates := template.NewManager(slot, logger)
	editors := editor.NewManager(templates)
	router := api.RegisterRoutes(editors, templates, logger, staticFiles)

	srv := &http.Server{Addr: cfg.Listen, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("tikz-editor listening",
			"addr", cfg.Listen,
			"storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openSlot builds the template snapshot slot the config asks for.
func openSlot(sc config.StorageConfig) (template.Slot, error) {
	switch sc.Backend {
	case "file":
		return template.NewFileSlot(sc.Path), nil
	case "sqlite":
		return template.NewSQLiteSlot(sc.Path)
	case "memory":
		return template.NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", sc.Backend)
	}
}
