package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/danielhkuo/pokepick/cliparse"
	"github.com/danielhkuo/pokepick/controller"
	"github.com/danielhkuo/pokepick/fetcher"
	"github.com/danielhkuo/pokepick/selection"
)

type closableStore interface {
	selection.Store
	io.Closer
}

func main() {
	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseClientFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "pokepick:", err)
		os.Exit(2)
	}

	// The UI owns the terminal, so logs go to a file
	logFile, err := openLog(cfg.LogPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "pokepick:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})))

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open selection store", "path", cfg.StorePath, "error", err)
		fmt.Fprintln(os.Stderr, "pokepick:", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := fetcher.New(cfg.APIBase)
	ctrl := controller.New(client, store)

	slog.Info("client starting", "api", cfg.APIBase, "store", cfg.StorePath, "store_type", cfg.StoreType)

	ui := newUI(ctrl, client, cfg)
	if err := ui.Run(ctx); err != nil {
		slog.Error("ui exited", "error", err)
		fmt.Fprintln(os.Stderr, "pokepick:", err)
		os.Exit(1)
	}

	// Let in-flight fetches finish before the store closes
	stop()
	ctrl.Wait()
	slog.Info("client stopped")
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func openStore(cfg cliparse.ClientConfig) (closableStore, error) {
	switch cfg.StoreType {
	case cliparse.StoreSQLite:
		return selection.OpenSQLite(cfg.StorePath)
	default:
		return selection.OpenBolt(cfg.StorePath)
	}
}
