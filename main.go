package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/mattn/go-isatty"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pokepick/catalog"
	"github.com/danielhkuo/pokepick/cliparse"
	"github.com/danielhkuo/pokepick/db"
	"github.com/danielhkuo/pokepick/middleware"
	"github.com/danielhkuo/pokepick/router"
	"github.com/danielhkuo/pokepick/upstream"
)

func main() {
	var err error

	// Text logs for a terminal, JSON otherwise
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	// Parse configuration
	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the cache database
	dbConn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.DatabaseType == cliparse.DatabaseSQLite {
		// SQLite allows one writer; hydration writes from several goroutines
		dbConn.SetMaxOpenConns(1)
		if _, err := dbConn.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
			slog.Error("sqlite pragma failed", "error", err)
			os.Exit(1)
		}
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	src := upstream.NewClient(cfg.UpstreamURL)
	repo := catalog.NewRepository(dbConn, src, cfg.PageSize, cfg.RefreshInterval)

	// Create router
	mux := router.NewRouter(repo, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "upstream", cfg.UpstreamURL, "admin_refresh", cfg.AdminKey != "")
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
