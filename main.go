package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/atelier/auth"
	"github.com/danielhkuo/atelier/cliparse"
	"github.com/danielhkuo/atelier/content"
	"github.com/danielhkuo/atelier/rebuild"
	"github.com/danielhkuo/atelier/router"
	"github.com/danielhkuo/atelier/store"
)

func main() {
	// Human-readable logs on a terminal, JSON for collectors.
	if isatty.IsTerminal(os.Stderr.Fd()) {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	} else {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	if cfg.AdminPassword == "changeme" {
		slog.Warn("ADMIN_PASSWORD not set, bootstrap admin uses the default password")
	}

	ctx := context.Background()

	// Open storage; falls back to the embedded store when the
	// database backend is configured but unreachable.
	st, err := store.Open(ctx, store.Config{
		UseDatabase: cfg.UseDatabase,
		DatabaseURL: cfg.DatabaseURL,
		Driver:      cfg.DatabaseDriver,
		DataDir:     cfg.DataDir,
	})
	if err != nil {
		slog.Error("storage initialization failed", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// First-run provisioning
	if err := content.NewUsers(st).EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("admin provisioning failed", "error", err)
		os.Exit(1)
	}
	if err := content.Seed(ctx, st); err != nil {
		slog.Error("sample-data seeding failed", "error", err)
		os.Exit(1)
	}

	orch := rebuild.New(rebuild.Config{
		BuildCommand: strings.Fields(cfg.BuildCommand),
		WorkDir:      cfg.BuildWorkDir,
		OutputRoot:   cfg.OutputRoot,
	})

	// Create router
	mux := router.NewRouter(router.Deps{
		Store:        st,
		Sessions:     auth.NewSessions(auth.DefaultSessionTTL),
		Orchestrator: orch,
		Config:       cfg,
	})

	// Create server
	server := http.Server{
		Handler: mux,
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
	slog.Info("Listening", "port", cfg.Port, "backend", st.Backend())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
