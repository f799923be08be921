package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rameshbaboov/french-vocabs/internal/config"
	"github.com/rameshbaboov/french-vocabs/internal/httpapi"
	"github.com/rameshbaboov/french-vocabs/internal/jobs"
	"github.com/rameshbaboov/french-vocabs/internal/library"
	"github.com/rameshbaboov/french-vocabs/internal/persistence"
	"github.com/rameshbaboov/french-vocabs/pkg/log"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web control surface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg := config.NewFromEnv()
	log.InitLogger(log.ParseLevel(cfg.LogLevel))

	settingsPath := cfg.SettingsFile
	if !filepath.IsAbs(settingsPath) {
		settingsPath = filepath.Join(cfg.DataDir, settingsPath)
	}
	initial, err := config.LoadSettingsFile(settingsPath)
	if err != nil {
		return err
	}
	settings, err := config.NewSettingsStore(settingsPath, initial)
	if err != nil {
		return err
	}

	historyPath := cfg.HistoryDB
	if !filepath.IsAbs(historyPath) {
		historyPath = filepath.Join(cfg.DataDir, historyPath)
	}
	store, err := persistence.NewSQLiteStore(historyPath)
	if err != nil {
		return err
	}
	defer store.Close()

	bin, err := os.Executable()
	if err != nil {
		return err
	}
	supervisor := jobs.NewSupervisor(
		jobs.ExecLauncher{Dir: cfg.DataDir},
		bin,
		cfg.DataDir,
		jobs.WithHistory(store),
	)

	server := httpapi.NewServer(
		supervisor,
		settings,
		library.NewLister(),
		cfg.DataDir,
		httpapi.WithHistory(store),
		httpapi.WithUI(cfg.UIStaticDir, cfg.UIEnabled),
	)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		supervisor.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
