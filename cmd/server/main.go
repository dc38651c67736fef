package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/openhouse-crm/openhouse/internal/classifier"
	"github.com/openhouse-crm/openhouse/internal/command"
	"github.com/openhouse-crm/openhouse/internal/config"
	"github.com/openhouse-crm/openhouse/internal/email"
	"github.com/openhouse-crm/openhouse/internal/firestore"
	"github.com/openhouse-crm/openhouse/internal/llm"
	"github.com/openhouse-crm/openhouse/internal/mcp"
	"github.com/openhouse-crm/openhouse/internal/places"
	"github.com/openhouse-crm/openhouse/internal/repository"
	"github.com/openhouse-crm/openhouse/internal/resolver"
	"github.com/openhouse-crm/openhouse/internal/sqlite"
	"github.com/openhouse-crm/openhouse/internal/transport"
)

type repos struct {
	contacts  repository.ContactRepository
	listings  repository.ListingRepository
	lists     repository.ContactListRepository
	activity  repository.ActivityRepository
	tasks     repository.TaskRepository
	audits    repository.AuditRepository
	prospects repository.ProspectRepository
	close     func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == "stdio" {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx := context.Background()
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.close(); err != nil {
			logger.Warn("store close failed", "error", err)
		}
	}()

	llmClient, err := llm.NewHTTPClient(llm.Config{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
	})
	if err != nil {
		logger.Error("failed to create llm client", "error", err)
		os.Exit(1)
	}

	res := resolver.New(store.contacts, store.listings, store.lists, logger)

	var searcher places.Searcher
	if cfg.Google.MapsAPIKey != "" {
		searcher = places.NewGoogleSearcher(cfg.Google.MapsAPIKey, logger)
	}

	dispatcher := command.NewDispatcher(command.Deps{
		Contacts:  store.contacts,
		Listings:  store.listings,
		Lists:     store.lists,
		Activity:  store.activity,
		Tasks:     store.tasks,
		Audits:    store.audits,
		Prospects: store.prospects,
		Resolver:  res,
		Searcher:  searcher,
		LLM:       llmClient,
		LLMModel:  cfg.OpenAI.Model,
		Logger:    logger,
	})

	cls := classifier.New(llmClient, cfg.OpenAI.Model, logger)
	taskCls := classifier.NewTaskClassifier(llmClient, cfg.OpenAI.Model, logger, nil)
	service := command.NewService(cls, taskCls, dispatcher, logger)

	if cfg.Transport.Mode == "stdio" {
		runStdioMode(logger, mcp.NewServer(service, store.contacts, store.activity, logger))
		return
	}

	var sender email.Sender
	if cfg.Gmail.CredentialsFile != "" {
		gmailSender, err := email.NewGmailSender(ctx, cfg.Gmail.CredentialsFile, cfg.Gmail.From, logger)
		if err != nil {
			logger.Error("failed to create gmail sender", "error", err)
			os.Exit(1)
		}
		sender = gmailSender
	}

	router := transport.NewServer(transport.Deps{
		Service:    service,
		Listings:   store.listings,
		Lists:      store.lists,
		Activities: store.activity,
		Sender:     sender,
		Logger:     logger,
		NewID:      uuid.NewString,
	})
	runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port)
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (*repos, error) {
	switch cfg.DB.Driver {
	case "firestore":
		store, err := firestore.New(ctx, cfg.DB.ProjectID)
		if err != nil {
			return nil, err
		}
		logger.Info("using firestore", "project", cfg.DB.ProjectID)
		return &repos{
			contacts:  firestore.NewContactRepository(store),
			listings:  firestore.NewListingRepository(store),
			lists:     firestore.NewContactListRepository(store),
			activity:  firestore.NewActivityRepository(store),
			tasks:     firestore.NewTaskRepository(store),
			audits:    firestore.NewAuditRepository(store),
			prospects: firestore.NewProspectRepository(store),
			close:     store.Close,
		}, nil

	case "sqlite":
		if dir := filepath.Dir(cfg.DB.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("prepare database path: %w", err)
			}
		}
		db, err := sqlite.New(cfg.DB.Path)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("using sqlite", "path", cfg.DB.Path)
		return &repos{
			contacts:  sqlite.NewContactRepository(db),
			listings:  sqlite.NewListingRepository(db),
			lists:     sqlite.NewContactListRepository(db),
			activity:  sqlite.NewActivityRepository(db),
			tasks:     sqlite.NewTaskRepository(db),
			audits:    sqlite.NewAuditRepository(db),
			prospects: sqlite.NewProspectRepository(db),
			close:     db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
}

func runStdioMode(logger *slog.Logger, server *mcp.Server) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("shutting down")
		cancel()
	}()

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) {
	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	case <-stop:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
