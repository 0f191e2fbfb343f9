// Package main is the entry point for the newsimage HTTP server. It exposes
// the same extract → search → score pipeline as the CLI behind an
// authenticated JSON endpoint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/config"
	"github.com/dkruglov/newsimage/internal/fetch"
	"github.com/dkruglov/newsimage/internal/llm"
	"github.com/dkruglov/newsimage/internal/search"
	"github.com/dkruglov/newsimage/internal/server"
	"github.com/dkruglov/newsimage/internal/service"
	"github.com/dkruglov/newsimage/internal/storage"
)

func main() {
	// run() is separate so deferred cleanup executes before os.Exit.
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("NEWSIMAGE_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	var logger *zap.Logger
	if cfg.Log.Level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	// Sync commonly fails on stdout/stderr; not a real problem.
	defer func() { _ = logger.Sync() }()

	var calls storage.CallRepository
	if cfg.Audit.Enabled {
		db, err := storage.NewDatabase(cfg.Audit.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening audit database: %w", err)
		}
		defer db.Close()
		calls = storage.NewCallRepository(db)
	}

	var clients []llm.Client
	for _, name := range cfg.LLM.ProviderOrder {
		switch name {
		case "openai":
			clients = append(clients, llm.NewOpenAIClient(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model))
		case "anthropic":
			clients = append(clients, llm.NewAnthropicClient(cfg.LLM.Anthropic.APIKey, cfg.LLM.Anthropic.Model))
		default:
			return fmt.Errorf("unknown LLM provider: %s", name)
		}
	}

	caller := service.NewCaller(clients, cfg.LLM.RatePerMinute, calls, logger)
	fetcher := fetch.New(cfg.Fetch.MaxRetries, cfg.Fetch.BaseDelay, cfg.Fetch.Timeout, logger)

	provider, err := search.New(cfg, fetcher, logger)
	if err != nil {
		return err
	}

	picker := service.NewPicker(
		service.NewExtractor(caller, logger),
		provider,
		service.NewScorer(caller, logger),
		logger,
	)

	srv := server.New(cfg, server.Deps{
		Picker:   picker,
		Verifier: service.NewVerifier(cfg.Fetch.Timeout),
		Calls:    calls,
	}, logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(ctx)
}
