// Package main provides the newsimage CLI: read a news text, derive search
// keywords with a language model, search an image provider, score the
// candidates, and print the best match.
//
// Run with: go run ./cmd/cli pick "Wildfires spread across the region"
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/config"
	"github.com/dkruglov/newsimage/internal/fetch"
	"github.com/dkruglov/newsimage/internal/llm"
	"github.com/dkruglov/newsimage/internal/search"
	"github.com/dkruglov/newsimage/internal/service"
	"github.com/dkruglov/newsimage/internal/storage"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		// Cobra already printed the error; a non-zero exit is the contract
		// for configuration and runtime failures. "Nothing found" outcomes
		// exit zero.
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "newsimage",
		Short: "Pick the most relevant image for a news text",
	}

	root.AddCommand(pickCmd())
	return root
}

func pickCmd() *cobra.Command {
	var engine string
	var verify bool

	cmd := &cobra.Command{
		Use:   "pick [text]",
		Short: "Find the best matching image for a news text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := newsText(args)
			if err != nil {
				return err
			}
			return runPick(text, engine, verify)
		},
	}

	cmd.Flags().StringVar(&engine, "engine", "", "Search engine override: google or duckduckgo")
	cmd.Flags().BoolVar(&verify, "verify", false, "Download the chosen image and report its dimensions")
	return cmd
}

// newsText takes the text from the argument when given, otherwise from
// standard input — one prompted line on a terminal, everything when piped.
func newsText(args []string) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}

	stat, _ := os.Stdin.Stat()
	interactive := (stat.Mode() & os.ModeCharDevice) != 0

	if interactive {
		fmt.Print("Enter news text: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(sb.String()), nil
}

func runPick(text, engineOverride string, verify bool) error {
	if text == "" {
		return fmt.Errorf("no news text provided")
	}

	cfg, err := config.Load(os.Getenv("NEWSIMAGE_CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if engineOverride != "" {
		cfg.Search.Engine = engineOverride
	}

	// ConfigCheck: every required credential is validated here, before any
	// network or model call.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	picker, closeAudit, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer closeAudit()

	// Ctrl+C cancels the in-flight stage at its next blocking call.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	fmt.Println("Extracting keywords...")
	result, err := picker.Illustrate(ctx, text)
	if err != nil {
		return err
	}

	fmt.Printf("Keywords: %s\n", result.Keywords)
	fmt.Printf("Searched via %s\n", result.Engine)

	switch result.Outcome {
	case service.OutcomeNoImages:
		fmt.Println("No images found.")
	case service.OutcomeNoRelevant:
		fmt.Println("No relevant image selected.")
	case service.OutcomeFound:
		fmt.Printf("Selected image URL: %s\n", result.Best.URL)
		fmt.Printf("Image description: %s\n", result.Best.Description)

		if verify {
			info, err := service.NewVerifier(cfg.Fetch.Timeout).Verify(ctx, result.Best.URL)
			if err != nil {
				fmt.Printf("Verification failed: %v\n", err)
			} else {
				fmt.Printf("Verified: %dx%d %s (%d bytes)\n", info.Width, info.Height, info.Type, info.Bytes)
			}
		}
	}

	return nil
}

// buildPipeline wires config into the extract → search → score pipeline.
// The returned closer shuts the audit database if one was opened.
func buildPipeline(cfg *config.Config, logger *zap.Logger) (*service.Picker, func(), error) {
	var calls storage.CallRepository
	closeAudit := func() {}

	if cfg.Audit.Enabled {
		db, err := storage.NewDatabase(cfg.Audit.DatabasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening audit database: %w", err)
		}
		calls = storage.NewCallRepository(db)
		closeAudit = func() { _ = db.Close() }
	}

	clients, err := llmClients(cfg)
	if err != nil {
		closeAudit()
		return nil, nil, err
	}

	caller := service.NewCaller(clients, cfg.LLM.RatePerMinute, calls, logger)
	fetcher := fetch.New(cfg.Fetch.MaxRetries, cfg.Fetch.BaseDelay, cfg.Fetch.Timeout, logger)

	provider, err := search.New(cfg, fetcher, logger)
	if err != nil {
		closeAudit()
		return nil, nil, err
	}

	picker := service.NewPicker(
		service.NewExtractor(caller, logger),
		provider,
		service.NewScorer(caller, logger),
		logger,
	)
	return picker, closeAudit, nil
}

// llmClients builds the completion clients in configured order.
func llmClients(cfg *config.Config) ([]llm.Client, error) {
	var clients []llm.Client
	for _, name := range cfg.LLM.ProviderOrder {
		switch name {
		case "openai":
			clients = append(clients, llm.NewOpenAIClient(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model))
		case "anthropic":
			clients = append(clients, llm.NewAnthropicClient(cfg.LLM.Anthropic.APIKey, cfg.LLM.Anthropic.Model))
		default:
			return nil, fmt.Errorf("unknown LLM provider: %s", name)
		}
	}
	return clients, nil
}
