// Package main implements the draftd CLI: run post generation workflows
// locally or serve them over HTTP.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/draftd/internal/config"
	draftdhttp "github.com/fyrsmithlabs/draftd/internal/http"
	"github.com/fyrsmithlabs/draftd/internal/llm"
	"github.com/fyrsmithlabs/draftd/internal/logging"
	"github.com/fyrsmithlabs/draftd/internal/workflow"
)

var (
	// configPath is the YAML config file, empty for the default location
	configPath string
	// serverURL is the base URL used by the health command
	serverURL string
	// run command flags
	audience string
	drafts   int
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "draftd",
	Short: "Generate platform-tailored social media posts from text",
	Long: `draftd turns a block of input text into social media posts for Twitter
and LinkedIn by running an iterative generate-critique loop against a text
generation service.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/draftd/config.yaml)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)

	runCmd.Flags().StringVar(&audience, "audience", "", "target audience for the posts")
	runCmd.Flags().IntVar(&drafts, "drafts", 0, "drafts per platform (default from config)")

	healthCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8093", "draftd server URL")
}

// runCmd executes one workflow locally
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Generate posts from a file or stdin",
	Long: `Generate posts from a file or stdin.

Examples:
  # Generate from a file
  draftd run announcement.txt --audience "backend engineers"

  # Generate from stdin with 5 drafts per platform
  cat notes.md | draftd run - --drafts 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

// serveCmd starts the HTTP server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the draftd HTTP server",
	RunE:  runServe,
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check draftd server health",
	RunE:  runHealth,
}

// runRun handles the run command
func runRun(cmd *cobra.Command, args []string) error {
	var content []byte
	var err error

	// Read input from file or stdin
	if len(args) == 0 || args[0] == "-" {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := llm.New(cfg.LLM)
	if err != nil {
		return err
	}

	engine, err := workflow.NewEngine(client, logger)
	if err != nil {
		return err
	}

	target := drafts
	if target == 0 {
		target = cfg.Workflow.Drafts
	}

	state, err := engine.Run(cmd.Context(), workflow.Request{
		UserText:       string(content),
		TargetAudience: audience,
		Drafts:         target,
	})
	if err != nil {
		return err
	}

	printState(cmd.OutOrStdout(), state)
	return nil
}

// printState writes a run result to w.
func printState(w io.Writer, state *workflow.State) {
	rule := strings.Repeat("-", 72)

	fmt.Fprintf(w, "Edited text\n%s\n%s\n", rule, state.EditText)

	sections := []struct {
		title string
		ws    *workflow.Workspace
	}{
		{"Twitter", state.Tweet},
		{"LinkedIn", state.LinkedInPost},
	}
	for _, sec := range sections {
		fmt.Fprintf(w, "\n%s\n%s\n", sec.title, rule)
		for i, draft := range sec.ws.Drafts {
			fmt.Fprintf(w, "Draft #%d:\n%s\n\n", i+1, draft)
		}
		if sec.ws.HasFeedback() {
			fmt.Fprintf(w, "Final feedback:\n%s\n", sec.ws.Feedback)
		}
	}
}

// runServe handles the serve command
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	client, err := llm.New(cfg.LLM)
	if err != nil {
		return err
	}

	engine, err := workflow.NewEngine(client, logger)
	if err != nil {
		return err
	}

	server, err := draftdhttp.NewServer(engine, logger, &draftdhttp.Config{
		Host:          cfg.Server.Host,
		Port:          cfg.Server.Port,
		DefaultDrafts: cfg.Workflow.Drafts,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}

// runHealth handles the health command
func runHealth(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("%s/health", serverURL)

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	var healthResp draftdhttp.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&healthResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "draftd server at %s is %s\n", serverURL, healthResp.Status)
	return nil
}
