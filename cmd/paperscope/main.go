// Command paperscope analyzes research papers from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/paperscope/paperscope"
)

var (
	// Global flags
	verbose    bool
	degraded   bool
	baseURL    string
	chatModel  string
	embedModel string
	timeout    time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "paperscope",
	Short: "paperscope - research paper analysis engine",
	Long: `paperscope extracts and analyzes research papers: citations,
methodology, research gaps, concept maps, summaries, and semantic search.

With a local model endpoint configured it runs the full strategy; without
one (or with --degraded) every analysis falls back to heuristics and
produces the same report shape.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// analyzeCmd runs the full analysis bundle on one document
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run every analysis on a document and print the bundled report",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

// searchCmd ranks document content against a query
var searchCmd = &cobra.Command{
	Use:   "search <file> <query>",
	Short: "Search a document for content relevant to a query",
	Args:  cobra.ExactArgs(2),
	RunE:  runSearch,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
	defer cancel()

	engine := newEngine()
	doc, err := engine.ExtractText(ctx, args[0])
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}
	slog.Info("text extracted", "file", args[0], "method", doc.Method, "chars", len(doc.Text))

	return printJSON(engine.AnalyzeAll(ctx, doc.Text))
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	engine := newEngine()
	doc, err := engine.ExtractText(ctx, args[0])
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	return printJSON(engine.Search(ctx, args[1], doc.Text))
}

// newEngine builds an Analyzer from the global flags.
func newEngine() *paperscope.Analyzer {
	if degraded {
		return paperscope.New(paperscope.DegradedConfig())
	}

	cfg := paperscope.DefaultConfig()
	if baseURL != "" {
		cfg.Completion.BaseURL = baseURL
		cfg.Embedding.BaseURL = baseURL
	}
	if chatModel != "" {
		cfg.Completion.Model = chatModel
	}
	if embedModel != "" {
		cfg.Embedding.Model = embedModel
	}
	if timeout > 0 {
		cfg.CapabilityTimeout = timeout
	}
	return paperscope.New(cfg)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&degraded, "degraded", false, "disable model capabilities, heuristics only")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "model endpoint base URL (default http://localhost:11434)")
	rootCmd.PersistentFlags().StringVar(&chatModel, "model", "", "completion model name")
	rootCmd.PersistentFlags().StringVar(&embedModel, "embedding-model", "", "embedding model name")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "per-call model timeout")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(searchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
